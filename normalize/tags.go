package normalize

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	tagDelimiters = regexp.MustCompile(`[,、;；|/／\n\r]+`)
	hashDelimiter = regexp.MustCompile(`\s+#`)
	leadingMarks  = regexp.MustCompile("^[#＃\"'`\\[\\](){}]+")
	trailingMarks = regexp.MustCompile("[\"'`\\[\\](){}]+$")
	numberedTag   = regexp.MustCompile(`(?i)^tag_?(\d+)$`)
)

// TagFallbackKeys are tried in order when a record has no usable "tags" field.
var TagFallbackKeys = []string{
	"tag",
	"タグ",
	"tagString",
	"tagsString",
	"tag_list",
	"tagList",
	"labels",
	"label",
}

type tagSet struct {
	seen   map[string]struct{}
	values []string
}

func (s *tagSet) add(tag string) {
	if tag == "" {
		return
	}
	if s.seen == nil {
		s.seen = map[string]struct{}{}
	}
	if _, ok := s.seen[tag]; ok {
		return
	}
	s.seen[tag] = struct{}{}
	s.values = append(s.values, tag)
}

// collect walks a value of any shape and adds every leaf string it finds.
func (s *tagSet) collect(v any) {
	switch t := v.(type) {
	case nil:
	case string:
		s.collectString(t)
	case []string:
		for _, item := range t {
			s.collectString(item)
		}
	case []any:
		for _, item := range t {
			s.collect(item)
		}
	case map[string]struct{}:
		for _, key := range sortedKeys(t) {
			s.collectString(key)
		}
	case map[string]any:
		for _, key := range sortedKeys(t) {
			s.collect(t[key])
		}
	default:
		s.add(Scalar(t))
	}
}

func (s *tagSet) collectString(input string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return
	}

	if looksLikeJSON(trimmed) {
		var parsed any
		if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
			s.collect(parsed)
			return
		}
	}

	var fragments []string
	for _, segment := range tagDelimiters.Split(trimmed, -1) {
		for _, piece := range hashDelimiter.Split(segment, -1) {
			if piece = strings.TrimSpace(piece); piece != "" {
				fragments = append(fragments, piece)
			}
		}
	}

	if len(fragments) == 0 {
		s.add(stripMarks(trimmed))
		return
	}
	for _, fragment := range fragments {
		s.add(stripMarks(fragment))
	}
}

func looksLikeJSON(s string) bool {
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"))
}

func stripMarks(s string) string {
	s = leadingMarks.ReplaceAllString(s, "")
	s = trailingMarks.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Tags flattens a string, list, map, set or JSON-encoded string into a
// deduplicated list of trimmed tags in first-seen order. It returns nil when
// nothing usable is found.
func Tags(v any) []string {
	var set tagSet
	set.collect(v)
	return set.values
}

// ExtractTags reads tags from a loosely typed record: the "tags" field first, then
// each of TagFallbackKeys, then every tagN / tag_N field in numeric order.
func ExtractTags(record map[string]any) []string {
	if tags := Tags(record["tags"]); len(tags) > 0 {
		return tags
	}

	for _, key := range TagFallbackKeys {
		if v, ok := record[key]; ok {
			if tags := Tags(v); len(tags) > 0 {
				return tags
			}
		}
	}

	type numbered struct {
		key string
		n   int
	}
	var keys []numbered
	for key := range record {
		match := numberedTag.FindStringSubmatch(key)
		if match == nil {
			continue
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		keys = append(keys, numbered{key: key, n: n})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].n != keys[j].n {
			return keys[i].n < keys[j].n
		}
		return keys[i].key < keys[j].key
	})

	var set tagSet
	for _, k := range keys {
		set.collect(record[k.key])
	}
	return set.values
}
