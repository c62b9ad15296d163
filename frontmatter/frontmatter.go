// Package frontmatter splits markdown documents into a YAML header and a body.
package frontmatter

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

// Document is one parsed file. Metadata values are whatever the YAML decoder
// produced: string, int, float64, bool, time.Time, []any or map[string]any.
type Document struct {
	Name     string
	Metadata map[string]any
	Body     string
}

// Extensions lists the file suffixes treated as documents.
var Extensions = []string{".md", ".mdx"}

// IsDocument reports whether name carries one of Extensions.
func IsDocument(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Parse splits raw into metadata and body. When the header cannot be decoded the
// returned document still carries the body and empty metadata, alongside the error.
func Parse(raw []byte) (Document, error) {
	doc := Document{Metadata: map[string]any{}}

	text := strings.TrimPrefix(string(raw), "\ufeff")
	header, body, found := splitHeader(text)
	if !found {
		doc.Body = text
		return doc, nil
	}
	doc.Body = body

	if strings.TrimSpace(header) == "" {
		return doc, nil
	}

	var metadata map[string]any
	if err := yaml.Unmarshal([]byte(header), &metadata); err != nil {
		return doc, fmt.Errorf("decode front matter: %w", err)
	}
	if metadata != nil {
		doc.Metadata = metadata
	}
	return doc, nil
}

// splitHeader looks for an opening "---" line and the next "---" line.
func splitHeader(text string) (header, body string, found bool) {
	firstLine, rest, ok := strings.Cut(text, "\n")
	if !ok || strings.TrimRight(firstLine, " \t\r") != delimiter {
		return "", text, false
	}

	offset := 0
	for offset <= len(rest) {
		line, _, hasMore := strings.Cut(rest[offset:], "\n")
		if strings.TrimRight(line, " \t\r") == delimiter {
			header = rest[:offset]
			end := offset + len(line)
			if hasMore {
				end++
			}
			return header, rest[end:], true
		}
		if !hasMore {
			break
		}
		offset += len(line) + 1
	}
	return "", text, false
}

// Reader walks directories of documents.
type Reader struct {
	logger zerolog.Logger
}

func NewReader(logger zerolog.Logger) Reader {
	return Reader{logger: logger}
}

// ReadDir lazily yields every document in dir in filename order. A header that
// fails to parse is logged and the document is yielded with empty metadata; a file
// that cannot be read is logged and skipped. A missing directory yields nothing.
func (r Reader) ReadDir(dir string) iter.Seq[Document] {
	return func(yield func(Document) bool) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				r.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to list content directory")
			}
			return
		}

		for _, entry := range entries {
			if entry.IsDir() || !IsDocument(entry.Name()) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			raw, err := os.ReadFile(path)
			if err != nil {
				r.logger.Warn().Err(err).Str("path", path).Msg("Failed to read content file")
				continue
			}

			doc, err := Parse(raw)
			if err != nil {
				r.logger.Warn().Err(err).Str("path", path).Msg("Failed to parse front matter")
			}
			doc.Name = entry.Name()

			if !yield(doc) {
				return
			}
		}
	}
}
