package content

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rpupo63/boardgame-journal/models"
	"github.com/rpupo63/boardgame-journal/normalize"
	"golang.org/x/text/unicode/norm"
)

// MaxDocumentSize caps uploaded markdown files.
const MaxDocumentSize = 512 * 1024

var (
	controlChars   = regexp.MustCompile(`[\x00-\x1f\x7f]+`)
	illegalChars   = regexp.MustCompile(`[/\\:*?"<>|]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// SanitizeBaseName turns an arbitrary identifier into a safe lowercase filename
// stem. It returns "" when nothing usable is left.
func SanitizeBaseName(raw string) string {
	name := norm.NFKC.String(raw)
	name = controlChars.ReplaceAllString(name, "")
	name = illegalChars.ReplaceAllString(name, "-")
	name = whitespaceRuns.ReplaceAllString(name, "-")
	name = hyphenRuns.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if name == "" || name == "." || name == ".." {
		return ""
	}
	return strings.ToLower(name)
}

// ResolveEntryID picks the identifier for an uploaded document: an explicit
// override, then slug/id (posts) or id/slug (games), then title, then the
// uploaded filename stem.
func ResolveEntryID(collection, override string, metadata map[string]any, filename string) string {
	primary, secondary := "id", "slug"
	if collection == CollectionPosts {
		primary, secondary = "slug", "id"
	}

	candidates := []string{
		strings.TrimSpace(override),
		normalize.String(metadata[primary]),
		normalize.String(metadata[secondary]),
		normalize.String(metadata["title"]),
		strings.TrimSpace(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))),
	}
	for _, candidate := range candidates {
		if candidate != "" && candidate != "." {
			return candidate
		}
	}
	return ""
}

// documentExtension keeps .md/.mdx and maps anything else to .md.
func documentExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".md" || ext == ".mdx" {
		return ext
	}
	return ".md"
}

// SaveDocument writes data into the write root of collection under the sanitized
// entryID. An existing file is only replaced when overwrite is set.
func (r *Repository) SaveDocument(collection, entryID, uploadedName string, data []byte, overwrite bool) (*models.StoredDocument, error) {
	dir, ok := UploadDir(collection)
	if !ok {
		return nil, errs.NewUnknownCollectionError(collection)
	}

	baseName := SanitizeBaseName(entryID)
	if baseName == "" {
		return nil, errs.NewInvalidEntryIDError("Entry identifier contains invalid characters")
	}

	filename := baseName + documentExtension(uploadedName)
	targetDir := filepath.Join(r.roots.Write(), dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, errs.NewContentWriteError(targetDir, err)
	}

	targetPath := filepath.Join(targetDir, filename)
	_, statErr := os.Stat(targetPath)
	exists := statErr == nil
	if exists && !overwrite {
		return nil, errs.NewAlreadyExists(filename)
	}

	if err := writeFileAtomic(targetPath, data); err != nil {
		return nil, errs.NewContentWriteError(targetPath, err)
	}

	outcome := models.OutcomeCreated
	if exists {
		outcome = models.OutcomeUpdated
	}

	r.logger.Info().
		Str("collection", collection).
		Str("filename", filename).
		Str("outcome", string(outcome)).
		Msg("Stored content document")

	return &models.StoredDocument{
		Collection: collection,
		EntryID:    baseName,
		Filename:   filename,
		Outcome:    outcome,
	}, nil
}

// writeFileAtomic writes through a temp file in the same directory so readers
// never observe a partially written document.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
