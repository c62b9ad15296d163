package content

import (
	"path/filepath"
	"strings"

	"github.com/rpupo63/boardgame-journal/config"
)

const (
	CollectionGames = "games"
	CollectionPlays = "plays"
	CollectionPosts = "posts"
)

// uploadDirs maps the collections that accept uploaded documents to their subdirectory.
var uploadDirs = map[string]string{
	CollectionPosts: "posts",
	CollectionGames: "games",
}

// UploadDir returns the subdirectory for an uploadable collection.
func UploadDir(collection string) (string, bool) {
	dir, ok := uploadDirs[collection]
	return dir, ok
}

// Roots is the ordered set of content directories. Override, when set, is searched
// before Default and receives every write.
type Roots struct {
	Override string
	Default  string
}

// RootsFromConfig reads CONTENT_BASE_DIR (override) and CONTENT_DEFAULT_DIR
// (default "content"). Relative paths are resolved against workDir.
func RootsFromConfig(cfg map[string]string, workDir string) Roots {
	resolve := func(p string) string {
		p = strings.TrimSpace(p)
		if p == "" {
			return ""
		}
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(workDir, p)
	}

	return Roots{
		Override: resolve(config.GetString(cfg, "CONTENT_BASE_DIR", "")),
		Default:  resolve(config.GetString(cfg, "CONTENT_DEFAULT_DIR", "content")),
	}
}

// Read lists the roots in priority order.
func (r Roots) Read() []string {
	if r.Override == "" || r.Override == r.Default {
		return []string{r.Default}
	}
	return []string{r.Override, r.Default}
}

// Write is the root new documents land in.
func (r Roots) Write() string {
	if r.Override != "" {
		return r.Override
	}
	return r.Default
}
