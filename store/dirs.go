package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rskv-p/stuff/constant"
)

// Location names one of the two conventional persistence directories.
type Location int

const (
	Cache Location = iota
	Documents
)

func (l Location) String() string {
	switch l {
	case Cache:
		return "cache"
	case Documents:
		return "documents"
	}
	return fmt.Sprintf("location(%d)", int(l))
}

// ParseLocation accepts "cache" or "documents" (case-insensitive).
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cache", "caches":
		return Cache, nil
	case "documents", "docs":
		return Documents, nil
	}
	return 0, fmt.Errorf("%w: unknown location %q", constant.ErrUnsupported, s)
}

// Dirs holds the directory of each location. An empty entry means the
// location does not exist on this target.
type Dirs struct {
	Cache     string `json:"cache_dir"`
	Documents string `json:"documents_dir"`
}

// For returns the directory backing loc.
func (d Dirs) For(loc Location) (string, error) {
	var dir string
	switch loc {
	case Cache:
		dir = d.Cache
	case Documents:
		dir = d.Documents
	default:
		return "", fmt.Errorf("%w: %s", constant.ErrUnsupported, loc)
	}
	if dir == "" {
		return "", fmt.Errorf("%w: no %s directory on this target", constant.ErrUnsupported, loc)
	}
	return dir, nil
}

// DefaultDirs resolves the per-user directories for app. Documents honours
// STUFF_DOCUMENTS_DIR and stays empty where the target has no user documents.
func DefaultDirs(app string) Dirs {
	if app == "" {
		app = constant.DefaultAppName
	}

	var d Dirs
	if base, err := os.UserCacheDir(); err == nil {
		d.Cache = filepath.Join(base, app)
	} else {
		d.Cache = filepath.Join(os.TempDir(), app)
	}

	if !hasDocuments {
		return d
	}
	if dir := os.Getenv(constant.EnvDocumentsDir); dir != "" {
		d.Documents = dir
	} else if home, err := os.UserHomeDir(); err == nil {
		d.Documents = filepath.Join(home, constant.DocumentsDirName, app)
	}
	return d
}

// validName rejects anything that is not a plain file name.
func validName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
	case strings.ContainsAny(name, `/\`+"\x00"):
	case strings.ContainsRune(name, os.PathSeparator):
	default:
		return nil
	}
	return fmt.Errorf("%w: %q", constant.ErrInvalidName, name)
}
