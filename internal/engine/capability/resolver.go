// Package capability discovers the executable scripts that can act on a model.
package capability

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/sho/internal/core/domain"
)

// Resolver finds capability scripts by walking from a model's directory up
// to the filesystem root.
type Resolver struct {
	fsys fs.FS
}

// NewResolver creates a Resolver over the real filesystem.
func NewResolver() *Resolver {
	return NewResolverFS(os.DirFS("/"))
}

// NewResolverFS creates a Resolver over fsys, which stands for the tree rooted at "/".
func NewResolverFS(fsys fs.FS) *Resolver {
	return &Resolver{fsys: fsys}
}

// Resolve returns every *.sho executable in the model's directory and each of
// its ancestors, nearest directory first and sorted by file name within a
// directory. Unreadable directories and non-executable files are skipped.
func (r *Resolver) Resolve(modelPath string) []domain.CapabilityScript {
	abs, err := filepath.Abs(modelPath)
	if err != nil {
		return nil
	}

	var scripts []domain.CapabilityScript
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		scripts = append(scripts, r.scan(dir)...)
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}
	return scripts
}

func (r *Resolver) scan(dir string) []domain.CapabilityScript {
	rel := toFSPath(dir)

	// fs.ReadDir returns entries sorted by file name.
	entries, err := fs.ReadDir(r.fsys, rel)
	if err != nil {
		return nil
	}

	var scripts []domain.CapabilityScript
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != domain.ScriptExt {
			continue
		}
		info, err := fs.Stat(r.fsys, path.Join(rel, entry.Name()))
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			continue
		}
		scripts = append(scripts, domain.NewCapabilityScript(filepath.Join(dir, entry.Name())))
	}
	return scripts
}

// toFSPath converts an absolute OS path to an io/fs path relative to "/".
func toFSPath(dir string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(dir), "/")
	if rel == "" {
		return "."
	}
	return rel
}

// Dedup keeps the first script for each display name. Applied to the output
// of Resolve, the script nearest to the model wins.
func Dedup(scripts []domain.CapabilityScript) []domain.CapabilityScript {
	seen := make(map[string]struct{}, len(scripts))
	out := make([]domain.CapabilityScript, 0, len(scripts))
	for _, s := range scripts {
		if _, ok := seen[s.Name]; ok {
			continue
		}
		seen[s.Name] = struct{}{}
		out = append(out, s)
	}
	return slices.Clip(out)
}
