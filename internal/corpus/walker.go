package corpus

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WalkOptions controls corpus enumeration.
type WalkOptions struct {
	// Extension selects the source files to collect. Defaults to
	// SourceExtension when empty.
	Extension string

	// SkipHidden prunes dot-prefixed directories before descending.
	SkipHidden bool

	// SkipDirs is a set of directory names that are pruned before
	// descending, so excluded subtrees are never traversed.
	SkipDirs map[string]struct{}
}

// Walk recursively enumerates source files under root. Pruned directories
// (hidden or named in SkipDirs) are never entered, so files inside them are
// never observed. The result is in lexical walk order.
func Walk(root string, opts WalkOptions) ([]string, error) {
	ext := opts.Extension
	if ext == "" {
		ext = SourceExtension
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if opts.SkipHidden && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if _, skip := opts.SkipDirs[name]; skip {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// FilterRoot translates a dotted namespace filter into the directory to walk
// under the corpus root. When the first filter segment duplicates the root
// directory's own base name it is stripped and the lookup retried, so both
// "Modelica.Math" against ".../Modelica" and against its parent resolve to
// the same subtree. The second return value reports whether the directory
// exists; a missing subtree is a legitimate nothing-to-do condition, not an
// error.
func FilterRoot(root, namespace string) (string, bool) {
	if namespace == "" {
		return root, dirExists(root)
	}

	segments := strings.Split(namespace, ".")
	candidate := filepath.Join(append([]string{root}, segments...)...)
	if dirExists(candidate) {
		return candidate, true
	}

	if len(segments) > 1 && segments[0] == filepath.Base(root) {
		candidate = filepath.Join(append([]string{root}, segments[1:]...)...)
		if dirExists(candidate) {
			return candidate, true
		}
	}

	return candidate, false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
