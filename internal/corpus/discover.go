package corpus

import (
	"context"
	"os"

	"github.com/vk/mobench/internal/ctxlog"
	"github.com/vk/mobench/internal/skiplist"
	"github.com/vk/mobench/internal/task"
)

// DiscoverOptions configures a discovery pass over a corpus.
type DiscoverOptions struct {
	// Root is the corpus root directory. Qualified identifiers are always
	// resolved against it, even when Namespace narrows the walk.
	Root string

	// Namespace optionally restricts the walk to a dotted sub-namespace.
	Namespace string

	// Limit caps the number of produced tasks when positive.
	Limit int

	// Skip holds the exclusion rules. Nil means the built-in defaults.
	Skip *skiplist.SkipList
}

// Discover walks the corpus and produces one task per resolvable top-level
// declaration. Unreadable files are logged and skipped; a namespace filter
// that matches no directory yields zero tasks without error.
func Discover(ctx context.Context, opts DiscoverOptions) ([]task.Task, error) {
	logger := ctxlog.FromContext(ctx)
	skip := opts.Skip
	if skip == nil {
		skip = skiplist.Default()
	}

	walkRoot, ok := FilterRoot(opts.Root, opts.Namespace)
	if !ok {
		logger.Warn("Namespace filter matches no directory, nothing to discover.",
			"namespace", opts.Namespace, "path", walkRoot)
		return nil, nil
	}

	files, err := Walk(walkRoot, WalkOptions{
		SkipHidden: true,
		SkipDirs:   skip.DirSet(),
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Corpus walk finished.", "root", walkRoot, "files", len(files))

	var tasks []task.Task
	for _, file := range files {
		if skip.SkipFile(file) {
			logger.Debug("Source file excluded by skip rule.", "file", file)
			continue
		}
		if IsPackageRoot(file) {
			// Package-root files only establish a namespace prefix.
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("Failed to read source unit, skipping.", "file", file, "error", err)
			continue
		}

		for _, decl := range ScanDeclarations(string(content)) {
			identifier := Resolve(file, decl.Name, opts.Root)
			if skip.SkipModel(identifier) {
				logger.Debug("Model excluded by skip rule.", "model", identifier)
				continue
			}
			tasks = append(tasks, task.Task{UnitPath: file, Identifier: identifier})
			if opts.Limit > 0 && len(tasks) >= opts.Limit {
				logger.Debug("Discovery limit reached.", "limit", opts.Limit)
				return tasks, nil
			}
		}
	}

	return tasks, nil
}
