package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
	"loctool.dev/pkg/loctool/internal/adapter"
	m "loctool.dev/pkg/loctool/internal/model"
)

// ErrRootNotFound is returned when the directory to walk does not exist.
var ErrRootNotFound = fmt.Errorf("root directory not found: %w", fs.ErrNotExist)

var errStopWalk = errors.New("walk stopped by consumer")

// WalkOptions restricts which files a TreeWalker yields.
type WalkOptions struct {
	Root m.Path
	// DirContains keeps only files whose parent directory path contains the
	// substring. It never prunes descent.
	DirContains string
	// FileNames keeps only files with one of these base names.
	FileNames []string
	// Extensions keeps only files whose name ends with one of these suffixes.
	Extensions []string
	// Exclude holds glob patterns matched against the slash-separated path
	// relative to Root. Patterns without a '/' also match the base name at
	// any depth. Matching directories are not descended into.
	Exclude []string
}

// TreeWalker enumerates files under a root directory.
type TreeWalker interface {
	// Files yields matching file paths lazily, in lexical order.
	//
	// A missing root yields a single ErrRootNotFound. Entries that cannot be
	// read are yielded as m.FileError and the walk continues. Any other error
	// ends the sequence.
	Files(ctx context.Context, opts WalkOptions) iter.Seq2[m.Path, error]
}

type treeWalker struct {
	fsAdapter adapter.SourceFSAdapter
}

// NewTreeWalker constructs a TreeWalker backed by the provided filesystem adapter.
func NewTreeWalker(fsAdapter adapter.SourceFSAdapter) TreeWalker {
	return &treeWalker{fsAdapter: fsAdapter}
}

func (w *treeWalker) Files(ctx context.Context, opts WalkOptions) iter.Seq2[m.Path, error] {
	return func(yield func(m.Path, error) bool) {
		excludes, err := compileExcludes(opts.Exclude)
		if err != nil {
			yield("", err)
			return
		}

		if _, err := w.fsAdapter.FileInfo(opts.Root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				yield(opts.Root, fmt.Errorf("%w: %s", ErrRootNotFound, opts.Root))
				return
			}

			yield(opts.Root, err)

			return
		}

		extensions := normalizeExtensions(opts.Extensions)
		root := filepath.Clean(string(opts.Root))

		slog.Debug("Walking tree", "root", root, "extensions", extensions, "exclude", len(excludes))

		walkErr := w.fsAdapter.Walk(m.Path(root), func(path string, d fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			if err != nil {
				if path == root && d == nil {
					return err
				}

				slog.Error("Failed to read directory entry", "path", path, "error", err)

				if !yield(m.Path(path), m.FileError{Path: m.Path(path), Err: err}) {
					return errStopWalk
				}

				return nil
			}

			if path != root && excludes.match(root, path) {
				if d.IsDir() {
					slog.Debug("Excluded directory", "path", path)
					return filepath.SkipDir
				}

				return nil
			}

			if d.IsDir() || !acceptFile(path, d.Name(), opts, extensions) {
				return nil
			}

			if !yield(m.Path(path), nil) {
				return errStopWalk
			}

			return nil
		})

		if walkErr != nil && !errors.Is(walkErr, errStopWalk) {
			yield("", walkErr)
		}
	}
}

func acceptFile(path, name string, opts WalkOptions, extensions []string) bool {
	if opts.DirContains != "" && !strings.Contains(filepath.Dir(path), opts.DirContains) {
		return false
	}

	if len(opts.FileNames) > 0 && !slices.Contains(opts.FileNames, name) {
		return false
	}

	if len(extensions) == 0 {
		return true
	}

	for _, ext := range extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// normalizeExtensions trims blanks and adds the leading dot when missing.
func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}

		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}

		normalized = append(normalized, ext)
	}

	return normalized
}

type excludePattern struct {
	matcher  glob.Glob
	baseName bool
}

type excludeSet []excludePattern

func compileExcludes(patterns []string) (excludeSet, error) {
	set := make(excludeSet, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		set = append(set, excludePattern{
			matcher:  g,
			baseName: !strings.Contains(pattern, "/"),
		})
	}

	return set, nil
}

func (s excludeSet) match(root, path string) bool {
	if len(s) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, p := range s {
		if p.matcher.Match(rel) {
			return true
		}

		if p.baseName && p.matcher.Match(base) {
			return true
		}
	}

	return false
}
