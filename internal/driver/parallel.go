package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"flux/internal/source"
)

// ListSourceFiles expands paths into the sorted list of .fx files a
// formatting run would visit. Callers use it to size progress reporting.
func ListSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	return collectSourceFiles(ctx, paths)
}

// collectSourceFiles expands paths into the sorted, deduplicated list of .fx
// files they denote, walking directories recursively.
func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if filepath.Ext(path) == ".fx" {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(p) == ".fx" {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}

// formatFiles runs the per-file formatting phase in parallel. Each goroutine
// owns one result index, so no mutex guards the slice.
func formatFiles(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			report(opts, path, StatusFormatting)
			result := FormatResult{Path: path}

			fileSet := source.NewFileSet()
			fileID, err := fileSet.Load(path)
			if err != nil {
				result.Err = err
				results[i] = result
				report(opts, path, StatusError)
				return nil
			}

			formatted, changed, err := formatSource(fileSet.Get(fileID), opts)
			if err != nil {
				result.Err = err
				results[i] = result
				report(opts, path, StatusError)
				return nil
			}

			result.Changed = changed
			if !opts.Check || opts.Stdout {
				result.Formatted = formatted
			}
			results[i] = result
			report(opts, path, StatusDone)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
