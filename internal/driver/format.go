package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"flux/internal/ast"
	"flux/internal/format"
	"flux/internal/source"
	"flux/internal/types"
)

// ParseFunc turns a loaded source file into a syntax tree plus the type table
// its nodes reference. The front end is injected by the caller; the driver
// itself never parses.
type ParseFunc func(sf *source.File) (*ast.File, types.Table, error)

// frontEnd is the fallback parser used when FormatOptions.Parse is nil.
var frontEnd ParseFunc

// RegisterFrontEnd installs the parser FormatPaths falls back to when no
// ParseFunc is set explicitly. A front end registers itself from an init
// function and is linked in with a blank import, database/sql driver style.
func RegisterFrontEnd(fn ParseFunc) {
	frontEnd = fn
}

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check   bool
	Stdout  bool
	Jobs    int
	Options format.Options
	Parse   ParseFunc
	Cache   *Cache
	// Progress receives one event per file as it moves through the run.
	// Nil disables reporting.
	Progress chan<- Event
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// Event reports per-file progress of a formatting run.
type Event struct {
	File   string
	Status Status
}

// Status is the lifecycle state of one file within a run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusFormatting
	StatusDone
	StatusError
)

// FormatPaths formats the provided files or directories (recursively
// collecting .fx files). When opts.Check is true files are not modified;
// Changed indicates whether formatting would update the contents. When
// opts.Stdout is true the formatted content is returned in the results
// without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Parse == nil {
		opts.Parse = frontEnd
	}
	if opts.Parse == nil {
		return nil, errors.New("format: no front end wired into this build")
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	results, err := formatFiles(ctx, files, opts)
	if err != nil {
		return results, err
	}

	if opts.Check || opts.Stdout {
		return results, nil
	}

	// Disk writes stay sequential: the parallel phase never touches files.
	for i := range results {
		res := &results[i]
		if res.Err != nil || !res.Changed {
			continue
		}
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(res.Path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(res.Path, res.Formatted, mode.Perm()); err != nil {
			res.Err = err
		}
	}
	return results, nil
}

// formatSource renders one loaded file. The formatter core treats malformed
// trees as fatal; the panic is converted to a per-file error here so one bad
// file cannot take down a directory run.
func formatSource(sf *source.File, opts FormatOptions) (formatted []byte, changed bool, err error) {
	key := cacheKey(sf.Hash, opts.Options)
	if cached, ok, cacheErr := opts.Cache.Get(key); cacheErr == nil && ok {
		return cached, !bytes.Equal(sf.Content, cached), nil
	}

	defer func() {
		if r := recover(); r != nil {
			formatted, changed = nil, false
			err = fmt.Errorf("format: %s: %v", sf.Path, r)
		}
	}()

	file, table, err := opts.Parse(sf)
	if err != nil {
		return nil, false, err
	}

	formatted = format.Format(file, table, opts.Options)
	// A dead cache only costs speed.
	_ = opts.Cache.Put(key, formatted)
	return formatted, !bytes.Equal(sf.Content, formatted), nil
}

func report(opts FormatOptions, path string, status Status) {
	if opts.Progress == nil {
		return
	}
	opts.Progress <- Event{File: path, Status: status}
}
