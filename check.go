package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sabaka/pkg/compiler"
	"sabaka/pkg/config"
	"sabaka/pkg/report"
	"sabaka/pkg/source"
)

// fileResult is the outcome of running the front end over one file.
type fileResult struct {
	name string
	src  string
	err  error
}

// loadSources resolves each path to one or more source files in store.
func loadSources(store *source.Store, paths []string) ([]string, error) {
	var names []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%s: %w", path, source.ErrFileNotFound)
			}
			return nil, err
		}

		if !info.IsDir() {
			f, err := store.Load(path)
			if err != nil {
				return nil, err
			}
			names = append(names, f.Name)
			continue
		}

		dirNames, err := store.LoadDir(path)
		if err != nil {
			return nil, err
		}
		if len(dirNames) == 0 {
			return nil, fmt.Errorf("%s: no %s files", path, source.Ext)
		}
		names = append(names, dirNames...)
	}
	return names, nil
}

// checkPaths runs the front end over every file named by paths. Each file is
// checked independently on its own goroutine; front-end failures land in the
// results, and only load errors or cancellation abort the run.
func checkPaths(ctx context.Context, paths []string, cfg *config.Config, logger logrus.FieldLogger) ([]fileResult, error) {
	store := source.NewStore()
	names, err := loadSources(store, paths)
	if err != nil {
		return nil, err
	}
	logger.WithField("files", len(names)).Debug("loaded sources")

	results := make([]fileResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := store.Get(name)
			if err != nil {
				return err
			}

			opts := cfg.Options()
			opts.Logger = logger
			_, err = compiler.Compile(name, f.Text, opts)
			results[i] = fileResult{name: name, src: f.Text, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(a, b int) bool { return results[a].name < results[b].name })
	return results, nil
}

// printResults reports every file in order and returns the number of failures.
func printResults(w io.Writer, results []fileResult) int {
	failed := 0
	for _, r := range results {
		if r.err == nil {
			report.Success(w, "OK", r.name)
			continue
		}
		failed++
		fmt.Fprintln(w)
		fmt.Fprint(w, report.Format(r.name, r.src, r.err))
	}

	fmt.Fprintln(w)
	summary := fmt.Sprintf("%d file(s) checked, %d failed", len(results), failed)
	if failed > 0 {
		report.Failure(w, "FAIL", fmt.Errorf("%s", summary))
	} else {
		report.Success(w, "PASS", summary)
	}
	return failed
}
