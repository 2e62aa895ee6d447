package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"detemplate/internal/buildpipeline"
	"detemplate/internal/diag"
	"detemplate/internal/templatesimplifier"
)

// SimplifyDirResult is one file's outcome from a SimplifyDir batch run.
type SimplifyDirResult struct {
	Path   string // path relative to the batch root
	Result SimplifyResult
	// Cached holds the summary served from a DiskCache hit. When non-nil,
	// Result is the zero value: the pipeline never ran for this file.
	Cached *DiskPayload
	Err    error
}

// listCppFiles returns a sorted list of every .cpp/.cc/.cxx/.hpp/.hxx/.h file
// under dir.
func listCppFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".cpp", ".cc", ".cxx", ".hpp", ".h", ".hxx":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// SimplifyDir runs Simplify over every C++ source file under dir,
// concurrently, and returns one result per file in deterministic
// (path-sorted) order. jobs caps the number of files processed at once;
// jobs <= 0 means GOMAXPROCS. progress, if non-nil, receives events from
// every file's pipeline, tagged by that file's path. cache, if non-nil, is
// consulted before running the pipeline on each file and updated after: a
// file whose content hash is already cached is reported from the cache
// instead of being re-lexed and re-simplified.
func SimplifyDir(ctx context.Context, dir string, maxDiagnostics int, settings templatesimplifier.Settings, jobs int, progress buildpipeline.ProgressSink, cache *DiskCache) ([]SimplifyDirResult, error) {
	files, err := listCppFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]SimplifyDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = simplifyOneCached(path, maxDiagnostics, settings, progress, cache)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// simplifyOneCached runs the pipeline over a single file, serving a
// DiskCache hit when one exists and populating the cache after a miss.
// A cache read/write failure is not fatal: it just means this file runs
// through the pipeline uncached.
func simplifyOneCached(path string, maxDiagnostics int, settings templatesimplifier.Settings, progress buildpipeline.ProgressSink, cache *DiskCache) SimplifyDirResult {
	if cache != nil {
		if key, err := hashFile(path); err == nil {
			if payload, ok, err := cache.Get(key); err == nil && ok {
				p := payload
				return SimplifyDirResult{Path: path, Cached: &p}
			}
			result, simplifyErr := Simplify(path, maxDiagnostics, settings, progress)
			if simplifyErr == nil {
				cache.Put(key, summarize(result))
			}
			return SimplifyDirResult{Path: path, Result: result, Err: simplifyErr}
		}
	}

	result, simplifyErr := Simplify(path, maxDiagnostics, settings, progress)
	return SimplifyDirResult{Path: path, Result: result, Err: simplifyErr}
}

func summarize(result SimplifyResult) DiskPayload {
	names := make([]string, 0, len(result.Result.Monomorphs))
	for name := range result.Result.Monomorphs {
		names = append(names, name)
	}
	sort.Strings(names)

	errCount, warnCount := 0, 0
	if result.Bag != nil {
		for _, d := range result.Bag.Items() {
			switch {
			case d.Severity >= diag.SevError:
				errCount++
			case d.Severity >= diag.SevWarning:
				warnCount++
			}
		}
	}
	return DiskPayload{Monomorphs: names, ErrorCount: errCount, WarningCount: warnCount}
}

// TotalDiagnostics sums HasErrors/HasWarnings across a batch, useful for a
// caller deciding the process exit code after a SimplifyDir run.
func TotalDiagnostics(results []SimplifyDirResult) (errors, warnings int) {
	for _, r := range results {
		if r.Cached != nil {
			errors += r.Cached.ErrorCount
			warnings += r.Cached.WarningCount
			continue
		}
		if r.Result.Bag == nil {
			continue
		}
		for _, d := range r.Result.Bag.Items() {
			switch {
			case d.Severity >= diag.SevError:
				errors++
			case d.Severity >= diag.SevWarning:
				warnings++
			}
		}
	}
	return errors, warnings
}
