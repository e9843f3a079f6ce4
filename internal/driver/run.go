// Package driver runs the engine over a set of documents: discovery, loading,
// parallel processing, write-back and the clean-file cache.
package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"frtypo/internal/diag"
	"frtypo/internal/engine"
	"frtypo/internal/observ"
	"frtypo/internal/source"
	"frtypo/internal/trace"
)

// Options configures Run.
type Options struct {
	// Jobs bounds the number of documents processed at once; 0 means GOMAXPROCS.
	Jobs int
	// Write rewrites documents that received fixes.
	Write bool
	// BaseDir is used for display paths; empty means the working directory.
	BaseDir string
	// Cache skips documents known to be clean; nil disables it.
	Cache *Cache
	// LexiconDigest is folded into cache keys.
	LexiconDigest string
	Progress      ProgressSink
	Timer         *observ.Timer
}

// FileResult is the outcome for one document.
type FileResult struct {
	Path    string
	Display string
	FileID  source.FileID
	Result  engine.Result
	Cached  bool
	Written bool
	Err     error
}

// Outcome is what Run returns.
type Outcome struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Bag merges the records of every document, in path order.
func (o *Outcome) Bag() *diag.Bag {
	bag := diag.NewBag(0)
	for _, f := range o.Files {
		for _, rec := range f.Result.Records {
			bag.Add(rec)
		}
	}
	return bag
}

// Errors returns the documents that could not be loaded or written.
func (o *Outcome) Errors() []FileResult {
	var out []FileResult
	for _, f := range o.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Run processes paths with eng. Per-document I/O errors are reported in the
// outcome; the returned error is only set when the context was cancelled.
func Run(ctx context.Context, eng *engine.Engine, paths []string, opts Options) (*Outcome, error) {
	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)

	base := opts.BaseDir
	if base == "" {
		base = "."
	}
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	fileSet := source.NewFileSetWithBase(base)
	out := &Outcome{FileSet: fileSet, Files: make([]FileResult, len(paths))}

	for i, path := range paths {
		out.Files[i] = FileResult{Path: path, Display: DisplayPath(path, base)}
		emit(opts.Progress, Event{File: out.Files[i].Display, Stage: StageLoad, Status: StatusQueued})
	}

	// загрузка последовательна: FileSet раздаёт идентификаторы по порядку путей
	loadSpan := trace.Begin(tr, trace.ScopePhase, "load", parent)
	loadIdx := beginPhase(opts.Timer, "load")
	for i := range out.Files {
		fr := &out.Files[i]
		id, err := fileSet.Load(fr.Path)
		if err != nil {
			fr.Err = fmt.Errorf("load: %w", err)
			emit(opts.Progress, Event{File: fr.Display, Stage: StageLoad, Status: StatusError, Err: fr.Err})
			continue
		}
		fr.FileID = id
	}
	endPhase(opts.Timer, loadIdx, fmt.Sprintf("%d documents", len(paths)))
	loadSpan.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	configDigest := eng.Config().Digest()

	procSpan := trace.Begin(tr, trace.ScopePhase, "process", parent)
	pctx := trace.WithSpan(ctx, procSpan)

	g, gctx := errgroup.WithContext(pctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i := range out.Files {
		fr := &out.Files[i]
		if fr.Err != nil {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индекс уникален для каждой горутины, мьютекс не нужен
			processOne(gctx, eng, fileSet, fr, opts, configDigest)
			return nil
		})
	}
	err := g.Wait()
	procSpan.End("")
	return out, err
}

func processOne(ctx context.Context, eng *engine.Engine, fileSet *source.FileSet, fr *FileResult, opts Options, configDigest string) {
	start := time.Now()
	file := fileSet.Get(fr.FileID)
	text := string(file.Content)
	key := CacheKey(file.Hash, configDigest, opts.LexiconDigest)

	if clean, err := opts.Cache.IsClean(key); err == nil && clean {
		fr.Cached = true
		fr.Result = engine.Result{Path: fr.Path, Text: text}
		emit(opts.Progress, Event{File: fr.Display, Stage: StageCheck, Status: StatusDone, Elapsed: time.Since(start)})
		return
	}

	emit(opts.Progress, Event{File: fr.Display, Stage: StageCheck, Status: StatusWorking})
	res := eng.Process(ctx, engine.Document{Path: fr.Path, Text: text, File: fr.FileID})
	fr.Result = res
	if opts.Timer != nil {
		opts.Timer.Add("classify", res.Timings.Classify)
		opts.Timer.Add("rules", res.Timings.Rules)
	}

	if opts.Write && res.Fixed && res.Text != text {
		emit(opts.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusWorking})
		wstart := time.Now()
		if err := WriteBack(file, res.Text); err != nil {
			fr.Err = err
			emit(opts.Progress, Event{File: fr.Display, Stage: StageWrite, Status: StatusError, Err: err})
			return
		}
		fr.Written = true
		if opts.Timer != nil {
			opts.Timer.Add("write", time.Since(wstart))
		}
	}

	if len(res.Records) == 0 {
		// кэш вспомогательный: ошибка записи не портит результат
		_ = opts.Cache.MarkClean(key, fr.Path)
	}
	emit(opts.Progress, Event{
		File:    fr.Display,
		Stage:   StageCheck,
		Status:  StatusDone,
		Elapsed: time.Since(start),
		Records: len(res.Records),
	})
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}
