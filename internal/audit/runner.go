package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"vidaudit/internal/classify"
	"vidaudit/internal/config"
	"vidaudit/internal/logging"
	"vidaudit/internal/report"
	"vidaudit/internal/scan"
	"vidaudit/internal/tally"
)

// LockFileName is the batch lock created in the report directory.
const LockFileName = ".vidaudit.lock"

// ErrBatchInProgress reports that another batch holds the report directory lock.
var ErrBatchInProgress = errors.New("another audit batch is running for this report directory")

// ProgressFunc receives (done, total, path) after each file. Calls are
// serialised but come from worker goroutines.
type ProgressFunc func(done, total int, path string)

// Options configures a Runner.
type Options struct {
	Workers       int
	Extensions    []string
	RAWExtensions []string
	ExcludeDirs   []string
	// ReportDir receives report files; empty means the scanned root. It is
	// excluded from the scan and holds the batch lock.
	ReportDir  string
	Thresholds report.Thresholds
	Progress   ProgressFunc
	Logger     *slog.Logger
}

// Runner audits directory trees.
type Runner struct {
	prober Prober
	iso    ISOReader
	opts   Options
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewRunner constructs a runner. iso may be nil to skip ISO lookups.
func NewRunner(prober Prober, iso ISOReader, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Runner{
		prober: prober,
		iso:    iso,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "audit"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// NewRunnerFromConfig wires ffprobe, exiftool and scan settings from cfg.
func NewRunnerFromConfig(cfg *config.Config, logger *slog.Logger, progress ProgressFunc) *Runner {
	timeout := cfg.ProbeTimeout()
	var iso ISOReader
	if cfg.Probe.ExiftoolEnabled {
		iso = Exiftool{Binary: cfg.Probe.ExiftoolBinary, Timeout: timeout}
	}
	return NewRunner(FFprobe{Binary: cfg.Probe.FFprobeBinary, Timeout: timeout}, iso, Options{
		Workers:       cfg.Scan.Workers,
		Extensions:    cfg.Scan.Extensions,
		RAWExtensions: cfg.Scan.RAWExtensions,
		ExcludeDirs:   cfg.Scan.ExcludeDirs,
		ReportDir:     cfg.Paths.ReportDir,
		Thresholds: report.Thresholds{
			ISO:    cfg.Report.ISOThreshold,
			RAWISO: cfg.Report.RAWISOThreshold,
		},
		Progress: progress,
		Logger:   logger,
	})
}

// Run audits every video under root and returns the report model.
func (r *Runner) Run(ctx context.Context, root string) (*report.Model, error) {
	root, err := filepath.Abs(strings.TrimSpace(root))
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("audit root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("audit root %s is not a directory", root)
	}

	reportDir := root
	if r.opts.ReportDir != "" {
		reportDir = r.opts.ReportDir
	}
	unlock, err := r.acquireLock(reportDir)
	if err != nil {
		return nil, err
	}
	defer unlock()

	exclude := append([]string(nil), r.opts.ExcludeDirs...)
	if filepath.Clean(reportDir) != root {
		exclude = append(exclude, reportDir)
	}
	files, err := scan.Videos(root, scan.Options{Extensions: r.opts.Extensions, ExcludeDirs: exclude})
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return r.run(ctx, root, paths)
}

// ClassifyPaths audits an explicit list of files without scanning or locking.
func (r *Runner) ClassifyPaths(ctx context.Context, paths []string) (*report.Model, error) {
	return r.run(ctx, "", paths)
}

func (r *Runner) acquireLock(dir string) (func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure report directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBatchInProgress, dir)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release batch lock", logging.Error(err), logging.Path(lock.Path()))
		}
	}, nil
}

type outcome struct {
	file    classify.File
	iso     string
	skipped *report.Skipped
}

func (r *Runner) run(ctx context.Context, root string, paths []string) (*report.Model, error) {
	batchID := r.newID()
	ctx = logging.WithBatchID(ctx, batchID)
	logger := logging.WithContext(ctx, r.logger)
	started := r.now()

	logger.Info("audit batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("root", root),
		logging.Int("files", len(paths)),
		logging.Int("workers", r.opts.Workers),
	)

	outcomes := make([]outcome, len(paths))
	partials := r.process(ctx, logger, paths, outcomes)

	if err := ctx.Err(); err != nil {
		logger.Info("audit batch cancelled",
			logging.String(logging.FieldEventType, "batch_cancelled"),
			logging.Error(err),
		)
		return nil, fmt.Errorf("audit cancelled: %w", err)
	}

	merged := tally.New()
	for _, partial := range partials {
		merged.Merge(partial)
	}

	in := report.Input{
		BatchID:    batchID,
		Root:       root,
		StartedAt:  started,
		FinishedAt: r.now(),
		Files:      make([]classify.File, 0, len(paths)),
		ISO:        make(map[string]string),
		Thresholds: r.opts.Thresholds,
		Tally:      merged,
	}
	for _, o := range outcomes {
		if o.skipped != nil {
			in.Skipped = append(in.Skipped, *o.skipped)
			continue
		}
		in.Files = append(in.Files, o.file)
		if o.iso != "" {
			in.ISO[o.file.Path] = o.iso
		}
	}
	model := report.Build(in)

	logger.Info("audit batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("classified", merged.Total),
		logging.Int("skipped", len(model.Skipped)),
		logging.Int("hdr", merged.HDR),
		logging.Int("warn", merged.Buckets[classify.BucketWarn]),
		logging.Duration("duration", model.Duration()),
	)
	return &model, nil
}

// process fans paths out to the worker pool and fills outcomes by index.
// It returns one partial tally per worker.
func (r *Runner) process(ctx context.Context, logger *slog.Logger, paths []string, outcomes []outcome) []*tally.Tally {
	workers := r.opts.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers == 0 {
		return nil
	}

	jobs := make(chan int)
	partials := make([]*tally.Tally, workers)
	var (
		wg         sync.WaitGroup
		progressMu sync.Mutex
		done       int
	)
	sampler := logging.NewProgressSampler(10)
	advance := func(path string) {
		progressMu.Lock()
		defer progressMu.Unlock()
		done++
		if r.opts.Progress != nil {
			r.opts.Progress(done, len(paths), path)
		}
		if sampler.ShouldLog(done, len(paths)) {
			logger.Info("audit progress",
				logging.String(logging.FieldEventType, "batch_progress"),
				logging.Int("done", done),
				logging.Int("total", len(paths)),
			)
		}
	}

	for w := 0; w < workers; w++ {
		partial := tally.New()
		partials[w] = partial
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = r.processFile(ctx, logger, paths[idx])
				if outcomes[idx].skipped == nil {
					partial.Add(outcomes[idx].file)
				}
				advance(paths[idx])
			}
		}()
	}

feed:
	for i := range paths {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return partials
}

func (r *Runner) processFile(ctx context.Context, logger *slog.Logger, path string) outcome {
	md, err := r.prober.Probe(ctx, path)
	if err != nil {
		if ctx.Err() == nil {
			logging.WarnWithContext(logger, "file skipped; metadata unavailable", "file_skipped",
				logging.Path(path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "run ffprobe on the file to inspect its streams"),
				logging.String(logging.FieldImpact, "file excluded from the report tally"),
			)
		}
		return outcome{skipped: &report.Skipped{Path: path, Reason: err.Error()}}
	}

	file := classify.ClassifyWithOptions(path, md, classify.Options{RAWExtensions: r.opts.RAWExtensions})

	var iso string
	if r.iso != nil {
		value, err := r.iso.ReadISO(ctx, path)
		if err != nil {
			logger.Debug("iso lookup failed", logging.Path(path), logging.Error(err))
		} else {
			iso = value
		}
	}

	logger.Debug("file classified",
		logging.Path(path),
		logging.String("resolution", string(file.Resolution.Tier)),
		logging.String("framerate", string(file.Framerate.Tier)),
		logging.String("color", string(file.Color.Tier)),
		logging.String("bucket", string(file.Bucket)),
	)
	return outcome{file: file, iso: iso}
}
