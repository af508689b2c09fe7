package driver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"addinlint/internal/diag"
	"addinlint/internal/fix"
	"addinlint/internal/rules"
	"addinlint/internal/source"
	"addinlint/internal/symbol"
)

// SnapshotSuffix marks the files AnalyzeDir picks up.
const SnapshotSuffix = ".snapshot.json"

// Options control one analysis run.
type Options struct {
	// MaxDiagnostics caps the bag per declaration; 0 means the default.
	MaxDiagnostics int

	// Jobs bounds the fan-out; <= 0 means GOMAXPROCS.
	Jobs int

	// NoCache bypasses the disk cache for both reads and writes.
	NoCache bool

	// Cache is the result cache; nil disables caching regardless of NoCache.
	Cache *DiskCache

	// Severity rewrites rule severities after analysis, keyed by rule code.
	Severity map[diag.Code]diag.Severity

	// WithFixes runs the fix synthesizer over the final diagnostics.
	WithFixes bool

	// Observer receives progress events; nil is fine.
	Observer Observer
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultConfig().MaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// Result is the outcome of analyzing one snapshot. Bag is always non-nil;
// when the snapshot itself could not be loaded it carries a single
// operational diagnostic and Prog is nil.
type Result struct {
	Path      string
	Prog      *symbol.Program
	Bag       *diag.Bag
	FromCache bool
}

// AnalyzeSnapshot loads one program snapshot and runs both rule phases over
// it: the per-declaration checks fan out across goroutines, then the
// end-of-program analyzer runs once behind the barrier.
func AnalyzeSnapshot(ctx context.Context, path string, opts Options) (Result, error) {
	opts.Observer.emit(Event{File: path, Stage: StageLoad, Status: StatusWorking})

	prog, err := symbol.LoadSnapshot(path)
	if err != nil {
		opts.Observer.emit(Event{File: path, Stage: StageLoad, Status: StatusError})
		bag := diag.NewBag(1)
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.SnapshotError,
			Message:  err.Error(),
		})
		return Result{Path: path, Bag: bag}, err
	}

	if !opts.NoCache && opts.Cache != nil {
		if bag, hit, cacheErr := opts.Cache.Get(prog.Hash, prog.Files); cacheErr == nil && hit {
			if opts.WithFixes {
				fix.Attach(prog, bag.Items())
			}
			opts.Observer.emit(Event{
				File: path, Stage: StageReport, Status: StatusDone,
				Diagnostics: bag.Len(), FromCache: true,
			})
			return Result{Path: path, Prog: prog, Bag: bag, FromCache: true}, nil
		}
	}

	opts.Observer.emit(Event{File: path, Stage: StageAnalyze, Status: StatusWorking})

	bag, err := runRules(ctx, prog, opts)
	if err != nil {
		opts.Observer.emit(Event{File: path, Stage: StageAnalyze, Status: StatusError})
		return Result{Path: path, Prog: prog, Bag: diag.NewBag(0)}, err
	}

	if !opts.NoCache && opts.Cache != nil {
		// Cache before fixes: fixes depend on live file content and are
		// re-synthesized per run.
		if cacheErr := opts.Cache.Put(prog.Hash, bag, prog.Files); cacheErr != nil {
			opts.Observer.emit(Event{File: path, Stage: StageReport, Status: StatusError})
		}
	}

	if opts.WithFixes {
		fix.Attach(prog, bag.Items())
	}

	opts.Observer.emit(Event{
		File: path, Stage: StageReport, Status: StatusDone, Diagnostics: bag.Len(),
	})
	return Result{Path: path, Prog: prog, Bag: bag}, nil
}

// runRules executes the two-phase rule engine. Each declaration gets a
// private bag slot so goroutines never contend; the merge preserves snapshot
// order before the final sort.
func runRules(ctx context.Context, prog *symbol.Program, opts Options) (*diag.Bag, error) {
	maxDiags := opts.maxDiagnostics()
	registry := rules.NewInterfaceRegistry()
	checker := rules.NewChecker(prog, registry)

	slots := make([]*diag.Bag, len(prog.Decls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), max(len(prog.Decls), 1)))
	for i, d := range prog.Decls {
		i, d := i, d
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			bag := diag.NewBag(maxDiags)
			checker.CheckDecl(d, severityReporter{
				next:      diag.BagReporter{Bag: bag},
				overrides: opts.Severity,
			})
			slots[i] = bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := diag.NewBag(maxDiags)
	for _, bag := range slots {
		if bag != nil {
			merged.Merge(bag)
		}
	}

	// The program phase attributes some facts to more than one declaration;
	// the dedup filter keeps repeats out of the bag at the source.
	rules.NewProgramAnalyzer(prog, registry).Run(diag.NewDedupReporter(severityReporter{
		next:      diag.BagReporter{Bag: merged},
		overrides: opts.Severity,
	}))

	merged.Dedup()
	merged.Sort()
	return merged, nil
}

// severityReporter rewrites rule severities on the way into the bag, so
// overrides apply uniformly to both analysis phases and the cache stores the
// effective level.
type severityReporter struct {
	next      diag.Reporter
	overrides map[diag.Code]diag.Severity
}

func (r severityReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	if override, ok := r.overrides[code]; ok {
		sev = override
	}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}

// AnalyzeDir analyzes every *.snapshot.json under dir (non-recursive), one
// worker per file. Results come back in name order regardless of completion
// order.
func AnalyzeDir(ctx context.Context, dir string, opts Options) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), SnapshotSuffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	for _, p := range paths {
		opts.Observer.emit(Event{File: p, Stage: StageLoad, Status: StatusQueued})
	}

	// Parallelism lives at the file level here; each snapshot runs its
	// declaration phase sequentially to keep the worker count bounded.
	inner := opts
	inner.Jobs = 1

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), max(len(paths), 1)))
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := AnalyzeSnapshot(gctx, p, inner)
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if err != nil && res.Bag == nil {
				return err
			}
			// Load failures are carried as diagnostics in the result;
			// the run itself keeps going over the other snapshots.
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
