// Package driver orchestrates a whole manifest run: load the
// declarations, derive every type's operator catalog, and collect
// per-type diagnostic bags. Types are independent of one another, so
// derivation fans out across workers.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"opforge/internal/diag"
	"opforge/internal/manifest"
	"opforge/internal/synth"
)

// Options tunes a manifest run.
type Options struct {
	// MaxDiagnostics bounds each diagnostic bag; <= 0 means unbounded.
	MaxDiagnostics int
	// Jobs is the max parallel workers; <= 0 picks GOMAXPROCS.
	Jobs int
}

// Result is the outcome for one declared type.
type Result struct {
	Type    string
	Catalog *synth.Catalog // nil when derivation failed
	Bag     *diag.Bag
}

// Outcome is the outcome of a whole manifest run.
type Outcome struct {
	Manifest *manifest.Manifest // nil when loading failed
	LoadBag  *diag.Bag
	Results  []Result
}

// HasErrors reports whether any phase produced an error diagnostic.
func (o *Outcome) HasErrors() bool {
	if o.LoadBag.HasErrors() {
		return true
	}
	for _, r := range o.Results {
		if r.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Merged collects every diagnostic into one sorted bag.
func (o *Outcome) Merged(max int) *diag.Bag {
	bag := diag.NewBag(max)
	bag.Merge(o.LoadBag)
	for _, r := range o.Results {
		bag.Merge(r.Bag)
	}
	bag.Sort()
	return bag
}

// Run loads the manifest at path and derives every declared type's
// catalog. Results keep manifest order regardless of scheduling.
func Run(ctx context.Context, path string, opts Options) (*Outcome, error) {
	loadBag := diag.NewBag(opts.MaxDiagnostics)
	out := &Outcome{LoadBag: loadBag}

	m, ok := manifest.Load(path, diag.BagReporter{Bag: loadBag})
	if !ok {
		return out, nil
	}
	out.Manifest = m
	out.Results = make([]Result, len(m.Types))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, entry := range m.Types {
		i, entry := i, entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(opts.MaxDiagnostics)
			catalog, _ := synth.Attach(diag.BagReporter{Bag: bag}, entry.Decl, entry.Requests...)
			bag.Sort()
			out.Results[i] = Result{
				Type:    entry.Decl.Name(),
				Catalog: catalog,
				Bag:     bag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
