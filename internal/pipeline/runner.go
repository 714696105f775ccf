package pipeline

import (
	"context"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
	"github.com/pfrederiksen/conf-tracker/internal/extract"
)

// Result is a run's report plus the raw candidate list, so callers can
// see exactly what was extracted regardless of reconciliation outcome.
type Result struct {
	Report
	Candidates []conference.Candidate `json:"parsed"`
}

// Runner sequences extraction and reconciliation over one fragment batch.
type Runner struct {
	extractor  *extract.Extractor
	reconciler *Reconciler
}

// NewRunner creates a new Runner over the given store handle.
func NewRunner(store Store) *Runner {
	return &Runner{
		extractor:  extract.New(),
		reconciler: NewReconciler(store),
	}
}

// Run extracts candidates from the fragments and reconciles them
// against the store. Pure composition, no logic of its own.
func (r *Runner) Run(ctx context.Context, fragments []string) Result {
	candidates := r.extractor.ExtractAll(fragments)
	report := r.reconciler.Reconcile(ctx, candidates)
	return Result{
		Report:     report,
		Candidates: candidates,
	}
}
