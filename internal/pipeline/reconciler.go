package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
	"github.com/pfrederiksen/conf-tracker/internal/logger"
	"github.com/pfrederiksen/conf-tracker/internal/urlnorm"
)

// ErrNoIdentity marks a candidate whose URL normalizes to nothing: with
// no primary identity key it can neither be matched nor stored.
var ErrNoIdentity = errors.New("candidate has no usable URL")

// Store is the narrow persistence surface the reconciler needs. The
// concrete handle is injected at composition time; the reconciler never
// owns or constructs it.
type Store interface {
	// FindByIdentity returns records matching either identity key,
	// url matches ordered first, at most two. A nil key matches nothing.
	FindByIdentity(ctx context.Context, normalizedURL, normalizedCFPURL *string) ([]*conference.Record, error)
	Create(ctx context.Context, rec *conference.Record) (*conference.Record, error)
	Update(ctx context.Context, id int64, rec *conference.Record) (*conference.Record, error)
}

// ItemError records the failure of a single candidate within a run.
type ItemError struct {
	Item    string `json:"item"`
	Message string `json:"error"`
}

// Report aggregates the outcome of reconciling one candidate batch.
// NewRecords carries the records created during the run so callers can
// announce them.
type Report struct {
	Created    int                  `json:"created"`
	Updated    int                  `json:"updated"`
	Errors     []ItemError          `json:"errors"`
	NewRecords []*conference.Record `json:"new_conferences,omitempty"`
}

// Reconciler applies candidate batches against the store with
// create-or-update semantics and per-item failure isolation.
type Reconciler struct {
	store Store
}

// NewReconciler creates a new Reconciler over the given store handle.
func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile processes candidates sequentially. A failure on one
// candidate is recorded in the report, keyed by the candidate's name,
// and never aborts the rest of the batch.
func (r *Reconciler) Reconcile(ctx context.Context, candidates []conference.Candidate) Report {
	report := Report{Errors: []ItemError{}}

	for _, cand := range candidates {
		logger.IncrCounter("reconcile.candidates")

		if err := r.reconcileOne(ctx, cand, &report); err != nil {
			logger.IncrCounter("reconcile.errors")
			report.Errors = append(report.Errors, ItemError{
				Item:    cand.Name,
				Message: err.Error(),
			})
		}
	}

	return report
}

// reconcileOne decides whether one candidate is new or a duplicate of an
// existing record and applies the corresponding store operation.
func (r *Reconciler) reconcileOne(ctx context.Context, cand conference.Candidate, report *Report) error {
	normalizedURL := urlnorm.Normalize(cand.URL)
	normalizedCFPURL := urlnorm.Normalize(cand.CFPURL)

	if normalizedURL == nil {
		return ErrNoIdentity
	}

	rec := conference.NewRecord(cand, *normalizedURL, normalizedCFPURL)

	matches, err := r.store.FindByIdentity(ctx, normalizedURL, normalizedCFPURL)
	if err != nil {
		return fmt.Errorf("finding existing record: %w", err)
	}

	// The two identity keys can resolve to two different records when a
	// conference's main URL and CFP URL drifted apart across scrapes.
	// The url match wins; the ambiguity is logged, not silently merged.
	if len(matches) > 1 {
		logger.Warn("identity keys match two different records, url match takes precedence", logger.Fields{
			"candidate":      cand.Name,
			"url_match_id":   matches[0].ID,
			"other_match_id": matches[1].ID,
		})
	}

	if len(matches) > 0 {
		if _, err := r.store.Update(ctx, matches[0].ID, rec); err != nil {
			return fmt.Errorf("updating record %d: %w", matches[0].ID, err)
		}
		logger.IncrCounter("reconcile.updated")
		report.Updated++
		return nil
	}

	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}
	logger.IncrCounter("reconcile.created")
	report.Created++
	report.NewRecords = append(report.NewRecords, created)
	return nil
}
