package admin

import (
	"context"
	"sort"

	"github.com/lakeland-data/lakeland/pkg/model"
)

// cancelCheckInterval bounds how many items a scan processes between
// cooperative cancellation checks.
const cancelCheckInterval = 1024

// IntegrityViolation names one dangling internal reference.
type IntegrityViolation struct {
	Subject   string `json:"subject" yaml:"subject"`
	Predicate string `json:"predicate" yaml:"predicate"`

	// Object is the internal reference URI that resolves to no
	// existing resource.
	Object string `json:"object" yaml:"object"`
}

// CheckIntegrity scans every triple whose object is an internal
// reference and reports each one that does not resolve to an existing
// resource. The scan runs inside a single read-only scope, so it sees a
// consistent snapshot and never observes half-committed writes. It
// completes the full scan rather than aborting on the first finding,
// and repairs nothing: repair is the cleanup engine's or an operator's
// call. Violations come back sorted by (subject, predicate, object).
func (r *Repository) CheckIntegrity(ctx context.Context) ([]IntegrityViolation, error) {
	txn, err := r.graph.Begin(false)
	if err != nil {
		return nil, err
	}
	defer txn.Discard()

	// materialize the existing-UID set once: the snapshot is immutable
	// for the lifetime of the scope, so one pass suffices
	existing := make(map[model.UID]struct{})
	err = txn.Resources(func(rec *model.ResourceRecord) error {
		existing[rec.UID] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var (
		violations []IntegrityViolation
		scanned    int
	)
	err = txn.Triples(func(t model.Triple) error {
		scanned++
		if scanned%cancelCheckInterval == 0 {
			if err := cancelled(ctx); err != nil {
				return err
			}
		}
		if t.Object.Kind != model.TermIRI {
			return nil
		}
		uid, ok := r.ns.UIDFor(t.Object.Value)
		if !ok {
			// external URI or auxiliary fragment node
			return nil
		}
		if _, live := existing[uid]; !live {
			violations = append(violations, IntegrityViolation{
				Subject:   t.Subject,
				Predicate: t.Predicate,
				Object:    t.Object.Value,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		if a.Predicate != b.Predicate {
			return a.Predicate < b.Predicate
		}
		return a.Object < b.Object
	})
	return violations, nil
}
