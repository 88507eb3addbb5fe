package terminal

import (
	"context"
	"strings"
	"sync"
)

// OrderSaver persists a finished draft to the order store
type OrderSaver interface {
	SaveOrder(ctx context.Context, order SaveOrderRequest) (string, error)
}

// CustomerInfo carries the order header fields. The acting user is an opaque
// identifier; this system does no authentication.
type CustomerInfo struct {
	CustomerName  string
	CustomerPhone string
	Username      string
	CreatedBy     string
}

// Submitter validates and sends a draft to the order store. One submission
// may be in flight at a time; a concurrent second call is rejected.
type Submitter struct {
	saver    OrderSaver
	mu       sync.Mutex
	inFlight bool
}

// NewSubmitter creates a submitter backed by the given saver
func NewSubmitter(saver OrderSaver) *Submitter {
	return &Submitter{saver: saver}
}

// InFlight reports whether a submission is currently outstanding
func (s *Submitter) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Submit snapshots the draft, recomputes every line item and sends the
// order. On success it returns the assigned filename and clears only the
// draft's line items; customer fields and the pending entry are untouched.
// On failure the draft is left intact so the operator can retry.
func (s *Submitter) Submit(ctx context.Context, draft *Draft, info CustomerInfo) (string, error) {
	if strings.TrimSpace(info.CreatedBy) == "" {
		return "", ErrMissingCreator
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	// Recompute totals on the outgoing snapshot; concurrent edits cannot
	// leave stale figures in the saved order.
	items := draft.Items()
	for i := range items {
		items[i].recompute()
	}

	filename, err := s.saver.SaveOrder(ctx, SaveOrderRequest{
		CustomerName:  info.CustomerName,
		CustomerPhone: info.CustomerPhone,
		Username:      info.Username,
		CreatedBy:     info.CreatedBy,
		Items:         items,
	})
	if err != nil {
		return "", err
	}

	draft.ClearItems()
	return filename, nil
}
