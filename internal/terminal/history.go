package terminal

import (
	"context"
	"sync"
)

// HistoryClient is the slice of the order API the history browser uses
type HistoryClient interface {
	ListOrders(ctx context.Context, page, pageSize int) ([]OrderSummary, error)
	SearchOrders(ctx context.Context, filter SearchFilter) ([]OrderSummary, error)
	OrderDetails(ctx context.Context, filename string) (*OrderDetail, error)
	DownloadOrder(ctx context.Context, filename string) ([]byte, error)
	DeleteOrder(ctx context.Context, filename string) error
}

// History browses the persisted order store. It runs in one of two mutually
// exclusive modes per query: paged listing when no filter is set, filtered
// search otherwise. Its record cache is not a source of truth; every query
// replaces it wholesale and mutations re-fetch rather than merge.
type History struct {
	client   HistoryClient
	pageSize int

	mu          sync.Mutex
	page        int
	filter      SearchFilter
	records     []OrderSummary
	loading     bool
	lastErr     error
	preview     *OrderDetail
	previewName string
}

// NewHistory creates a history browser starting at page 1
func NewHistory(client HistoryClient, pageSize int) *History {
	if pageSize < 1 {
		pageSize = 15
	}
	return &History{
		client:   client,
		pageSize: pageSize,
		page:     1,
	}
}

// Refresh re-queries the store in the current mode. On success the cache is
// replaced wholesale; on failure the error is recorded and the cache kept.
func (h *History) Refresh(ctx context.Context) error {
	h.mu.Lock()
	h.loading = true
	filter := h.filter
	page := h.page
	h.mu.Unlock()

	var records []OrderSummary
	var err error
	if filter.Empty() {
		records, err = h.client.ListOrders(ctx, page, h.pageSize)
	} else {
		records, err = h.client.SearchOrders(ctx, filter)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.loading = false

	if err != nil {
		h.lastErr = err
		return err
	}

	h.records = records
	h.lastErr = nil
	return nil
}

// HasNext reports whether a next page exists: only in paged mode, and only
// when the current query returned a full page.
func (h *History) HasNext() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter.Empty() && len(h.records) == h.pageSize
}

// HasPrev reports whether a previous page exists
func (h *History) HasPrev() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter.Empty() && h.page > 1
}

// NextPage advances one page and refreshes. Without a full current page it
// is a no-op.
func (h *History) NextPage(ctx context.Context) error {
	if !h.HasNext() {
		return nil
	}
	h.mu.Lock()
	h.page++
	h.mu.Unlock()
	return h.Refresh(ctx)
}

// PrevPage goes back one page and refreshes; a no-op at page 1
func (h *History) PrevPage(ctx context.Context) error {
	if !h.HasPrev() {
		return nil
	}
	h.mu.Lock()
	h.page--
	h.mu.Unlock()
	return h.Refresh(ctx)
}

// SetFilter switches the browser into search mode. Pagination has no
// meaning while a filter is set.
func (h *History) SetFilter(filter SearchFilter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filter = filter
}

// ClearFilter leaves search mode and returns to page 1 of the unfiltered
// listing.
func (h *History) ClearFilter() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.filter = SearchFilter{}
	h.page = 1
}

// Filter returns the active search filter
func (h *History) Filter() SearchFilter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter
}

// Page returns the current 1-based page number
func (h *History) Page() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.page
}

// Records returns a copy of the cached summaries
func (h *History) Records() []OrderSummary {
	h.mu.Lock()
	defer h.mu.Unlock()
	records := make([]OrderSummary, len(h.records))
	copy(records, h.records)
	return records
}

// Loading reports whether a query is in flight
func (h *History) Loading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loading
}

// Err returns the error recorded by the last query, if any
func (h *History) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Preview fetches and caches the detail of one order. Only the currently
// open preview is cached; opening another replaces it.
func (h *History) Preview(ctx context.Context, filename string) (*OrderDetail, error) {
	detail, err := h.client.OrderDetails(ctx, filename)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.preview = detail
	h.previewName = filename
	return detail, nil
}

// ClosePreview drops the cached preview
func (h *History) ClosePreview() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.preview = nil
	h.previewName = ""
}

// Previewed returns the cached preview and the filename it belongs to
func (h *History) Previewed() (*OrderDetail, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.preview, h.previewName
}

// Download retrieves the persisted artifact without local transformation
func (h *History) Download(ctx context.Context, filename string) ([]byte, error) {
	return h.client.DownloadOrder(ctx, filename)
}

// Delete removes one order after explicit confirmation. On success the
// preview is closed if it showed the deleted order, and the list re-fetched;
// on failure the list is left unchanged.
func (h *History) Delete(ctx context.Context, filename string, confirm func(filename string) bool) error {
	if confirm == nil || !confirm(filename) {
		return ErrDeleteNotConfirmed
	}

	if err := h.client.DeleteOrder(ctx, filename); err != nil {
		return err
	}

	h.mu.Lock()
	if h.previewName == filename {
		h.preview = nil
		h.previewName = ""
	}
	h.mu.Unlock()

	return h.Refresh(ctx)
}
