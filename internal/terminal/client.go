package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a resolved catalog entry
type Item struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// OrderSummary is one row of the order history listing
type OrderSummary struct {
	Filename      string          `json:"filename"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CreatedBy     string          `json:"created_by"`
	OrderDate     time.Time       `json:"order_date"`
	OrderTotal    decimal.Decimal `json:"order_total"`
}

// DetailItem is one line item in an order preview
type DetailItem struct {
	Barcode  string          `json:"barcode"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
	VAT      decimal.Decimal `json:"vat"`
}

// OrderDetail is the preview of one persisted order
type OrderDetail struct {
	Headers []string     `json:"headers"`
	Items   []DetailItem `json:"items"`
}

// SearchFilter holds the optional, ANDed history search fields
type SearchFilter struct {
	Customer  string
	CreatedBy string
	Date      string
}

// Empty reports whether no filter field is set
func (f SearchFilter) Empty() bool {
	return f.Customer == "" && f.CreatedBy == "" && f.Date == ""
}

// SaveOrderRequest is the payload for persisting a finished draft
type SaveOrderRequest struct {
	CustomerName  string
	CustomerPhone string
	Username      string
	CreatedBy     string
	Items         []LineItem
}

// UploadResult describes a completed inventory upload
type UploadResult struct {
	Count   int    `json:"count"`
	SavedAs string `json:"saved_as"`
}

// Client is the typed HTTP client for the order API. Every call carries a
// bounded timeout; expiry surfaces as the operation's transport error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an API client for the given base URL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ResolveItem looks up one barcode. A 404 maps to ErrNotFound; transport,
// parse and unexpected-status failures map to ErrLookupFailed.
func (c *Client) ResolveItem(ctx context.Context, barcode string) (*Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/item/"+url.PathEscape(barcode), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: server returned %s", ErrLookupFailed, resp.Status)
	}

	var item Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	return &item, nil
}

// SaveOrder posts a finished order and returns the filename the store
// assigned to it.
func (c *Client) SaveOrder(ctx context.Context, order SaveOrderRequest) (string, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveTransport, err)
	}

	form := url.Values{}
	form.Set("customer_name", order.CustomerName)
	form.Set("customer_phone", order.CustomerPhone)
	form.Set("username", order.Username)
	form.Set("created_by", order.CreatedBy)
	form.Set("items", string(items))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/save-order", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: server returned %s", ErrSaveFailed, resp.Status)
	}

	var result struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveTransport, err)
	}
	return result.Filename, nil
}

// ListOrders fetches one page of order history
func (c *Client) ListOrders(ctx context.Context, page, pageSize int) ([]OrderSummary, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	return c.fetchOrders(ctx, c.baseURL+"/orders/page?"+query.Encode())
}

// SearchOrders runs a single ANDed filter query
func (c *Client) SearchOrders(ctx context.Context, filter SearchFilter) ([]OrderSummary, error) {
	query := url.Values{}
	query.Set("customer", filter.Customer)
	query.Set("created_by", filter.CreatedBy)
	query.Set("date", filter.Date)

	return c.fetchOrders(ctx, c.baseURL+"/orders/search?"+query.Encode())
}

func (c *Client) fetchOrders(ctx context.Context, u string) ([]OrderSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server returned %s", ErrHistoryQuery, resp.Status)
	}

	var result struct {
		Orders []OrderSummary `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}
	return result.Orders, nil
}

// OrderDetails fetches the full line items of one order
func (c *Client) OrderDetails(ctx context.Context, filename string) (*OrderDetail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders/details/"+url.PathEscape(filename), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server returned %s", ErrHistoryQuery, resp.Status)
	}

	var detail OrderDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}
	return &detail, nil
}

// DownloadOrder retrieves the persisted artifact, untransformed
func (c *Client) DownloadOrder(ctx context.Context, filename string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders/download/"+url.PathEscape(filename), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHistoryQuery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server returned %s", ErrHistoryQuery, resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// DeleteOrder removes one persisted order by filename
func (c *Client) DeleteOrder(ctx context.Context, filename string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/orders/delete/"+url.PathEscape(filename), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: server returned %s", ErrDeleteFailed, resp.Status)
	}
	return nil
}

// LatestInventory returns the filename of the newest uploaded inventory, or
// ErrNotFound when none has been uploaded yet.
func (c *Client) LatestInventory(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest-inventory", nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: server returned %s", ErrLookupFailed, resp.Status)
	}

	var result struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	return result.Filename, nil
}

// UploadInventory sends an inventory spreadsheet to the catalog store. The
// extension is validated here before any bytes leave the terminal.
func (c *Client) UploadInventory(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xls" && ext != ".xlsx" {
		return nil, ErrBadExtension
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-inventory", &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server returned %s", ErrUploadFailed, resp.Status)
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return &result, nil
}
