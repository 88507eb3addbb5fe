package terminal

import "errors"

// Every failure the terminal can surface. All are sentinel errors so callers
// can branch with errors.Is; user-facing messages are built from these. No
// operation retries automatically. A retry is always a repeated user action.
var (
	// ErrNotFound means the catalog has no entry for the barcode. Distinct
	// from ErrLookupFailed so the operator sees a different message.
	ErrNotFound = errors.New("barcode not found in inventory")

	// ErrLookupFailed covers transport and parse failures during resolution.
	ErrLookupFailed = errors.New("error checking barcode")

	// ErrEmptyBarcode is returned when committing with nothing staged.
	ErrEmptyBarcode = errors.New("no barcode staged")

	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrNoSuchItem      = errors.New("no line item at that position")

	// ErrMissingCreator is the submission precondition: no network call is
	// made without a creator name.
	ErrMissingCreator = errors.New("created by is required")

	// ErrSubmitInFlight rejects a second submit while one is outstanding.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrSaveFailed is a non-2xx save response; the wrapped message carries
	// the server status. ErrSaveTransport is everything below that.
	ErrSaveFailed    = errors.New("failed to save order")
	ErrSaveTransport = errors.New("error saving order")

	ErrHistoryQuery       = errors.New("failed to load orders")
	ErrDeleteFailed       = errors.New("failed to delete order")
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")

	// ErrDecodeUnavailable reports a camera/permission failure from the
	// barcode decoding subsystem.
	ErrDecodeUnavailable = errors.New("cannot access camera")

	// ErrBadExtension rejects inventory uploads that are not .xls/.xlsx.
	ErrBadExtension = errors.New("only .xls and .xlsx files are allowed")

	ErrUploadFailed = errors.New("failed to upload inventory")
)
