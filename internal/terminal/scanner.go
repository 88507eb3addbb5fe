package terminal

import (
	"fmt"
	"sync"
)

// RawValuer is a decode payload exposing its barcode as a raw-value string
type RawValuer interface {
	RawValue() string
}

// Scanner adapts black-box barcode decode events into barcode strings. The
// decoding subsystem itself (camera, permissions) is outside this package;
// it just delivers payloads or errors here.
type Scanner struct {
	mu        sync.Mutex
	open      bool
	onDecoded func(barcode string)
	lastErr   error
}

// NewScanner creates a scanner delivering decoded barcodes to the handler
func NewScanner(onDecoded func(barcode string)) *Scanner {
	return &Scanner{onDecoded: onDecoded}
}

// Open starts accepting decode deliveries and clears any previous error
func (s *Scanner) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.lastErr = nil
}

// Close stops decode delivery. Catalog lookups already issued for earlier
// scans are not cancelled.
func (s *Scanner) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// IsOpen reports whether the scanner accepts deliveries
func (s *Scanner) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Err returns the recorded decode failure, if any
func (s *Scanner) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Deliver feeds one decode event into the scanner. Deliveries to a closed
// scanner are dropped. A decode error is recorded as ErrDecodeUnavailable;
// otherwise the payload is coerced to a barcode string and handed to the
// handler.
func (s *Scanner) Deliver(payload any, decodeErr error) {
	s.mu.Lock()

	if !s.open {
		s.mu.Unlock()
		return
	}

	if decodeErr != nil {
		s.lastErr = fmt.Errorf("%w: %v", ErrDecodeUnavailable, decodeErr)
		s.mu.Unlock()
		return
	}

	s.lastErr = nil
	handler := s.onDecoded
	s.mu.Unlock()

	barcode := coerceBarcode(payload)
	if handler != nil && barcode != "" {
		handler(barcode)
	}
}

// coerceBarcode turns a decode payload into a string: plain strings pass
// through, raw-value payloads are unwrapped, anything else is formatted.
func coerceBarcode(payload any) string {
	switch v := payload.(type) {
	case nil:
		return ""
	case string:
		return v
	case RawValuer:
		return v.RawValue()
	default:
		return fmt.Sprint(v)
	}
}
