package terminal_test

import (
	"errors"
	"testing"

	"orderlist/internal/terminal"
)

type rawValuePayload struct{ value string }

func (p rawValuePayload) RawValue() string { return p.value }

func TestScanner_CoercesDecodePayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"plain string", "4006381333931", "4006381333931"},
		{"raw value payload", rawValuePayload{value: "12345"}, "12345"},
		{"other shape stringified", 67890, "67890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			s := terminal.NewScanner(func(barcode string) { got = barcode })
			s.Open()
			s.Deliver(tt.payload, nil)
			if got != tt.want {
				t.Errorf("decoded barcode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScanner_ClosedScannerDropsDeliveries(t *testing.T) {
	delivered := 0
	s := terminal.NewScanner(func(string) { delivered++ })

	s.Deliver("123", nil) // never opened
	s.Open()
	s.Close()
	s.Deliver("456", nil) // closed again

	if delivered != 0 {
		t.Errorf("closed scanner delivered %d barcodes, want 0", delivered)
	}
}

func TestScanner_DecodeErrorRecorded(t *testing.T) {
	delivered := 0
	s := terminal.NewScanner(func(string) { delivered++ })
	s.Open()

	s.Deliver(nil, errors.New("permission denied"))

	if !errors.Is(s.Err(), terminal.ErrDecodeUnavailable) {
		t.Errorf("Err = %v, want ErrDecodeUnavailable", s.Err())
	}
	if delivered != 0 {
		t.Errorf("handler called despite decode error")
	}

	// Reopening clears the recorded failure.
	s.Open()
	if s.Err() != nil {
		t.Errorf("Err not cleared on Open: %v", s.Err())
	}
}

func TestScanner_NilPayloadIgnored(t *testing.T) {
	delivered := 0
	s := terminal.NewScanner(func(string) { delivered++ })
	s.Open()
	s.Deliver(nil, nil)
	if delivered != 0 {
		t.Errorf("nil payload reached the handler")
	}
}
