package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends a rendered receipt to a thermal printer. Connections are
// opened per job; receipt printing is rare enough that holding one open
// buys nothing.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Ready reports whether the printer is reachable right now.
	Ready() bool
}

type usbPrinter struct {
	device string
}

// NewUSBPrinter prints to a USB device file, e.g. /dev/usb/lp0.
func NewUSBPrinter(device string) Printer {
	return &usbPrinter{device: device}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.device, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.device, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.device, err)
	}
	return nil
}

func (p *usbPrinter) Ready() bool {
	_, err := os.Stat(p.device)
	return err == nil
}

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter prints over raw TCP, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address, timeout: 5 * time.Second}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Ready() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

type nullPrinter struct{}

// NewNullPrinter discards every job, for terminals without receipt hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (nullPrinter) Print([]byte) error { return nil }
func (nullPrinter) Ready() bool        { return false }

// New builds a printer from configuration.
//
//	kind: "usb", "network", or "none"
//	device: device file for USB printers
//	address: host:port for network printers
func New(kind, device, address string) (Printer, error) {
	switch kind {
	case "usb":
		if device == "" {
			return nil, fmt.Errorf("printer: device path is required for a usb printer")
		}
		return NewUSBPrinter(device), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for a network printer")
		}
		return NewNetworkPrinter(address), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", kind)
	}
}
