package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Receipt builds an ESC/POS byte stream for an order receipt. The width is
// the paper width in characters: 32 for 58mm paper, 48 for 80mm.
type Receipt struct {
	buf   bytes.Buffer
	width int
}

// NewReceipt creates an initialized receipt of the given character width.
func NewReceipt(width int) *Receipt {
	if width <= 0 {
		width = 48
	}
	r := &Receipt{width: width}
	r.buf.Write([]byte{esc, '@'})
	return r
}

// Center switches to centered alignment.
func (r *Receipt) Center() *Receipt {
	r.buf.Write([]byte{esc, 'a', 1})
	return r
}

// Left switches back to left alignment.
func (r *Receipt) Left() *Receipt {
	r.buf.Write([]byte{esc, 'a', 0})
	return r
}

// Bold toggles emphasized text.
func (r *Receipt) Bold(on bool) *Receipt {
	b := byte(0)
	if on {
		b = 1
	}
	r.buf.Write([]byte{esc, 'E', b})
	return r
}

// Title prints a line in double width and height.
func (r *Receipt) Title(s string) *Receipt {
	r.buf.Write([]byte{gs, '!', 0x11})
	r.buf.WriteString(s)
	r.buf.WriteByte(lf)
	r.buf.Write([]byte{gs, '!', 0x00})
	return r
}

// Line prints one line of text.
func (r *Receipt) Line(s string) *Receipt {
	r.buf.WriteString(s)
	r.buf.WriteByte(lf)
	return r
}

// Linef prints one formatted line of text.
func (r *Receipt) Linef(format string, args ...interface{}) *Receipt {
	return r.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width dashed separator.
func (r *Receipt) Rule() *Receipt {
	r.buf.WriteString(strings.Repeat("-", r.width))
	r.buf.WriteByte(lf)
	return r
}

// Pair prints a label on the left and a value flushed to the right edge.
func (r *Receipt) Pair(label, value string) *Receipt {
	pad := r.width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	r.buf.WriteString(label)
	r.buf.WriteString(strings.Repeat(" ", pad))
	r.buf.WriteString(value)
	r.buf.WriteByte(lf)
	return r
}

// Item prints a line item: "3x Pen" with the line total on the right.
func (r *Receipt) Item(qty int, name, total string) *Receipt {
	return r.Pair(fmt.Sprintf("%dx %s", qty, name), total)
}

// Feed advances n blank lines.
func (r *Receipt) Feed(n int) *Receipt {
	for i := 0; i < n; i++ {
		r.buf.WriteByte(lf)
	}
	return r
}

// Cut sends the paper cut command.
func (r *Receipt) Cut() *Receipt {
	r.buf.Write([]byte{gs, 'V', 0x00})
	return r
}

// Bytes returns the accumulated ESC/POS stream.
func (r *Receipt) Bytes() []byte {
	return r.buf.Bytes()
}
