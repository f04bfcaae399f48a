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

// Alignment values for Builder.Align.
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size values for Builder.Size.
const (
	SizeNormal = 0x00
	SizeDouble = 0x11 // double width + double height
	SizeWide   = 0x10
	SizeTall   = 0x01
)

// Builder accumulates an ESC/POS byte stream for a receipt. Width is the
// print width in characters: 32 for 58mm paper, 48 for 80mm.
type Builder struct {
	buf   bytes.Buffer
	width int
}

// NewBuilder creates an initialized Builder with the given character width.
func NewBuilder(width int) *Builder {
	if width <= 0 {
		width = 32
	}
	b := &Builder{width: width}
	b.buf.Write([]byte{esc, '@'}) // initialize printer
	return b
}

// Align sets text alignment: AlignLeft, AlignCenter or AlignRight.
func (b *Builder) Align(a int) *Builder {
	b.buf.Write([]byte{esc, 'a', byte(a)})
	return b
}

// Bold enables or disables emphasized printing.
func (b *Builder) Bold(on bool) *Builder {
	v := byte(0)
	if on {
		v = 1
	}
	b.buf.Write([]byte{esc, 'E', v})
	return b
}

// Size sets the character size: SizeNormal, SizeDouble, SizeWide or SizeTall.
func (b *Builder) Size(s byte) *Builder {
	b.buf.Write([]byte{gs, '!', s})
	return b
}

// Line writes a line of text followed by a line feed.
func (b *Builder) Line(s string) *Builder {
	b.buf.WriteString(s)
	b.buf.WriteByte(lf)
	return b
}

// Linef writes a formatted line followed by a line feed.
func (b *Builder) Linef(format string, args ...interface{}) *Builder {
	return b.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width rule of the given character.
func (b *Builder) Rule(char byte) *Builder {
	return b.Line(strings.Repeat(string(char), b.width))
}

// Pair prints a left-aligned label and a right-aligned value on one line,
// e.g. "Subtotal                 200.00".
func (b *Builder) Pair(label, value string) *Builder {
	pad := b.width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	b.buf.WriteString(label)
	b.buf.WriteString(strings.Repeat(" ", pad))
	b.buf.WriteString(value)
	b.buf.WriteByte(lf)
	return b
}

// Item prints a receipt item line: "2x Widget" with a right-aligned total.
func (b *Builder) Item(qty int, name, total string) *Builder {
	return b.Pair(fmt.Sprintf("%dx %s", qty, name), total)
}

// Feed advances the paper n lines.
func (b *Builder) Feed(n int) *Builder {
	for i := 0; i < n; i++ {
		b.buf.WriteByte(lf)
	}
	return b
}

// Cut sends the partial paper cut command.
func (b *Builder) Cut() *Builder {
	b.buf.Write([]byte{gs, 'V', 0x01})
	return b
}

// Bytes returns the accumulated ESC/POS byte stream.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}
