package prompt

import "unicode/utf8"

// Decoder assembles codepoints from raw terminal bytes, one byte at a time.
// Malformed input never fails; it simply produces nothing.
type Decoder struct {
	left int
	val  rune
}

// Push feeds one byte and reports the codepoint it completes, if any.
func (d *Decoder) Push(b byte) (rune, bool) {
	switch {
	case b < 0x80:
		d.left = 0
		return rune(b), true
	case b >= 0xC0:
		switch b >> 3 {
		case 0x18, 0x19, 0x1A, 0x1B: // 110xxxxx
			d.left = 1
			d.val = rune(b & 0x1F)
		case 0x1C, 0x1D: // 1110xxxx
			d.left = 2
			d.val = rune(b & 0x0F)
		case 0x1E: // 11110xxx
			d.left = 3
			d.val = rune(b & 0x07)
		default:
			d.left = 0
		}
		return 0, false
	case d.left > 0:
		d.left--
		d.val = d.val<<6 | rune(b&0x3F)
		if d.left == 0 && utf8.ValidRune(d.val) {
			return d.val, true
		}
	}
	return 0, false
}

// Reset drops a partially assembled sequence.
func (d *Decoder) Reset() {
	d.left = 0
	d.val = 0
}
