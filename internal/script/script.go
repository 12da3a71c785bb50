// Package script decides which writing system a piece of text is in.
package script

// Block is an inclusive Unicode code point range.
type Block struct {
	Lo rune
	Hi rune
}

var Telugu = Block{Lo: 'ఀ', Hi: '౿'}

// Contains reports whether any rune of s falls inside the block.
func (b Block) Contains(s string) bool {
	for _, r := range s {
		if r >= b.Lo && r <= b.Hi {
			return true
		}
	}
	return false
}

func IsTelugu(s string) bool {
	return Telugu.Contains(s)
}
