package render

import (
	"image"
	"image/color"
)

const (
	glyphRows    = 5
	glyphAdvance = 4 // 3 columns plus a 1px gap
)

// glyphs is a 3x5 pixel font covering everything a palette label can
// contain: digits for numeric codes and capital letters for the label
// alphabet.
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	'A': {"010", "101", "111", "101", "101"},
	'B': {"110", "101", "110", "101", "110"},
	'C': {"011", "100", "100", "100", "011"},
	'D': {"110", "101", "101", "101", "110"},
	'E': {"111", "100", "110", "100", "111"},
	'F': {"111", "100", "110", "100", "100"},
	'G': {"011", "100", "101", "101", "011"},
	'H': {"101", "101", "111", "101", "101"},
	'I': {"111", "010", "010", "010", "111"},
	'J': {"001", "001", "001", "101", "010"},
	'K': {"101", "110", "100", "110", "101"},
	'L': {"100", "100", "100", "100", "111"},
	'M': {"101", "111", "101", "101", "101"},
	'N': {"110", "101", "101", "101", "101"},
	'O': {"111", "101", "101", "101", "111"},
	'P': {"110", "101", "110", "100", "100"},
	'Q': {"010", "101", "101", "010", "001"},
	'R': {"110", "101", "110", "101", "101"},
	'S': {"011", "100", "010", "001", "110"},
	'T': {"111", "010", "010", "010", "010"},
	'U': {"101", "101", "101", "101", "111"},
	'V': {"101", "101", "101", "101", "010"},
	'W': {"101", "101", "101", "111", "101"},
	'X': {"101", "101", "010", "101", "101"},
	'Y': {"101", "101", "010", "010", "010"},
	'Z': {"111", "001", "010", "100", "111"},
}

// labelWidth is the pixel width of a rendered label.
func labelWidth(text string) int {
	if text == "" {
		return 0
	}
	return len(text)*glyphAdvance - 1
}

// drawText writes text starting at (x, y) in the given color. Pixels
// outside the image are clipped; unknown runes advance silently.
func drawText(img *image.NRGBA, x, y int, text string, fg color.NRGBA) {
	bounds := img.Bounds()
	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += glyphAdvance
			continue
		}
		for row, line := range glyph {
			for col := 0; col < len(line); col++ {
				if line[col] != '1' {
					continue
				}
				px, py := cx+col, y+row
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					img.SetNRGBA(px, py, fg)
				}
			}
		}
		cx += glyphAdvance
	}
}
