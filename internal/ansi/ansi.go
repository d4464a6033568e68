// Package ansi renders images and text blocks for truecolor terminals.
package ansi

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

// Decode decodes a PNG, JPEG, GIF or WebP image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// FromImage converts img to width x height cells of upper half blocks,
// each cell carrying two rows of pixels.
func FromImage(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buf strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			upper := average(colorAt(resized, x, y), colorAt(resized, x+1, y))
			lower := average(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buf.WriteString(Cell('▀', upper, lower))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// Cell writes char with a truecolor foreground and background.
func Cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", r1, g1, b1, r2, g2, b2, char)
}

func colorAt(img image.Image, x, y int) colorful.Color {
	b := img.Bounds()
	var c color.Color = color.Black
	if x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y {
		c = img.At(x, y)
	}
	cf, _ := colorful.MakeColor(c)
	return cf
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

// Strip removes SGR escape sequences.
func Strip(s string) string {
	var out strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			out.WriteRune(c)
		}
	}
	return out.String()
}

// Width is the number of visible runes in s.
func Width(s string) int {
	return len([]rune(Strip(s)))
}

// SideBySide prints left and right column blocks next to each other with
// gap spaces between them.
func SideBySide(left, right []string, gap int) string {
	leftWidth := 0
	for _, l := range left {
		leftWidth = max(leftWidth, Width(l))
	}

	var buf strings.Builder
	for i := 0; i < max(len(left), len(right)); i++ {
		buf.WriteString("  ")
		pad := leftWidth + gap
		if i < len(left) {
			buf.WriteString(left[i])
			pad -= Width(left[i])
		}
		if i < len(right) {
			buf.WriteString(strings.Repeat(" ", pad))
			buf.WriteString(right[i])
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

// Wrap breaks text into lines of at most width runes, never splitting words.
func Wrap(text string, width int) []string {
	if width < 10 {
		width = 40
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) <= width {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
