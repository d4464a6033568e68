package ansi

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	out := FromImage(solid(color.RGBA{R: 255, A: 255}, 16, 16), 4, 3)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 4, Width(l))
		assert.Equal(t, "▀▀▀▀", Strip(l))
	}
	assert.Contains(t, out, "\x1b[38;2;")
}

func TestDecode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(color.White, 2, 2)))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	_, err = Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestCell(t *testing.T) {
	got := Cell('x', colorful.Color{R: 1}, colorful.Color{B: 1})
	assert.Equal(t, "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255mx\x1b[0m", got)
}

func TestStripAndWidth(t *testing.T) {
	s := "\x1b[31mAlolan\x1b[0m Vulpix é"
	assert.Equal(t, "Alolan Vulpix é", Strip(s))
	assert.Equal(t, 15, Width(s))
}

func TestSideBySide(t *testing.T) {
	out := SideBySide([]string{"\x1b[1mab\x1b[0m", "a"}, []string{"one", "two", "three"}, 2)
	assert.Equal(t, "  ab  one\n  a   two\n      three\n", Strip(out))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{""}, Wrap("", 20))
	assert.Equal(t,
		[]string{"Alolan Vulpix is a", "Fire type in Kanto", "and Ice type in", "Alola"},
		Wrap("Alolan Vulpix is a Fire type in Kanto and Ice type in Alola", 18))
}
