package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	data := encodePNG(t, 10, 15)

	img, format, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 15, img.Bounds().Dy())
}

func TestDecode_Garbage(t *testing.T) {
	_, _, err := Decode([]byte("this is not an image"))
	assert.Error(t, err)
}

func TestComputeBlurHash(t *testing.T) {
	data := encodePNG(t, 200, 300)

	img, _, err := Decode(data)
	require.NoError(t, err)

	hash, err := ComputeBlurHash(img)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestDownscaleIfOversized_SmallImagePassesThrough(t *testing.T) {
	data := encodePNG(t, 400, 600)

	img, format, err := Decode(data)
	require.NoError(t, err)

	out, outFormat, err := DownscaleIfOversized(data, img, format)
	require.NoError(t, err)
	assert.Equal(t, "png", outFormat)
	assert.Equal(t, data, out)
}

func TestDownscaleIfOversized_LargeImageBecomesBoundedJPEG(t *testing.T) {
	data := encodePNG(t, 2000, 1400)

	img, format, err := Decode(data)
	require.NoError(t, err)

	out, outFormat, err := DownscaleIfOversized(data, img, format)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", outFormat)

	scaled, scaledFormat, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", scaledFormat)
	assert.LessOrEqual(t, scaled.Bounds().Dx(), 1024)
	assert.LessOrEqual(t, scaled.Bounds().Dy(), 1024)
	// Aspect ratio survives the resize.
	assert.Equal(t, 1024, scaled.Bounds().Dx())
	assert.Equal(t, 716, scaled.Bounds().Dy())
}
