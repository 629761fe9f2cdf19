// Package images provides image decoding and placeholder-hash helpers for
// uploaded book covers.
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder

	"github.com/bbrks/go-blurhash"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// blurHashSize is the target size for BlurHash computation.
// BlurHash doesn't need high resolution - a small thumbnail produces nearly identical results.
// Using 64x64 reduces computation time from seconds to milliseconds.
const blurHashSize = 64

// maxCoverDim bounds stored cover dimensions. Uploads larger than this on
// either side are downscaled and re-encoded before storage.
const maxCoverDim = 1024

// Decode parses uploaded cover bytes into an image. The format name comes
// from the registered decoder that matched ("jpeg", "png", "gif", "webp").
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}

// DownscaleIfOversized re-encodes covers whose dimensions exceed maxCoverDim
// as a bounded JPEG. Images already within bounds pass through untouched,
// keeping their original bytes and format.
func DownscaleIfOversized(data []byte, img image.Image, format string) ([]byte, string, error) {
	bounds := img.Bounds()
	if bounds.Dx() <= maxCoverDim && bounds.Dy() <= maxCoverDim {
		return data, format, nil
	}

	scaled := scaleDown(img, maxCoverDim)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("encode downscaled cover: %w", err)
	}

	return buf.Bytes(), "jpeg", nil
}

// ComputeBlurHash generates a BlurHash string from a decoded cover.
// Uses 4x3 components for a good balance of size (~20-30 chars) and detail.
// The image is resized to a small thumbnail first for performance.
func ComputeBlurHash(img image.Image) (string, error) {
	thumbnail := resizeForBlurHash(img)

	// 4 horizontal, 3 vertical components - sweet spot for book covers
	hash, err := blurhash.Encode(4, 3, thumbnail)
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}

	return hash, nil
}

// resizeForBlurHash creates a small thumbnail suitable for BlurHash computation.
func resizeForBlurHash(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= blurHashSize && bounds.Dy() <= blurHashSize {
		return img
	}
	return scaleDown(img, blurHashSize)
}

// scaleDown resizes the image so its longer side equals maxSize, preserving
// aspect ratio. Uses simple nearest-neighbor scaling which is fast and
// sufficient for thumbnails and placeholders.
func scaleDown(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	// Calculate target dimensions maintaining aspect ratio
	var dstWidth, dstHeight int
	if srcWidth > srcHeight {
		dstWidth = maxSize
		dstHeight = (srcHeight * maxSize) / srcWidth
		if dstHeight < 1 {
			dstHeight = 1
		}
	} else {
		dstHeight = maxSize
		dstWidth = (srcWidth * maxSize) / srcHeight
		if dstWidth < 1 {
			dstWidth = 1
		}
	}

	// Create destination image
	dst := image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))

	// Simple box scaling - fast and sufficient for thumbnails
	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for y := 0; y < dstHeight; y++ {
		for x := 0; x < dstWidth; x++ {
			srcX := int(float64(x) * xRatio)
			srcY := int(float64(y) * yRatio)
			dst.Set(x, y, img.At(bounds.Min.X+srcX, bounds.Min.Y+srcY))
		}
	}

	return dst
}
