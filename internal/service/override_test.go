package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readquest/readquest-server/internal/catalog"
	domainerrors "github.com/readquest/readquest-server/internal/errors"
	"github.com/readquest/readquest-server/internal/store"
)

// stubVerifier returns a fixed verdict and records what it was asked about.
type stubVerifier struct {
	match      bool
	reason     string
	lastTitle  string
	lastAuthor string
	lastFormat string
}

func (v *stubVerifier) VerifyCover(_ context.Context, _ []byte, format, title, author string) (bool, string) {
	v.lastFormat = format
	v.lastTitle = title
	v.lastAuthor = author
	return v.match, v.reason
}

func setupOverrideTest(t *testing.T, verifier *stubVerifier) *OverrideService {
	t.Helper()

	rows := "7\t\tM0007\tCharlotte's Web\t\tE.B. White\t680L\t3.4\tFiction\t\tAnimals\t\tA pig and a spider.\n"
	cat, err := catalog.Parse(strings.NewReader(rows), nil)
	require.NoError(t, err)

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewOverrideService(cat, s.CoverOverrides, verifier, nil)
}

// testPNG encodes a small solid-color image.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 10, 15))
	for y := range 15 {
		for x := range 10 {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUpload_StoresVerifiedCover(t *testing.T) {
	verifier := &stubVerifier{match: true, reason: "Cover matches."}
	svc := setupOverrideTest(t, verifier)

	override, err := svc.Upload(context.Background(), "7", testPNG(t))
	require.NoError(t, err)

	assert.Equal(t, "7", override.BookID)
	assert.Equal(t, "image/png", override.ContentType)
	assert.True(t, strings.HasPrefix(override.AssetID, "cov-"))
	assert.NotEmpty(t, override.BlurHash)
	assert.NotEmpty(t, override.Data)

	assert.Equal(t, "Charlotte's Web", verifier.lastTitle)
	assert.Equal(t, "E.B. White", verifier.lastAuthor)
	assert.Equal(t, "png", verifier.lastFormat)

	stored, err := svc.Get("7")
	require.NoError(t, err)
	assert.Equal(t, override.AssetID, stored.AssetID)
}

func TestUpload_RejectedVerdictCarriesReason(t *testing.T) {
	verifier := &stubVerifier{match: false, reason: "The image shows a different book."}
	svc := setupOverrideTest(t, verifier)

	_, err := svc.Upload(context.Background(), "7", testPNG(t))
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	assert.Contains(t, err.Error(), "different book")

	_, err = svc.Get("7")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound), "rejected upload must not be stored")
}

func TestUpload_UnknownBook(t *testing.T) {
	svc := setupOverrideTest(t, &stubVerifier{match: true})

	_, err := svc.Upload(context.Background(), "999", testPNG(t))
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestUpload_RejectsNonImage(t *testing.T) {
	svc := setupOverrideTest(t, &stubVerifier{match: true})

	_, err := svc.Upload(context.Background(), "7", []byte("definitely not an image"))
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestUpload_RejectsEmptyBody(t *testing.T) {
	svc := setupOverrideTest(t, &stubVerifier{match: true})

	_, err := svc.Upload(context.Background(), "7", nil)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestUpload_ReplacesExistingOverride(t *testing.T) {
	verifier := &stubVerifier{match: true}
	svc := setupOverrideTest(t, verifier)

	first, err := svc.Upload(context.Background(), "7", testPNG(t))
	require.NoError(t, err)

	second, err := svc.Upload(context.Background(), "7", testPNG(t))
	require.NoError(t, err)
	assert.NotEqual(t, first.AssetID, second.AssetID)

	stored, err := svc.Get("7")
	require.NoError(t, err)
	assert.Equal(t, second.AssetID, stored.AssetID)
}

func TestDelete_MissingOverrideSucceeds(t *testing.T) {
	svc := setupOverrideTest(t, &stubVerifier{})

	assert.NoError(t, svc.Delete("7"))
}

func TestDelete_RemovesOverride(t *testing.T) {
	svc := setupOverrideTest(t, &stubVerifier{match: true})

	_, err := svc.Upload(context.Background(), "7", testPNG(t))
	require.NoError(t, err)

	require.NoError(t, svc.Delete("7"))

	_, err = svc.Get("7")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
