package imgutil_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visagelab/faceanalysis/pkg/imgutil"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadImage_RoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(10 * x), G: uint8(20 * y), B: 30, A: 255})
		}
	}

	img, err := imgutil.LoadImage(writePNG(t, src))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())

	r, g, b, _ := img.At(3, 2).RGBA()
	assert.Equal(t, uint32(30), r>>8)
	assert.Equal(t, uint32(40), g>>8)
	assert.Equal(t, uint32(30), b>>8)
}

func TestLoadImage_MissingFile(t *testing.T) {
	_, err := imgutil.LoadImage(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadImage_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not image data"), 0o644))

	_, err := imgutil.LoadImage(path)
	assert.Error(t, err)
}

func TestPixelBytes_Deterministic(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}

	assert.Equal(t, imgutil.PixelBytes(img), imgutil.PixelBytes(img))
}

func TestPixelBytes_NRGBAFastPath(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 3)
	}

	assert.Equal(t, []byte(img.Pix), imgutil.PixelBytes(img))
}

func TestPixelBytes_ConvertsOtherFormats(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(0, 0, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	pix := imgutil.PixelBytes(rgba)
	assert.Len(t, pix, 2*2*4)
	assert.Equal(t, uint8(200), pix[0])
}
