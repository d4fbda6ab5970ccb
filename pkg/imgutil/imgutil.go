package imgutil

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	log "github.com/sirupsen/logrus"
)

// LoadImage decodes an image file and applies any EXIF orientation so the
// returned frame matches what a viewer would display. Files without EXIF
// metadata are returned as decoded.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	orientation, err := readOrientation(path)
	if err != nil {
		log.Debugf("No EXIF orientation for %s: %v", path, err)
		return img, nil
	}

	return applyOrientation(img, orientation), nil
}

// readOrientation extracts the EXIF orientation tag from an image file.
func readOrientation(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return 0, err
	}

	tag, err := meta.Get(exif.Orientation)
	if err != nil {
		return 0, err
	}

	return tag.Int(0)
}

// applyOrientation rotates/flips the image per the EXIF orientation value.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// PixelBytes returns the raw NRGBA pixel bytes of the image. The result is
// deterministic for a given image content, which makes it suitable for
// deriving content keys.
func PixelBytes(img image.Image) []byte {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba.Pix
	}
	return imaging.Clone(img).Pix
}
