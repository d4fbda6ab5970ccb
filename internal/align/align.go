package align

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"

	"github.com/visagelab/faceanalysis/internal/face"
)

// Named alignment templates. A template defines the reference geometry the
// landmarks are mapped against before recognition.
const (
	TemplateArcFace = "arcface"
)

// ArcFace reference geometry spans roughly this fraction of the final crop;
// the crop window is the landmark extent scaled up by the inverse.
const arcfaceSpanFactor = 2.4

// CropAligner produces recognition crops by centering a square window on the
// face landmarks and rescaling it to the requested output size.
type CropAligner struct{}

// NewCropAligner creates a landmark-centered crop aligner.
func NewCropAligner() *CropAligner {
	return &CropAligner{}
}

// Align extracts the face region around the landmarks and returns it scaled
// to size. Only the "arcface" template is supported.
func (a *CropAligner) Align(frame image.Image, landmarks face.Landmarks, template string, size image.Point) (image.Image, error) {
	if template != TemplateArcFace {
		return nil, fmt.Errorf("unknown alignment template: %s", template)
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid output size: %dx%d", size.X, size.Y)
	}

	bounds := landmarks.Bounds()
	center := bounds.Center()
	span := bounds.Width()
	if bounds.Height() > span {
		span = bounds.Height()
	}
	if span <= 0 {
		return nil, fmt.Errorf("degenerate landmarks: zero extent")
	}

	side := int(span * arcfaceSpanFactor)
	window := image.Rect(
		int(center.X)-side/2,
		int(center.Y)-side/2,
		int(center.X)+side/2,
		int(center.Y)+side/2,
	)

	// Crop clips the window to the frame bounds, so faces near an edge
	// still yield a usable patch.
	patch := imaging.Crop(frame, window)
	if patch.Bounds().Empty() {
		return nil, fmt.Errorf("landmarks outside frame bounds")
	}

	out := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	xdraw.CatmullRom.Scale(out, out.Bounds(), patch, patch.Bounds(), xdraw.Src, nil)
	return out, nil
}
