package analyser

import (
	"image"

	"github.com/visagelab/faceanalysis/internal/face"
)

// RawDetection is one flat detector record:
// values 0-3 are the bounding box (x1, y1, x2, y2), values 4-13 are the five
// landmark points as (x, y) pairs, and value 14 is the confidence score.
type RawDetection []float32

// Indices into a RawDetection record.
const (
	rawBBoxLen      = 4
	rawLandmarksLen = 10
	rawScoreIndex   = 14
	rawRecordLen    = 15
)

// Detector finds faces in a frame. Configure must be called before Detect
// whenever the frame dimensions change; implementations are not required to
// be reentrant past the pipeline's concurrency gate.
type Detector interface {
	Configure(scoreThreshold float32, topK int, inputSize image.Point)
	Detect(frame image.Image) ([]RawDetection, error)
}

// Recognizer computes identity embeddings from preprocessed face crops. Run
// takes a single input tensor with a leading batch dimension of 1 and returns
// the flattened output.
type Recognizer interface {
	InputSize() image.Point
	Run(input []float32, shape []int64) ([]float32, error)
}

// Aligner crops and aligns the face region identified by landmarks against a
// named template, producing a patch of the given size.
type Aligner interface {
	Align(frame image.Image, landmarks face.Landmarks, template string, size image.Point) (image.Image, error)
}

// Cache maps frame content to previously computed face lists. A stored empty
// list is a hit, distinct from a miss.
type Cache interface {
	Get(frame image.Image) ([]face.Face, bool)
	Put(frame image.Image, faces []face.Face)
}

// Handle is the shared (detector, recognizer) pair built lazily on first use.
type Handle struct {
	Detector   Detector
	Recognizer Recognizer
}

// HandleFactory constructs a Handle. It runs at most once per Acquire cycle;
// a failed construction publishes nothing and the next Acquire retries.
type HandleFactory func() (*Handle, error)
