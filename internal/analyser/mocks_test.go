package analyser_test

import (
	"image"

	"github.com/stretchr/testify/mock"

	"github.com/visagelab/faceanalysis/internal/analyser"
	"github.com/visagelab/faceanalysis/internal/cache"
	"github.com/visagelab/faceanalysis/internal/face"
)

// MockDetector is a mock implementation of the detector capability.
type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) Configure(scoreThreshold float32, topK int, inputSize image.Point) {
	m.Called(scoreThreshold, topK, inputSize)
}

func (m *MockDetector) Detect(frame image.Image) ([]analyser.RawDetection, error) {
	args := m.Called(frame)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analyser.RawDetection), args.Error(1)
}

// MockRecognizer is a mock implementation of the recognizer capability.
type MockRecognizer struct {
	mock.Mock
}

func (m *MockRecognizer) InputSize() image.Point {
	args := m.Called()
	return args.Get(0).(image.Point)
}

func (m *MockRecognizer) Run(input []float32, shape []int64) ([]float32, error) {
	args := m.Called(input, shape)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockAligner is a mock implementation of the alignment collaborator.
type MockAligner struct {
	mock.Mock
}

func (m *MockAligner) Align(frame image.Image, landmarks face.Landmarks, template string, size image.Point) (image.Image, error) {
	args := m.Called(frame, landmarks, template, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(image.Image), args.Error(1)
}

// rawDetection builds a flat detector record with landmarks spread inside the
// box and the given score.
func rawDetection(x1, y1, x2, y2, score float32) analyser.RawDetection {
	cx := (x1 + x2) / 2
	cy := (y1 + y2) / 2
	return analyser.RawDetection{
		x1, y1, x2, y2,
		x1 + 1, y1 + 1, // left eye
		x2 - 1, y1 + 1, // right eye
		cx, cy, // nose
		x1 + 1, y2 - 1, // left mouth
		x2 - 1, y2 - 1, // right mouth
		score,
	}
}

// testFrame returns a frame whose pixel content depends on seed.
func testFrame(seed uint8) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for i := range img.Pix {
		img.Pix[i] = seed + uint8(i%7)
	}
	return img
}

// newRig wires mocks with common defaults into an analyser: the aligner
// returns a fixed crop and the recognizer a fixed embedding unless the test
// overrides them first.
func newRig(cfg analyser.Config, detector *MockDetector, recognizer *MockRecognizer) (*analyser.Analyser, error) {
	aligner := &MockAligner{}
	aligner.On("Align", mock.Anything, mock.Anything, "arcface", mock.Anything).
		Return(image.NewNRGBA(image.Rect(0, 0, 4, 4)), nil)

	recognizer.On("InputSize").Return(image.Pt(112, 112)).Maybe()
	recognizer.On("Run", mock.Anything, mock.Anything).Return([]float32{3, 4}, nil).Maybe()

	detector.On("Configure", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()

	factory := func() (*analyser.Handle, error) {
		return &analyser.Handle{Detector: detector, Recognizer: recognizer}, nil
	}
	return analyser.New(cfg, factory, aligner, cache.New())
}
