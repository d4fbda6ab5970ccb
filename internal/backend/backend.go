// Package backend provides the concrete detector and recognizer capabilities
// behind the analyser's interfaces: YuNet face detection through OpenCV and
// ArcFace embedding through ONNX Runtime.
package backend

import (
	"github.com/visagelab/faceanalysis/internal/analyser"
	"github.com/visagelab/faceanalysis/internal/registry"
)

// NewHandleFactory returns a HandleFactory that resolves both model files
// through the registry and constructs the detector/recognizer pair. The
// factory runs lazily on the analyser's first Acquire.
func NewHandleFactory(reg *registry.Registry) analyser.HandleFactory {
	return func() (*analyser.Handle, error) {
		detectorPath, err := reg.EnsureAvailable(registry.FaceDetectionYuNet)
		if err != nil {
			return nil, err
		}
		recognizerPath, err := reg.EnsureAvailable(registry.FaceRecognitionArcFace)
		if err != nil {
			return nil, err
		}

		detector, err := NewYuNetDetector(detectorPath)
		if err != nil {
			return nil, err
		}
		recognizer, err := NewArcFaceRecognizer(recognizerPath)
		if err != nil {
			detector.Close()
			return nil, err
		}

		return &analyser.Handle{
			Detector:   detector,
			Recognizer: recognizer,
		}, nil
	}
}
