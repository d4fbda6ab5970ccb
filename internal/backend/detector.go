package backend

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"github.com/visagelab/faceanalysis/internal/analyser"
)

// YuNetDetector wraps OpenCV's FaceDetectorYN. One instance is shared through
// the analyser handle; the pipeline's concurrency gate bounds simultaneous
// Detect calls.
type YuNetDetector struct {
	detector gocv.FaceDetectorYN
}

// NewYuNetDetector loads the YuNet model from modelPath. The detector is
// created with placeholder input dimensions; Configure sets the real frame
// size before each detection.
func NewYuNetDetector(modelPath string) (*YuNetDetector, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("detection model not found: %w", err)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		modelPath,
		"", // ONNX models need no separate config file
		image.Pt(0, 0),
		0.5, // score threshold, overridden by Configure
		0.3, // NMS threshold
		100, // top K, overridden by Configure
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNetDetector{detector: detector}, nil
}

// Configure sets the detection parameters for the next frame.
func (d *YuNetDetector) Configure(scoreThreshold float32, topK int, inputSize image.Point) {
	d.detector.SetScoreThreshold(scoreThreshold)
	d.detector.SetTopK(topK)
	d.detector.SetInputSize(inputSize)
}

// Detect runs YuNet on the frame and returns flat detection records. YuNet
// emits boxes as (x, y, w, h); records are rewritten to (x1, y1, x2, y2)
// corner form before they leave the backend.
func (d *YuNetDetector) Detect(frame image.Image) ([]analyser.RawDetection, error) {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to convert frame: %w", err)
	}
	defer mat.Close()

	// YuNet expects BGR input.
	gocv.CvtColor(mat, &mat, gocv.ColorRGBToBGR)

	results := gocv.NewMat()
	defer results.Close()
	d.detector.Detect(mat, &results)

	detections := make([]analyser.RawDetection, 0, results.Rows())
	for row := 0; row < results.Rows(); row++ {
		record := make(analyser.RawDetection, results.Cols())
		for col := 0; col < results.Cols(); col++ {
			record[col] = results.GetFloatAt(row, col)
		}
		if len(record) >= 4 {
			record[2] += record[0] // w -> x2
			record[3] += record[1] // h -> y2
		}
		detections = append(detections, record)
	}

	return detections, nil
}

// Close releases the underlying OpenCV detector.
func (d *YuNetDetector) Close() error {
	return d.detector.Close()
}
