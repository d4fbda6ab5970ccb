package backend

import (
	"fmt"
	"image"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// arcfaceInputSize is the crop size the ArcFace w600k_r50 model expects.
var arcfaceInputSize = image.Pt(112, 112)

var ortInitOnce sync.Once
var ortInitErr error

// initRuntime starts the ONNX Runtime environment once per process.
func initRuntime() error {
	ortInitOnce.Do(func() {
		if path := os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH"); path != "" {
			ort.SetSharedLibraryPath(path)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

// ArcFaceRecognizer computes 512-dimensional identity embeddings with an
// ArcFace ONNX model.
type ArcFaceRecognizer struct {
	session *ort.DynamicAdvancedSession
}

// NewArcFaceRecognizer creates an inference session for the model at
// modelPath. Input and output names are read from the model itself, so any
// single-input single-output ArcFace export works.
func NewArcFaceRecognizer(modelPath string) (*ArcFaceRecognizer, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("recognition model not found: %w", err)
	}
	if err := initRuntime(); err != nil {
		return nil, fmt.Errorf("failed to initialize onnx runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model: %w", err)
	}
	if len(inputs) != 1 || len(outputs) == 0 {
		return nil, fmt.Errorf("unexpected model signature: %d inputs, %d outputs", len(inputs), len(outputs))
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference session: %w", err)
	}

	return &ArcFaceRecognizer{session: session}, nil
}

// InputSize returns the crop size the recognizer expects.
func (r *ArcFaceRecognizer) InputSize() image.Point {
	return arcfaceInputSize
}

// Run executes the model on a single preprocessed crop and returns the output
// flattened to a 1-D vector.
func (r *ArcFaceRecognizer) Run(input []float32, shape []int64) ([]float32, error) {
	tensor, err := ort.NewTensor(ort.NewShape(shape...), input)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer tensor.Destroy()

	outputs := []ort.Value{nil}
	if err := r.session.Run([]ort.Value{tensor}, outputs); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	defer out.Destroy()

	data := out.GetData()
	embedding := make([]float32, len(data))
	copy(embedding, data)
	return embedding, nil
}

// Close releases the inference session.
func (r *ArcFaceRecognizer) Close() error {
	return r.session.Destroy()
}
