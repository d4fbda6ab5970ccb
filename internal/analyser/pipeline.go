package analyser

import (
	"context"
	"fmt"
	"image"

	log "github.com/sirupsen/logrus"

	"github.com/visagelab/faceanalysis/internal/align"
	"github.com/visagelab/faceanalysis/internal/face"
)

// ExtractFaces runs the full detect -> align -> embed -> normalize pipeline
// on a frame. Zero detections is an empty result, not an error. Detector
// backend failures surface as *DetectionError.
func (a *Analyser) ExtractFaces(frame image.Image) ([]face.Face, error) {
	handle, err := a.Acquire()
	if err != nil {
		return nil, err
	}

	bounds := frame.Bounds()
	handle.Detector.Configure(a.cfg.ScoreThreshold, a.cfg.TopK, image.Pt(bounds.Dx(), bounds.Dy()))

	// The detector backend is not safely reentrant past this bound, so only
	// the Detect call is gated; embedding runs ungated.
	if err := a.gate.Acquire(context.Background(), 1); err != nil {
		return nil, &DetectionError{Err: err}
	}
	detections, err := handle.Detector.Detect(frame)
	a.gate.Release(1)
	if err != nil {
		return nil, &DetectionError{Err: err}
	}

	faces := make([]face.Face, 0, len(detections))
	for _, detection := range detections {
		if len(detection) < rawRecordLen {
			log.Warnf("Skipping malformed detection record of length %d", len(detection))
			continue
		}

		bbox := face.BoundingBox{
			X1: float64(detection[0]),
			Y1: float64(detection[1]),
			X2: float64(detection[2]),
			Y2: float64(detection[3]),
		}
		var landmarks face.Landmarks
		for i := range landmarks {
			landmarks[i] = face.Point{
				X: float64(detection[rawBBoxLen+2*i]),
				Y: float64(detection[rawBBoxLen+2*i+1]),
			}
		}
		score := float64(detection[rawScoreIndex])

		embedding, err := a.embed(handle, frame, landmarks)
		if err != nil {
			return nil, err
		}

		faces = append(faces, face.Face{
			BBox:            bbox,
			Landmarks:       landmarks,
			Score:           score,
			Embedding:       embedding,
			NormedEmbedding: face.L2Normalize(embedding),
			// Age and gender are attached by an external estimator; the
			// pipeline emits placeholders.
			Gender: 0,
			Age:    0,
		})
	}

	return faces, nil
}

// embed aligns the face region and runs the recognizer on it, returning the
// raw embedding flattened to a 1-D vector.
func (a *Analyser) embed(handle *Handle, frame image.Image, landmarks face.Landmarks) ([]float32, error) {
	size := handle.Recognizer.InputSize()
	crop, err := a.aligner.Align(frame, landmarks, align.TemplateArcFace, size)
	if err != nil {
		return nil, fmt.Errorf("failed to align face: %w", err)
	}

	input, shape := preprocess(crop)
	embedding, err := handle.Recognizer.Run(input, shape)
	if err != nil {
		return nil, fmt.Errorf("failed to embed face: %w", err)
	}
	return embedding, nil
}

// preprocess converts an aligned crop into the recognizer's input tensor:
// pixel values rescaled from [0,255] to [-1,1] via (x/127.5)-1, laid out as
// planar RGB (CHW) with a leading batch dimension of 1. The recognizer
// expects RGB channel order, which is what image.Image pixels decode to;
// BGR-sourced frames are reordered by the backend before reaching here.
func preprocess(img image.Image) ([]float32, []int64) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	plane := width * height
	data := make([]float32, 3*plane)

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data[i] = float32(r>>8)/127.5 - 1
			data[plane+i] = float32(g>>8)/127.5 - 1
			data[2*plane+i] = float32(b>>8)/127.5 - 1
			i++
		}
	}

	return data, []int64{1, 3, int64(height), int64(width)}
}
