package registry

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

// ============================================================================
// Model Registry
// ============================================================================
//
// Static mapping of named models to their remote source and local path. The
// registry resolves file paths and fetches missing model files; it plays no
// part in runtime inference.
//
// ============================================================================

// Model names known to the registry.
const (
	FaceRecognitionArcFace = "face_recognition_arcface"
	FaceDetectionYuNet     = "face_detection_yunet"
)

// Model describes where a model file lives remotely and locally.
type Model struct {
	Name string
	URL  string
	Path string
}

// Registry resolves model names to local files, downloading them on demand.
type Registry struct {
	modelsDir    string
	skipDownload bool
	models       map[string]Model
	httpClient   *http.Client
}

// New creates a registry rooted at modelsDir. When skipDownload is set,
// EnsureAvailable never touches the network and missing files are an error.
func New(modelsDir string, skipDownload bool) *Registry {
	return &Registry{
		modelsDir:    modelsDir,
		skipDownload: skipDownload,
		models: map[string]Model{
			FaceRecognitionArcFace: {
				Name: FaceRecognitionArcFace,
				URL:  "https://huggingface.co/bluefoxcreation/insightface-retinaface-arcface-model/resolve/main/w600k_r50.onnx",
				Path: filepath.Join(modelsDir, "w600k_r50.onnx"),
			},
			FaceDetectionYuNet: {
				Name: FaceDetectionYuNet,
				URL:  "https://github.com/opencv/opencv_zoo/raw/main/models/face_detection_yunet/face_detection_yunet_2023mar.onnx",
				Path: filepath.Join(modelsDir, "face_detection_yunet_2023mar.onnx"),
			},
		},
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// NewWithModels creates a registry with an explicit model table instead of
// the built-in one.
func NewWithModels(modelsDir string, skipDownload bool, models []Model) *Registry {
	table := make(map[string]Model, len(models))
	for _, model := range models {
		table[model.Name] = model
	}
	return &Registry{
		modelsDir:    modelsDir,
		skipDownload: skipDownload,
		models:       table,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

// Lookup returns the descriptor for a named model.
func (r *Registry) Lookup(name string) (Model, bool) {
	model, ok := r.models[name]
	return model, ok
}

// EnsureAvailable returns the local path of a named model, downloading the
// file first if it is not already present.
func (r *Registry) EnsureAvailable(name string) (string, error) {
	model, ok := r.models[name]
	if !ok {
		return "", fmt.Errorf("unknown model: %s", name)
	}

	if info, err := os.Stat(model.Path); err == nil {
		if info.Size() == 0 {
			return "", fmt.Errorf("model file is empty: %s", model.Path)
		}
		return model.Path, nil
	}

	if r.skipDownload {
		return "", fmt.Errorf("model file not found: %s (downloads disabled)", model.Path)
	}

	if err := r.download(model); err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", name, err)
	}

	return model.Path, nil
}

// PreCheck fetches every registered model up front so first use never blocks
// on a download.
func (r *Registry) PreCheck() error {
	for name := range r.models {
		if _, err := r.EnsureAvailable(name); err != nil {
			return err
		}
	}
	return nil
}

// download fetches a model file to its local path, writing through a
// temporary file so a partial download is never visible at the final path.
func (r *Registry) download(model Model) error {
	if err := os.MkdirAll(r.modelsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}

	log.Infof("Downloading %s from %s", model.Name, model.URL)

	resp, err := r.httpClient.Get(model.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(r.modelsDir, filepath.Base(model.Path)+".partial-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	bar := progressbar.DefaultBytes(resp.ContentLength, filepath.Base(model.Path))
	written, err := io.Copy(io.MultiWriter(tmp, bar), resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write model file: %w", err)
	}
	if written == 0 {
		return fmt.Errorf("downloaded model file is empty")
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), model.Path); err != nil {
		return fmt.Errorf("failed to move model into place: %w", err)
	}

	log.Infof("Downloaded %s (%d bytes)", model.Name, written)
	return nil
}
