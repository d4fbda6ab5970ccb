package registry_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visagelab/faceanalysis/internal/registry"
)

func TestLookup_KnownModels(t *testing.T) {
	reg := registry.New(t.TempDir(), true)

	detection, ok := reg.Lookup(registry.FaceDetectionYuNet)
	require.True(t, ok)
	assert.Contains(t, detection.Path, "face_detection_yunet_2023mar.onnx")
	assert.NotEmpty(t, detection.URL)

	recognition, ok := reg.Lookup(registry.FaceRecognitionArcFace)
	require.True(t, ok)
	assert.Contains(t, recognition.Path, "w600k_r50.onnx")

	_, ok = reg.Lookup("face_parsing")
	assert.False(t, ok)
}

func TestEnsureAvailable_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New(dir, true)

	model, ok := reg.Lookup(registry.FaceDetectionYuNet)
	require.True(t, ok)
	require.NoError(t, os.WriteFile(model.Path, []byte("model-bytes"), 0o644))

	path, err := reg.EnsureAvailable(registry.FaceDetectionYuNet)
	require.NoError(t, err)
	assert.Equal(t, model.Path, path, "present files resolve without touching the network")
}

func TestEnsureAvailable_EmptyFileRejected(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New(dir, true)

	model, _ := reg.Lookup(registry.FaceRecognitionArcFace)
	require.NoError(t, os.WriteFile(model.Path, nil, 0o644))

	_, err := reg.EnsureAvailable(registry.FaceRecognitionArcFace)
	assert.Error(t, err)
}

func TestEnsureAvailable_MissingWithDownloadsDisabled(t *testing.T) {
	reg := registry.New(t.TempDir(), true)

	_, err := reg.EnsureAvailable(registry.FaceDetectionYuNet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "downloads disabled")
}

func TestEnsureAvailable_UnknownModel(t *testing.T) {
	reg := registry.New(t.TempDir(), true)

	_, err := reg.EnsureAvailable("face_landmarker")
	assert.Error(t, err)
}

func TestEnsureAvailable_Download(t *testing.T) {
	payload := []byte("onnx-model-payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	reg := registry.NewWithModels(dir, false, []registry.Model{
		{
			Name: "test_model",
			URL:  server.URL + "/model.onnx",
			Path: filepath.Join(dir, "model.onnx"),
		},
	})

	path, err := reg.EnsureAvailable("test_model")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	// No partial files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnsureAvailable_DownloadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	reg := registry.NewWithModels(dir, false, []registry.Model{
		{Name: "broken", URL: server.URL, Path: filepath.Join(dir, "broken.onnx")},
	})

	_, err := reg.EnsureAvailable("broken")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "broken.onnx"))
	assert.True(t, os.IsNotExist(statErr), "failed downloads must not publish a file")
}

func TestPreCheck_FetchesEverything(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	}))
	defer server.Close()

	dir := t.TempDir()
	reg := registry.NewWithModels(dir, false, []registry.Model{
		{Name: "a", URL: server.URL + "/a", Path: filepath.Join(dir, "a.onnx")},
		{Name: "b", URL: server.URL + "/b", Path: filepath.Join(dir, "b.onnx")},
	})

	require.NoError(t, reg.PreCheck())
	for _, name := range []string{"a.onnx", "b.onnx"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err)
	}
}
