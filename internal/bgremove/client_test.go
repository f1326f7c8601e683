package bgremove_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partflow/internal/bgremove"
)

func TestRemoveBackground_WritesPreview(t *testing.T) {
	result := []byte("fake png bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/remove", r.URL.Path)
		require.Equal(t, "png", r.URL.Query().Get("format"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "source.psd", header.Filename)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(result)
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "source.psd")
	require.NoError(t, os.WriteFile(src, []byte("layered source"), 0o644))
	dst := filepath.Join(dir, "previews", "out.png")

	c := bgremove.NewClient(srv.URL)
	got, err := c.RemoveBackground(context.Background(), src, dst)

	require.NoError(t, err)
	assert.Equal(t, dst, got)

	written, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, result, written)
}

func TestRemoveBackground_ServerErrorDiscardsOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "source.psd")
	require.NoError(t, os.WriteFile(src, []byte("layered source"), 0o644))
	dst := filepath.Join(dir, "out.png")

	c := bgremove.NewClient(srv.URL)
	_, err := c.RemoveBackground(context.Background(), src, dst)

	assert.Error(t, err)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "error body must not be left as a preview")
}

func TestRemoveBackground_MissingSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	dir := t.TempDir()
	c := bgremove.NewClient(srv.URL)
	_, err := c.RemoveBackground(context.Background(), filepath.Join(dir, "gone.psd"), filepath.Join(dir, "out.png"))
	assert.Error(t, err)
}
