package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeVideo(t *testing.T, dir string, label growth.Label, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, VideoFileName(label)), []byte(content), 0600))
}

func TestVideoFileName(t *testing.T) {
	assert.Equal(t, "WaterDeficient.mp4", VideoFileName(growth.WaterDeficient))
	assert.Equal(t, "Optimal.mp4", VideoFileName(growth.Optimal))
}

func TestNewLibrary_DefaultDir(t *testing.T) {
	assert.Equal(t, DefaultDir, NewLibrary("").Dir)
	assert.Equal(t, "/tmp/v", NewLibrary("/tmp/v").Dir)
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, growth.Optimal, "abc")
	lib := NewLibrary(dir)

	v, err := lib.Locate(growth.Optimal)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Optimal.mp4"), v.Path)
	assert.Equal(t, int64(3), v.Size)
	assert.Equal(t, growth.Optimal, v.Label)
}

func TestLocate_Missing(t *testing.T) {
	lib := NewLibrary(t.TempDir())

	v, err := lib.Locate(growth.LightDeficient)
	assert.Nil(t, v)
	assert.ErrorIs(t, err, ErrVideoNotFound)
	assert.Contains(t, err.Error(), "LightDeficient.mp4")
}

func TestLocate_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Optimal.mp4"), 0700))

	_, err := NewLibrary(dir).Locate(growth.Optimal)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestStatus(t *testing.T) {
	dir := t.TempDir()
	writeVideo(t, dir, growth.WaterDeficient, "w")
	lib := NewLibrary(dir)

	list := lib.Status()
	require.Len(t, list, len(growth.Labels()))
	for _, s := range list {
		assert.Equal(t, s.Label == growth.WaterDeficient, s.Present, s.Label)
		assert.Equal(t, lib.Path(s.Label), s.Path)
	}
}

func TestPull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/LightDeficient.mp4") {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.TrimPrefix(r.URL.Path, "/media/")))
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "videos")
	lib := NewLibrary(dir)
	require.NoError(t, os.MkdirAll(dir, 0700))
	writeVideo(t, dir, growth.Optimal, "local")

	list, err := lib.Pull(context.Background(), srv.URL+"/media/", false)
	require.NoError(t, err)
	require.Len(t, list, 4)

	got := map[growth.Label]string{}
	for _, r := range list {
		got[r.Label] = r.Status
	}
	assert.Equal(t, PullStatusDownloaded, got[growth.WaterDeficient])
	assert.Equal(t, PullStatusDownloaded, got[growth.NutrientDeficient])
	assert.Equal(t, PullStatusMissing, got[growth.LightDeficient])
	assert.Equal(t, PullStatusSkipped, got[growth.Optimal])

	b, err := os.ReadFile(lib.Path(growth.WaterDeficient))
	require.NoError(t, err)
	assert.Equal(t, "WaterDeficient.mp4", string(b))

	b, err = os.ReadFile(lib.Path(growth.Optimal))
	require.NoError(t, err)
	assert.Equal(t, "local", string(b))
}

func TestPull_Force(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("remote"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	writeVideo(t, dir, growth.Optimal, "local")
	lib := NewLibrary(dir)

	list, err := lib.Pull(context.Background(), srv.URL, true)
	require.NoError(t, err)
	for _, r := range list {
		assert.Equal(t, PullStatusDownloaded, r.Status)
	}

	b, err := os.ReadFile(lib.Path(growth.Optimal))
	require.NoError(t, err)
	assert.Equal(t, "remote", string(b))
}

func TestPull_InvalidURL(t *testing.T) {
	lib := NewLibrary(t.TempDir())

	_, err := lib.Pull(context.Background(), "", false)
	assert.Error(t, err)

	_, err = lib.Pull(context.Background(), "not a url", false)
	assert.Error(t, err)
}
