package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/mchmarny/phenosim/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	initLogging(false)
	os.Exit(m.Run())
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = io.Discard
	err := app.Run(context.Background(), append([]string{appName}, args...))
	return buf.String(), err
}

func writeTestVideo(t *testing.T, dir string, label growth.Label) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, media.VideoFileName(label)), []byte("mp4"), 0600))
}

func TestPredictCommand(t *testing.T) {
	videoDir := t.TempDir()
	writeTestVideo(t, videoDir, growth.Optimal)

	out, err := runApp(t,
		"--config", t.TempDir(),
		"--video-dir", videoDir,
		"--lang", "en",
		"--format", "json",
		"predict", "--water", "300", "--fertilizer", "2.5", "--light", "7")
	require.NoError(t, err)

	var sim Simulation
	require.NoError(t, json.Unmarshal([]byte(out), &sim))
	require.NotNil(t, sim.Result)
	assert.Equal(t, 18.63, sim.Result.Height)
	assert.Equal(t, growth.Optimal, sim.Result.Label)
	assert.Equal(t, growth.Optimal.Describe(growth.LangEnglish), sim.Result.Description)
	assert.Equal(t, filepath.Join(videoDir, "Optimal.mp4"), sim.VideoPath)
	assert.Empty(t, sim.Warning)
	assert.Equal(t, growth.MinHeight, sim.MinHeight)
	assert.Equal(t, growth.MaxHeight, sim.MaxHeight)
}

func TestPredictCommand_MissingVideoYAML(t *testing.T) {
	out, err := runApp(t,
		"--config", t.TempDir(),
		"--video-dir", t.TempDir(),
		"--lang", "vi",
		"--format", "yaml",
		"predict", "--water", "100", "--fertilizer", "2.5", "--light", "7")
	require.NoError(t, err)

	var sim Simulation
	require.NoError(t, yaml.Unmarshal([]byte(out), &sim))
	require.NotNil(t, sim.Result)
	assert.Equal(t, growth.WaterDeficient, sim.Result.Label)
	assert.Equal(t, 14.67, sim.Result.Height)
	assert.Equal(t, growth.WaterDeficient.Describe(growth.LangVietnamese), sim.Result.Description)
	assert.Empty(t, sim.VideoPath)
	assert.Contains(t, sim.Warning, "WaterDeficient")
}

func TestPredictCommand_NonFinite(t *testing.T) {
	_, err := runApp(t,
		"--config", t.TempDir(),
		"--video-dir", t.TempDir(),
		"--lang", "en",
		"--format", "json",
		"predict", "--water", "NaN", "--fertilizer", "2.5", "--light", "7")
	assert.Error(t, err)
}

func TestVideosListCommand(t *testing.T) {
	videoDir := t.TempDir()
	writeTestVideo(t, videoDir, growth.LightDeficient)

	out, err := runApp(t,
		"--config", t.TempDir(),
		"--video-dir", videoDir,
		"--lang", "en",
		"--format", "json",
		"videos", "list")
	require.NoError(t, err)

	var list []*media.VideoStatus
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, len(growth.Labels()))
	for _, s := range list {
		assert.Equal(t, s.Label == growth.LightDeficient, s.Present, s.Label)
	}
}

func TestVideosPullCommand_NoURL(t *testing.T) {
	_, err := runApp(t,
		"--config", t.TempDir(),
		"--video-dir", t.TempDir(),
		"--lang", "en",
		"--format", "json",
		"videos", "pull", "--url", "")
	assert.Error(t, err)
}

func TestApp_InvalidFormat(t *testing.T) {
	_, err := runApp(t,
		"--config", t.TempDir(),
		"--video-dir", t.TempDir(),
		"--lang", "en",
		"--format", "xml",
		"videos", "list")
	assert.Error(t, err)
}

func TestApp_InvalidLang(t *testing.T) {
	_, err := runApp(t,
		"--config", t.TempDir(),
		"--video-dir", t.TempDir(),
		"--lang", "xx",
		"--format", "json",
		"videos", "list")
	assert.Error(t, err)
}

func TestGetConfig_Default(t *testing.T) {
	cfg := getConfig(context.Background())
	require.NotNil(t, cfg)
	require.NotNil(t, cfg.Config)
	assert.Equal(t, formatJSON, cfg.Format)
}

func TestEncode(t *testing.T) {
	v := map[string]int{"a": 1}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, formatJSON, v))
	assert.JSONEq(t, `{"a": 1}`, buf.String())

	buf.Reset()
	require.NoError(t, encode(&buf, formatYAML, v))
	assert.Equal(t, "a: 1\n", buf.String())

	assert.Error(t, encode(nil, formatJSON, v))
}
