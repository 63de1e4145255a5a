package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/blobposter/internal/config"
	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/render"
	"github.com/rook-computer/blobposter/internal/web"
)

func testConfig(t *testing.T, csv string) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colors.csv")
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	cfg := config.Default()
	cfg.Colors = path
	cfg.Server.ListenAddr = "127.0.0.1:0"
	return cfg
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestStartServesUntilCancelled(t *testing.T) {
	var logs bytes.Buffer
	a := New(testConfig(t, "name,r,g,b\nCoral,255,127,80\n"), NewLogger(&logs, false))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Start(ctx) }()

	srv := a.Web.(*web.HTTPServer)
	require.Eventually(t, func() bool { return srv.ListenAddr() != "" }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + srv.ListenAddr() + "/api/v1/poster?theme=Coral&format=svg&seed=3")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, logs.String(), "palette ready")
}

func TestStartFailsOnBadColorTable(t *testing.T) {
	a := New(testConfig(t, "name,r,g\nCoral,255,127\n"), nil)
	err := a.Start(context.Background())
	require.Error(t, err)
	assert.True(t, perrors.Is(err, perrors.ErrCodeData))
}

func TestExitStopsStart(t *testing.T) {
	a := New(testConfig(t, "name,r,g,b\nCoral,255,127,80\n"), nil)
	a.Web = &web.NoopServer{}

	boom := errors.New("boom")
	done := make(chan error, 1)
	go func() { done <- a.Start(context.Background()) }()
	a.Exit(boom)
	a.Exit(errors.New("ignored"))

	select {
	case err := <-done:
		assert.Equal(t, boom, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not exit")
	}
}

func TestWritePoster(t *testing.T) {
	a := New(testConfig(t, "name,r,g,b\nSky,135,206,235\n"), nil)

	var buf bytes.Buffer
	require.NoError(t, a.WritePoster(&buf, PosterRequest{Theme: "Sky", Wobble: 0.1, Seed: 4}, render.FormatSVG))
	assert.Equal(t, 12, strings.Count(buf.String(), "<path"))

	var again bytes.Buffer
	require.NoError(t, a.WritePoster(&again, PosterRequest{Theme: "Sky", Wobble: 0.1, Seed: 4}, render.FormatSVG))
	assert.Equal(t, buf.String(), again.String())
}

func TestGenerateRejectsBadInput(t *testing.T) {
	a := New(testConfig(t, "name,r,g,b\nSky,135,206,235\n"), nil)

	_, err := a.Generate(PosterRequest{Theme: "Sky", Wobble: 0.9})
	assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidParameter))

	_, err = a.Generate(PosterRequest{Theme: "Nope", Wobble: 0.1})
	assert.True(t, perrors.Is(err, perrors.ErrCodeLookup))
}

func TestNewUsesCanvasConfig(t *testing.T) {
	cfg := testConfig(t, "name,r,g,b\nSky,135,206,235\n")
	cfg.Canvas = config.CanvasConfig{Width: 350, Height: 500, DPI: 50}
	a := New(cfg, nil)

	p, err := a.Generate(PosterRequest{Theme: "Sky", Wobble: 0.1, Seed: 1})
	require.NoError(t, err)
	img, err := a.Renderer.Render(p)
	require.NoError(t, err)
	assert.Equal(t, 350, img.Bounds().Dx())
	assert.Equal(t, 500, img.Bounds().Dy())
}
