package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	perrors "github.com/rook-computer/blobposter/internal/errors"
	"github.com/rook-computer/blobposter/internal/palette"
	"github.com/rook-computer/blobposter/internal/poster"
	"github.com/rook-computer/blobposter/internal/render"
)

// HeaderPosterID carries the id assigned to each poster request.
const HeaderPosterID = "X-Poster-Id"

const qrSizePx = 256

// PaletteSource hands out the loaded palette. *palette.Loader satisfies it.
type PaletteSource interface {
	Get() (*palette.Palette, error)
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type themeResponse struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	R    uint8  `json:"r"`
	G    uint8  `json:"g"`
	B    uint8  `json:"b"`
}

type apiV1 struct {
	palette  PaletteSource
	renderer *render.RasterRenderer
	seed     uint64
	logger   *log.Logger
}

func (a *apiV1) handleThemes(w http.ResponseWriter, r *http.Request) {
	pal, err := a.palette.Get()
	if err != nil {
		writeError(w, err)
		return
	}
	names := pal.Names()
	resp := make([]themeResponse, 0, len(names))
	for _, name := range names {
		c, err := pal.Color(name)
		if err != nil {
			writeError(w, err)
			return
		}
		red, green, blue := c.RGB255()
		resp = append(resp, themeResponse{Name: name, Hex: c.Hex(), R: red, G: green, B: blue})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *apiV1) handlePoster(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	w.Header().Set(HeaderPosterID, id)

	q := r.URL.Query()
	theme := q.Get("theme")
	if theme == "" {
		writeError(w, perrors.New(perrors.ErrCodeInvalidParameter, "theme is required"))
		return
	}

	wobble := poster.DefaultWobble
	if raw := strings.TrimSpace(q.Get("wobble")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, perrors.New(perrors.ErrCodeInvalidParameter, "wobble must be a number, got %q", raw))
			return
		}
		wobble = parsed
	}
	if err := poster.ValidateWobble(wobble); err != nil {
		writeError(w, err)
		return
	}

	format, err := render.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}

	seed := a.seed
	if raw := q.Get("seed"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			writeError(w, perrors.New(perrors.ErrCodeInvalidParameter, "seed must be a non-negative integer, got %q", raw))
			return
		}
		seed = parsed
	}

	pal, err := a.palette.Get()
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := poster.Generate(pal, theme, wobble, poster.NewRand(seed))
	if err != nil {
		writeError(w, err)
		return
	}

	// Buffer so a render failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := a.renderer.Encode(&buf, p, format); err != nil {
		a.logger.Error("render failed", "poster_id", id, "err", err)
		writeError(w, err)
		return
	}

	a.logger.Debug("poster generated", "poster_id", id, "theme", theme, "wobble", wobble, "format", format, "bytes", buf.Len())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *apiV1) handleQRCode(w http.ResponseWriter, r *http.Request) {
	data, err := render.QRCodePNG(pageURL(r), qrSizePx)
	if err != nil {
		writeError(w, perrors.Wrap(perrors.ErrCodeInternal, err, "qr code"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

// pageURL reconstructs the address the client used to reach the UI.
func pageURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if fwd := r.Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + r.Host + "/"
}

// statusFor maps an error code onto an HTTP status.
func statusFor(code perrors.Code) int {
	switch code {
	case perrors.ErrCodeLookup:
		return http.StatusNotFound
	case perrors.ErrCodeInvalidParameter, perrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := perrors.GetCode(err)
	if code == "" {
		code = perrors.ErrCodeInternal
	}
	writeAPIError(w, statusFor(code), string(code), perrors.UserMessage(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
