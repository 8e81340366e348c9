package cli

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/mchmarny/phenosim/pkg/config"
	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/mchmarny/phenosim/pkg/media"
)

const (
	contentTypeMP4 = "video/mp4"
	contentTypeSVG = "image/svg+xml"
)

var templateFuncs = template.FuncMap{
	"cm": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"pct": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	},
}

type pageData struct {
	Version  string
	Commit   string
	Controls config.Controls
	Inputs   growth.Inputs
	Lang     string
	Sim      *Simulation
	Err      string
}

func newPageData(cfg *config.Config) *pageData {
	return &pageData{
		Version:  version,
		Commit:   commit,
		Controls: cfg.Controls,
		Inputs:   cfg.Controls.Defaults(),
		Lang:     cfg.Lang,
	}
}

func faviconHandler(w http.ResponseWriter, r *http.Request) {
	file, err := embedFS.ReadFile("assets/img/favicon.svg")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentTypeSVG)
	if _, err = w.Write(file); err != nil {
		slog.Error("failed to write favicon", "error", err)
	}
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, status int, d *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "home", d); err != nil {
		slog.Error("template render failed", "error", err)
	}
}

func homeViewHandler(tmpl *template.Template, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		renderPage(w, tmpl, http.StatusOK, newPageData(cfg))
	}
}

func simulateViewHandler(tmpl *template.Template, cfg *config.Config, lib *media.Library, m *metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := newPageData(cfg)
		d.Lang = requestLang(r, cfg.Lang)

		in, err := parseInputs(r, d.Inputs)
		if err != nil {
			d.Err = err.Error()
			renderPage(w, tmpl, http.StatusBadRequest, d)
			return
		}
		d.Inputs = in

		sim, err := simulate(lib, d.Lang, in)
		if err != nil {
			slog.Error("simulation failed", "error", err)
			d.Err = "unable to load simulation result"
			renderPage(w, tmpl, http.StatusInternalServerError, d)
			return
		}
		m.observe(sim)
		d.Sim = sim

		renderPage(w, tmpl, http.StatusOK, d)
	}
}

func videoHandler(lib *media.Library, m *metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		label, err := growth.ParseLabel(strings.TrimSuffix(r.PathValue("label"), ".mp4"))
		if err != nil {
			http.NotFound(w, r)
			return
		}

		v, err := lib.Locate(label)
		if err != nil {
			if errors.Is(err, media.ErrVideoNotFound) {
				m.missingVideos.WithLabelValues(string(label)).Inc()
				http.NotFound(w, r)
				return
			}
			slog.Error("failed to locate video", "label", label, "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", contentTypeMP4)
		http.ServeFile(w, r, v.Path)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}

// parseInputs reads water, fertilizer, and light from the query string.
// Absent or empty parameters keep the value from defaults.
func parseInputs(r *http.Request, defaults growth.Inputs) (growth.Inputs, error) {
	in := defaults
	q := r.URL.Query()

	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"water", &in.Water},
		{"fertilizer", &in.Fertilizer},
		{"light", &in.Light},
	} {
		v := strings.TrimSpace(q.Get(p.name))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return defaults, fmt.Errorf("invalid %s value: %q", p.name, v)
		}
		*p.dst = f
	}
	return in, nil
}

func requestLang(r *http.Request, fallback string) string {
	if l := r.URL.Query().Get("lang"); growth.IsLanguage(l) {
		return l
	}
	return fallback
}
