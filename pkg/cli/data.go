package cli

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mchmarny/phenosim/pkg/config"
	"github.com/mchmarny/phenosim/pkg/media"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func predictAPIHandler(cfg *config.Config, lib *media.Library, m *metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := parseInputs(r, cfg.Controls.Defaults())
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		sim, err := simulate(lib, requestLang(r, cfg.Lang), in)
		if err != nil {
			slog.Error("simulation failed", "error", err)
			writeError(w, http.StatusInternalServerError, "error running simulation")
			return
		}
		m.observe(sim)

		writeJSON(w, http.StatusOK, sim)
	}
}

func controlsAPIHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, cfg.Controls)
	}
}
