package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/mchmarny/phenosim/pkg/media"
)

const videoRoutePrefix = "/videos/"

// Simulation is a prediction together with its presentation details.
type Simulation struct {
	Result    *growth.Result `json:"result" yaml:"result"`
	MinHeight float64        `json:"min_height" yaml:"min_height"`
	MaxHeight float64        `json:"max_height" yaml:"max_height"`
	VideoPath string         `json:"video_path,omitempty" yaml:"video_path,omitempty"`
	VideoURL  string         `json:"video_url,omitempty" yaml:"video_url,omitempty"`
	Warning   string         `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// HasVideo reports whether a video was found for the predicted label.
func (s *Simulation) HasVideo() bool {
	return s.VideoPath != ""
}

// simulate runs the prediction and looks up the matching video. A missing
// video becomes a warning on the result; only unexpected file system errors
// are returned.
func simulate(lib *media.Library, lang string, in growth.Inputs) (*Simulation, error) {
	res := growth.Predict(in)
	res.Description = res.Label.Describe(lang)

	sim := &Simulation{
		Result:    res,
		MinHeight: growth.MinHeight,
		MaxHeight: growth.MaxHeight,
	}

	v, err := lib.Locate(res.Label)
	if err != nil {
		if !errors.Is(err, media.ErrVideoNotFound) {
			return nil, fmt.Errorf("locating video for %s: %w", res.Label, err)
		}
		sim.Warning = fmt.Sprintf("No video found for %s in %s/", res.Label, lib.Dir)
		slog.Warn("video not found", "label", res.Label, "path", lib.Path(res.Label))
		return sim, nil
	}

	sim.VideoPath = v.Path
	sim.VideoURL = videoRoutePrefix + url.PathEscape(string(res.Label))
	return sim, nil
}
