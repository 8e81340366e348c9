package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/mchmarny/phenosim/pkg/net"
)

const (
	// DefaultDir is where videos are looked up when no directory is configured.
	DefaultDir = "videos"

	videoExt = ".mp4"
	dirMode  = 0700
)

// ErrVideoNotFound is returned when no video exists for a label. It is a
// warning condition, never fatal.
var ErrVideoNotFound = errors.New("video not found")

// Video is a located video file.
type Video struct {
	Label growth.Label `json:"label" yaml:"label"`
	Path  string       `json:"path" yaml:"path"`
	Size  int64        `json:"size" yaml:"size"`
}

// VideoStatus reports whether the video for a label is present.
type VideoStatus struct {
	Label   growth.Label `json:"label" yaml:"label"`
	Path    string       `json:"path" yaml:"path"`
	Present bool         `json:"present" yaml:"present"`
	Size    int64        `json:"size,omitempty" yaml:"size,omitempty"`
}

// PullResult is the outcome of fetching one video.
type PullResult struct {
	Label   growth.Label `json:"label" yaml:"label"`
	Path    string       `json:"path" yaml:"path"`
	Status  string       `json:"status" yaml:"status"`
	Message string       `json:"message,omitempty" yaml:"message,omitempty"`
}

const (
	PullStatusDownloaded = "downloaded"
	PullStatusSkipped    = "skipped"
	PullStatusMissing    = "missing"
	PullStatusFailed     = "failed"
)

// VideoFileName returns the file name of the video for label.
func VideoFileName(label growth.Label) string {
	return string(label) + videoExt
}

// Library is a directory of per-label videos.
type Library struct {
	Dir string
}

// NewLibrary returns a library rooted at dir, or DefaultDir when dir is empty.
func NewLibrary(dir string) *Library {
	if dir == "" {
		dir = DefaultDir
	}
	return &Library{Dir: dir}
}

// Path returns the expected location of the video for label.
func (l *Library) Path(label growth.Label) string {
	return filepath.Join(l.Dir, VideoFileName(label))
}

// Locate returns the video for label or an error wrapping ErrVideoNotFound.
func (l *Library) Locate(label growth.Label) (*Video, error) {
	p := l.Path(label)
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, p)
		}
		return nil, fmt.Errorf("error checking video %s: %w", p, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrVideoNotFound, p)
	}

	return &Video{
		Label: label,
		Path:  p,
		Size:  info.Size(),
	}, nil
}

// Status reports the presence of the video for every label.
func (l *Library) Status() []*VideoStatus {
	list := make([]*VideoStatus, 0, len(growth.Labels()))
	for _, label := range growth.Labels() {
		s := &VideoStatus{
			Label: label,
			Path:  l.Path(label),
		}
		if v, err := l.Locate(label); err == nil {
			s.Present = true
			s.Size = v.Size
		} else if !errors.Is(err, ErrVideoNotFound) {
			slog.Debug("error locating video", "label", label, "error", err)
		}
		list = append(list, s)
	}
	return list
}

// Pull downloads the videos for all labels from baseURL. Videos already
// present are skipped unless force is set. A video missing upstream is
// reported in the results and does not stop the others.
func (l *Library) Pull(ctx context.Context, baseURL string, force bool) ([]*PullResult, error) {
	if baseURL == "" {
		return nil, errors.New("video base URL required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid video base URL %q: %w", baseURL, err)
	}

	if err := os.MkdirAll(l.Dir, dirMode); err != nil {
		return nil, fmt.Errorf("error creating video dir %s: %w", l.Dir, err)
	}

	list := make([]*PullResult, 0, len(growth.Labels()))
	for _, label := range growth.Labels() {
		r := &PullResult{Label: label, Path: l.Path(label)}
		list = append(list, r)

		if !force {
			if _, err := l.Locate(label); err == nil {
				r.Status = PullStatusSkipped
				continue
			}
		}

		src := strings.TrimSuffix(baseURL, "/") + "/" + url.PathEscape(VideoFileName(label))
		slog.Debug("downloading video", "label", label, "url", src)

		err := net.Download(ctx, src, r.Path)
		switch {
		case err == nil:
			r.Status = PullStatusDownloaded
		case errors.Is(err, net.ErrURLNotFound):
			r.Status = PullStatusMissing
			r.Message = src
		case ctx.Err() != nil:
			return list, fmt.Errorf("video pull canceled: %w", ctx.Err())
		default:
			r.Status = PullStatusFailed
			r.Message = err.Error()
		}
	}

	return list, nil
}
