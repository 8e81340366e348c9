package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/phenosim/pkg/media"
	"github.com/urfave/cli/v3"
)

var (
	videoURLFlag = &cli.StringFlag{
		Name:    "url",
		Usage:   "Base URL to download <label>.mp4 files from (default: config video_url)",
		Sources: cli.EnvVars("PHENOSIM_VIDEO_URL"),
	}

	forceFlag = &cli.BoolFlag{
		Name:  "force",
		Usage: "Download videos even when already present",
	}

	videosCmd = &cli.Command{
		Name:    "videos",
		Aliases: []string{"v"},
		Usage:   "Manage phenotype videos",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List expected videos and whether they are present",
				Action:  cmdVideosList,
			},
			{
				Name:   "pull",
				Usage:  "Download missing videos",
				Action: cmdVideosPull,
				Flags: []cli.Flag{
					videoURLFlag,
					forceFlag,
				},
			},
		},
	}
)

func cmdVideosList(ctx context.Context, cmd *cli.Command) error {
	cfg := getConfig(ctx)
	lib := media.NewLibrary(cfg.Config.VideoDir)

	list := lib.Status()
	for _, s := range list {
		if !s.Present {
			slog.Warn("video missing", "label", s.Label, "path", s.Path)
		}
	}

	return encode(cmd.Root().Writer, cfg.Format, list)
}

func cmdVideosPull(ctx context.Context, cmd *cli.Command) error {
	cfg := getConfig(ctx)
	lib := media.NewLibrary(cfg.Config.VideoDir)

	baseURL := cmd.String(videoURLFlag.Name)
	if baseURL == "" {
		baseURL = cfg.Config.VideoURL
	}

	list, err := lib.Pull(ctx, baseURL, cmd.Bool(forceFlag.Name))
	if err != nil {
		return fmt.Errorf("pulling videos: %w", err)
	}

	for _, r := range list {
		switch r.Status {
		case media.PullStatusMissing:
			slog.Warn("video not available upstream", "label", r.Label, "url", r.Message)
		case media.PullStatusFailed:
			slog.Error("video download failed", "label", r.Label, "error", r.Message)
		default:
			slog.Info("video "+r.Status, "label", r.Label, "path", r.Path)
		}
	}

	return encode(cmd.Root().Writer, cfg.Format, list)
}
