package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/phenosim/pkg/config"
	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/mchmarny/phenosim/pkg/logging"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName = "phenosim"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	debugFlag = &cli.BoolFlag{
		Name:    "debug",
		Usage:   "Prints verbose logs (optional, default: false)",
		Sources: cli.EnvVars("PHENOSIM_DEBUG"),
	}

	configDirFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   fmt.Sprintf("Path to the config directory (optional, default: $HOME/.%s)", appName),
		Sources: cli.EnvVars("PHENOSIM_CONFIG"),
	}

	videoDirFlag = &cli.StringFlag{
		Name:    "video-dir",
		Usage:   "Directory with the phenotype videos (overrides config)",
		Sources: cli.EnvVars("PHENOSIM_VIDEO_DIR"),
	}

	langFlag = &cli.StringFlag{
		Name:    "lang",
		Usage:   fmt.Sprintf("Description language [%s] (overrides config)", strings.Join(growth.Languages(), ", ")),
		Sources: cli.EnvVars("PHENOSIM_LANG"),
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	ConfigDir string
	Config    *config.Config
	Debug     bool
	Format    string
}

type appConfigKey struct{}

func getConfig(ctx context.Context) *appConfig {
	if cfg, ok := ctx.Value(appConfigKey{}).(*appConfig); ok {
		return cfg
	}
	return &appConfig{Config: config.Default(), Format: formatJSON}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Plant phenotype simulator: predict growth from water, fertilizer, and light",
		Flags: []cli.Flag{
			debugFlag,
			configDirFlag,
			videoDirFlag,
			langFlag,
			formatFlag,
		},
		Commands: []*cli.Command{
			predictCmd,
			videosCmd,
			serverCmd,
		},
		Before: loadConfig,
	}
}

func loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	debug := cmd.Bool(debugFlag.Name)
	if debug {
		initLogging(true)
	}

	dir := cmd.String(configDirFlag.Name)
	if dir == "" {
		var err error
		if dir, _, err = config.GetOrCreateHomeDir(appName); err != nil {
			return ctx, fmt.Errorf("resolving config directory: %w", err)
		}
	}

	cfg, err := config.ReadOrCreate(dir)
	if err != nil {
		return ctx, fmt.Errorf("loading config: %w", err)
	}

	if v := cmd.String(videoDirFlag.Name); v != "" {
		cfg.VideoDir = v
	}
	if v := cmd.String(langFlag.Name); v != "" {
		cfg.Lang = v
	}
	if err := cfg.Validate(); err != nil {
		return ctx, fmt.Errorf("invalid configuration: %w", err)
	}
	slog.Debug("config loaded", "dir", dir, "video_dir", cfg.VideoDir, "lang", cfg.Lang)

	format := formatJSON
	switch strings.ToLower(cmd.String(formatFlag.Name)) {
	case formatJSON:
	case formatYAML, "yml":
		format = formatYAML
	default:
		return ctx, fmt.Errorf("unsupported format %q", cmd.String(formatFlag.Name))
	}

	return context.WithValue(ctx, appConfigKey{}, &appConfig{
		ConfigDir: dir,
		Config:    cfg,
		Debug:     debug,
		Format:    format,
	}), nil
}

func initLogging(debug bool) {
	level := "info"
	if debug {
		level = "debug"
	}
	logging.SetDefaultCLILogger(level)
}

func encode(w io.Writer, format string, v any) error {
	if w == nil {
		return errors.New("output writer required")
	}
	if format == formatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
