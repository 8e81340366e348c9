package cli

import (
	"context"
	"fmt"
	"math"

	"github.com/mchmarny/phenosim/pkg/growth"
	"github.com/mchmarny/phenosim/pkg/media"
	"github.com/urfave/cli/v3"
)

var (
	waterFlag = &cli.FloatFlag{
		Name:  "water",
		Usage: fmt.Sprintf("Water volume in ml/day, saturates at %v (default: config)", growth.MaxWater),
	}

	fertilizerFlag = &cli.FloatFlag{
		Name:  "fertilizer",
		Usage: fmt.Sprintf("Fertilizer in g/day, saturates at %v (default: config)", growth.MaxFertilizer),
	}

	lightFlag = &cli.FloatFlag{
		Name:  "light",
		Usage: fmt.Sprintf("Light exposure in hours/day, saturates at %v (default: config)", growth.MaxLight),
	}

	predictCmd = &cli.Command{
		Name:    "predict",
		Aliases: []string{"p"},
		Usage:   "Predict plant height and phenotype for the given conditions",
		Action:  cmdPredict,
		Flags: []cli.Flag{
			waterFlag,
			fertilizerFlag,
			lightFlag,
		},
	}
)

func cmdPredict(ctx context.Context, cmd *cli.Command) error {
	cfg := getConfig(ctx)

	in := cfg.Config.Controls.Defaults()
	if cmd.IsSet(waterFlag.Name) {
		in.Water = cmd.Float(waterFlag.Name)
	}
	if cmd.IsSet(fertilizerFlag.Name) {
		in.Fertilizer = cmd.Float(fertilizerFlag.Name)
	}
	if cmd.IsSet(lightFlag.Name) {
		in.Light = cmd.Float(lightFlag.Name)
	}

	for _, v := range []float64{in.Water, in.Fertilizer, in.Light} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("inputs must be finite numbers, got %+v", in)
		}
	}

	sim, err := simulate(media.NewLibrary(cfg.Config.VideoDir), cfg.Config.Lang, in)
	if err != nil {
		return err
	}

	if err := encode(cmd.Root().Writer, cfg.Format, sim); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
