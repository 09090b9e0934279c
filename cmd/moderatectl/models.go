package main

import (
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/urfave/cli/v2"
)

var modelsCmd = &cli.Command{
	Name:  "models",
	Usage: "model artifact tools",
	Subcommands: []*cli.Command{
		{
			Name:  "inspect",
			Usage: "load and validate an artifact directory, then print slot states and the feature schema",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "dir",
					Usage:    "artifact directory",
					Required: true,
				},
			},
			Action: runModelsInspect,
		},
	},
}

func runModelsInspect(cctx *cli.Context) error {
	logger := newLogger(cctx)
	p := predictor.New(logger, predictor.Config{})
	if err := loadModels(cctx, logger, cctx.String("dir"), p); err != nil {
		return err
	}
	return writeJSON(cctx, p.Status())
}
