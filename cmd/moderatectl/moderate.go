package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	appModeration "github.com/TroHub/ListingGuard/pkg/app/moderation"
	domainModeration "github.com/TroHub/ListingGuard/pkg/domain/moderation"
	"github.com/TroHub/ListingGuard/pkg/handlers/http/request"
	infraModels "github.com/TroHub/ListingGuard/pkg/infra/models"
	"github.com/TroHub/ListingGuard/pkg/moderation"
	"github.com/TroHub/ListingGuard/pkg/moderation/decision"
	"github.com/TroHub/ListingGuard/pkg/moderation/predictor"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var moderateCmd = &cli.Command{
	Name:      "moderate",
	Usage:     "moderate every listing of a JSON file and print the batch results",
	ArgsUsage: " ",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "JSON array of listings, or an object with a properties array",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "models",
			Usage: "directory with model artifacts; the heuristic is used when empty",
		},
		&cli.Float64Flag{
			Name:  "auto",
			Usage: "auto-approve threshold",
			Value: domainModeration.DefaultThresholds.AutoApprove,
		},
		&cli.Float64Flag{
			Name:  "reject",
			Usage: "reject threshold",
			Value: domainModeration.DefaultThresholds.Reject,
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "batch parallelism",
			Value: 4,
		},
	},
	Action: runModerate,
}

func runModerate(cctx *cli.Context) error {
	logger := newLogger(cctx)

	data, err := os.ReadFile(cctx.String("file"))
	if err != nil {
		return fmt.Errorf("read listings: %w", err)
	}
	items, err := splitListings(data)
	if err != nil {
		return err
	}

	p := predictor.New(logger, predictor.Config{})
	if dir := cctx.String("models"); dir != "" {
		if err := loadModels(cctx, logger, dir, p); err != nil {
			return err
		}
	}

	th, err := decision.NewThresholds(domainModeration.Thresholds{
		AutoApprove: cctx.Float64("auto"),
		Reject:      cctx.Float64("reject"),
	})
	if err != nil {
		return err
	}
	engine := moderation.NewEngine(logger, p, th, moderation.WithWorkers(cctx.Int("workers")))
	summary := appModeration.NewService(logger, engine, nil).BatchModerate(cctx.Context, items)

	return writeJSON(cctx, summary)
}

// splitListings accepts a bare array or the {"properties": [...]} request body.
func splitListings(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	req := request.BatchModerateRequest{Properties: trimmed}
	if len(trimmed) > 0 && trimmed[0] == '{' {
		req = request.BatchModerateRequest{}
		if err := json.Unmarshal(trimmed, &req); err != nil {
			return nil, fmt.Errorf("decode listings file: %w", err)
		}
	}
	return req.Items()
}

func loadModels(cctx *cli.Context, logger *logrus.Logger, dir string, p *predictor.Predictor) error {
	loader, err := infraModels.NewLoader(logger, dir)
	if err != nil {
		return err
	}
	set, err := loader.Load(cctx.Context)
	if err != nil {
		return err
	}
	return p.Swap(set)
}

func writeJSON(cctx *cli.Context, v interface{}) error {
	enc := json.NewEncoder(cctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
