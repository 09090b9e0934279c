// moderatectl runs the moderation engine offline: score listing files, inspect model artifacts and
// generate fake listings for load tests.
package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	newApp(os.Stdout).RunAndExitOnError()
}

func newApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:   "moderatectl",
		Usage:  "offline tools for the listing moderation engine",
		Writer: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log engine activity to stderr",
				EnvVars: []string{"MODERATECTL_VERBOSE"},
			},
		},
	}
	app.Commands = []*cli.Command{
		moderateCmd,
		modelsCmd,
		seedCmd,
	}
	return app
}

func newLogger(cctx *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cctx.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
