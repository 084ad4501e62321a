// sunray - Terminal Ray Tracer
// Renders a small scene of spheres and boxes with shadows, reflection and
// refraction, lit by a light that circles through a day/night cycle.
//
// Commands:
//
//	view      - Interactive terminal viewer
//	snapshot  - Render one frame to an image file, optionally upload to S3
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/taigrr/sunray/pkg/log"
)

var version = "dev"

var logger = log.New("sunray")

// globalOptions are the flags shared by every command.
type globalOptions struct {
	verbose   int
	envFile   string
	skyTop    string
	skyBottom string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "sunray",
		Short: "Whitted-style ray tracer for the terminal",
		Long: "sunray traces spheres and boxes with Phong shading, shadows, reflection\n" +
			"and refraction, lit by a point light on a day/night cycle.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.CountVarP(&opts.verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Environment file with S3 settings")
	flags.StringVar(&opts.skyTop, "sky-top", "#87cefa", "Sky color straight up (hex)")
	flags.StringVar(&opts.skyBottom, "sky-bottom", "#191970", "Sky color straight down (hex)")

	root.AddCommand(newViewCmd(opts), newSnapshotCmd(opts))
	return root
}

// setup loads the environment file and applies the log level.
func (o *globalOptions) setup() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", o.envFile, err)
		}
	}

	switch {
	case o.verbose >= 2:
		log.SetLevel(log.Debug)
	case o.verbose == 1:
		log.SetLevel(log.Info)
	}
	return nil
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
