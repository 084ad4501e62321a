package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/taigrr/sunray/pkg/publish"
	"github.com/taigrr/sunray/pkg/render"
	"github.com/taigrr/sunray/pkg/scene"
	"github.com/taigrr/sunray/pkg/trace"
)

type snapshotOptions struct {
	scene  sceneOptions
	output string
	width  int
	height int
	at     time.Duration
	day    time.Duration
	orbit  float64
	stats  bool

	bucket string
	key    string
	region string
}

func newSnapshotCmd(g *globalOptions) *cobra.Command {
	opts := &snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render a single frame to an image file",
		Example: "  sunray snapshot -o noon.png --at 5s\n" +
			"  sunray snapshot -o frame.jpg --width 800 --height 600 --bucket renders",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSnapshot(cmd.Context(), cmd.OutOrStdout(), g, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "sunray.png", "Output image (png, jpg, gif, tif, bmp)")
	flags.IntVar(&opts.width, "width", 320, "Image width in pixels")
	flags.IntVar(&opts.height, "height", 240, "Image height in pixels")
	flags.DurationVar(&opts.at, "at", 0, "Time of day to render, measured from dawn")
	flags.DurationVar(&opts.day, "day", 10*time.Second, "Length of a full day/night cycle")
	flags.Float64Var(&opts.orbit, "orbit", 0, "Camera yaw around the scene in degrees")
	flags.BoolVar(&opts.stats, "stats", true, "Print a ray statistics table")
	flags.StringVar(&opts.scene.path, "scene", "", "glTF/GLB scene file (default: built-in robot)")
	flags.BoolVar(&opts.scene.faceNormals, "face-normals", false, "Exact per-face normals for boxes")
	flags.StringVar(&opts.bucket, "bucket", "", "Upload the image to this S3 bucket (default $S3_BUCKET when --key is set)")
	flags.StringVar(&opts.key, "key", "", "S3 object key (default: output file name)")
	flags.StringVar(&opts.region, "region", "", "S3 region (default $S3_REGION)")
	return cmd
}

func runSnapshot(ctx context.Context, out io.Writer, g *globalOptions, opts *snapshotOptions) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid size %dx%d", opts.width, opts.height)
	}

	s, name, err := loadScene(opts.scene)
	if err != nil {
		return err
	}
	cfg, err := g.tracerConfig()
	if err != nil {
		return err
	}

	cycle := scene.DefaultDayCycle()
	cycle.Duration = opts.day
	if s.Light != nil {
		s.Ambient = cycle.Apply(s.Light, opts.at)
	}

	cam := newDefaultCamera()
	if opts.orbit != 0 {
		cam.Orbit(opts.orbit*degToRad, 0)
	}

	stats := &trace.Stats{}
	tracer := trace.NewTracer(cfg)
	tracer.Stats = stats

	logger.Infof("rendering %s at %dx%d, %s (%s)", name, opts.width, opts.height, opts.at, cycle.PhaseName(opts.at))
	fb := render.NewFramebuffer(opts.width, opts.height)
	start := time.Now()
	if err := render.NewRenderer(tracer).Render(ctx, s, cam, fb); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	elapsed := time.Since(start)

	if err := fb.Save(opts.output); err != nil {
		return err
	}
	logger.Noticef("wrote %s in %s", opts.output, elapsed.Round(time.Millisecond))

	if opts.stats {
		writeStats(out, stats, opts.width*opts.height, elapsed)
	}

	if opts.bucket == "" && opts.key == "" {
		return nil
	}
	return upload(ctx, opts)
}

func upload(ctx context.Context, opts *snapshotOptions) error {
	cfg := publish.ConfigFromEnv()
	if opts.bucket != "" {
		cfg.Bucket = opts.bucket
	}
	if opts.region != "" {
		cfg.Region = opts.region
	}

	u, err := publish.NewUploader(cfg)
	if err != nil {
		return fmt.Errorf("upload %s: %w", opts.output, err)
	}

	key := opts.key
	if key == "" {
		key = filepath.Base(opts.output)
	}
	return u.UploadFile(ctx, opts.output, key)
}

// writeStats prints per-depth ray counts and totals as a table.
func writeStats(w io.Writer, s *trace.Stats, pixels int, elapsed time.Duration) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Depth", "Rays", "Rays/Pixel"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for depth, n := range s.Rays {
		table.Append([]string{
			fmt.Sprintf("%d", depth),
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%.2f", perPixel(n, pixels)),
		})
	}
	table.Append([]string{"shadow", fmt.Sprintf("%d", s.ShadowRays), fmt.Sprintf("%.2f", perPixel(s.ShadowRays, pixels))})
	table.Append([]string{"sky", fmt.Sprintf("%d", s.SkyHits), fmt.Sprintf("%.2f", perPixel(s.SkyHits, pixels))})
	table.SetFooter([]string{"total", fmt.Sprintf("%d", s.Total()), elapsed.Round(time.Millisecond).String()})
	table.Render()
}

func perPixel(n uint64, pixels int) float64 {
	if pixels <= 0 {
		return 0
	}
	return float64(n) / float64(pixels)
}
