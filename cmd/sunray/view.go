package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/sunray/pkg/log"
	"github.com/taigrr/sunray/pkg/render"
	"github.com/taigrr/sunray/pkg/scene"
	"github.com/taigrr/sunray/pkg/trace"
)

const viewHelp = `Controls:
  Mouse drag    - Orbit the camera
  Scroll, W/S   - Zoom in/out
  Arrows, A/D   - Orbit (yaw and pitch)
  Space         - Random spin
  R             - Reset view
  P             - Pause the day cycle
  F             - Toggle exact box face normals
  ?             - Toggle HUD overlay
  Esc, Q        - Quit`

type viewOptions struct {
	scene   sceneOptions
	fps     int
	scale   float64
	day     time.Duration
	blend   float64
	logFile string
}

func newViewCmd(g *globalOptions) *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Render the scene live in the terminal",
		Long:  "Render the scene live in the terminal.\n\n" + viewHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runView(cmd.Context(), g, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.scene.path, "scene", "", "glTF/GLB scene file (default: built-in robot)")
	flags.BoolVar(&opts.scene.faceNormals, "face-normals", false, "Exact per-face normals for boxes")
	flags.IntVar(&opts.fps, "fps", 30, "Target FPS")
	flags.Float64Var(&opts.scale, "scale", 1, "Render resolution relative to the terminal, in (0, 1]")
	flags.DurationVar(&opts.day, "day", 10*time.Second, "Length of a full day/night cycle")
	flags.Float64Var(&opts.blend, "blend", 0, "Fraction of the day over which light phases cross-fade")
	flags.StringVar(&opts.logFile, "log-file", "", "Write logs to this file (the terminal is taken by the viewer)")
	return cmd
}

// command mutates viewer state. Commands run on the frame loop between
// render passes, never during one.
type command func(v *viewer)

// ViewState holds UI toggles.
type ViewState struct {
	ShowHUD     bool
	Paused      bool
	FaceNormals bool
}

type viewer struct {
	term          *uv.Terminal
	out           *render.TerminalRenderer
	fb, low       *render.Framebuffer
	width, height int
	scale         float64

	scene    *scene.Scene
	cycle    scene.DayCycle
	clock    time.Duration
	camera   *render.Camera
	orbit    *OrbitState
	renderer *render.Renderer
	hud      *HUD
	view     ViewState

	torque struct{ yaw, pitch float64 }
	quit   bool
}

const (
	torqueStrength = 3.0
	zoomStep       = 0.5
)

func runView(ctx context.Context, g *globalOptions, opts *viewOptions) error {
	if opts.fps <= 0 {
		return fmt.Errorf("invalid --fps %d", opts.fps)
	}

	// The alternate screen owns stdout.
	if opts.logFile != "" {
		f, err := log.SetFile(opts.logFile)
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetSink(io.Discard, false)
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
	cycle.Blend = opts.blend

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1002h") // Button-event mouse tracking (drag)
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1002l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v := &viewer{
		term:     term,
		scale:    opts.scale,
		scene:    s,
		cycle:    cycle,
		camera:   newDefaultCamera(),
		orbit:    NewOrbitState(opts.fps),
		renderer: render.NewRenderer(trace.NewTracer(cfg)),
		hud:      NewHUD(name, s.Len()),
		view:     ViewState{ShowHUD: true, FaceNormals: opts.scene.faceNormals},
	}
	v.resize(width, height)
	logger.Infof("viewing %s: %d primitives, %dx%d cells", name, s.Len(), width, height)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmds := make(chan command, 64)
	go func() {
		in := &inputState{}
		for ev := range term.Events() {
			cmd := in.handle(ev)
			if cmd == nil {
				continue
			}
			select {
			case cmds <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}()

	return v.loop(ctx, cmds, time.Second/time.Duration(opts.fps))
}

func (v *viewer) loop(ctx context.Context, cmds <-chan command, frame time.Duration) error {
	lastFrame := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame)
		lastFrame = now
		dt = min(dt, 100*time.Millisecond)

		v.drain(cmds)
		if v.quit {
			return nil
		}
		v.step(dt)

		if err := v.renderer.Render(ctx, v.scene, v.camera, v.low); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("render: %w", err)
		}
		render.Upscale(v.low, v.fb)

		v.out.Render(v.fb)
		if err := v.out.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}

		v.hud.UpdateFPS()
		v.hud.Render(os.Stdout, v.width, v.height, v.view.ShowHUD, hudInfo{
			Phase:       v.cycle.PhaseName(v.clock),
			Ambient:     v.scene.Ambient,
			Paused:      v.view.Paused,
			FaceNormals: v.view.FaceNormals,
			Scale:       v.scale,
		})

		// Frame timing
		if elapsed := time.Since(now); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
}

// drain runs every pending command.
func (v *viewer) drain(cmds <-chan command) {
	for {
		select {
		case cmd := <-cmds:
			cmd(v)
		default:
			return
		}
	}
}

// step advances the camera and the day cycle by dt.
func (v *viewer) step(dt time.Duration) {
	secs := dt.Seconds()

	// Apply input torque and decay it (key release events unreliable)
	v.orbit.ApplyImpulse(v.torque.yaw*secs, v.torque.pitch*secs)
	v.torque.yaw *= 0.9
	v.torque.pitch *= 0.9

	if yaw, pitch := v.orbit.Step(); yaw != 0 || pitch != 0 {
		v.camera.Orbit(yaw, pitch)
	}

	if !v.view.Paused {
		v.clock += dt
	}
	if v.scene.Light != nil {
		v.scene.Ambient = v.cycle.Apply(v.scene.Light, v.clock)
	}
}

func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.out = render.NewTerminalRenderer(v.term, width, height)
	fbWidth, fbHeight := v.out.FramebufferSize()
	v.fb = render.NewFramebuffer(fbWidth, fbHeight)
	v.low = render.NewFramebuffer(render.ScaledSize(fbWidth, fbHeight, v.scale))
}

func (v *viewer) reset() {
	v.orbit.Reset()
	v.torque.yaw, v.torque.pitch = 0, 0
	v.camera = newDefaultCamera()
}

func (v *viewer) setFaceNormals(on bool) {
	v.view.FaceNormals = on
	for _, p := range v.scene.Primitives {
		if b, ok := p.(*scene.Box); ok {
			b.FaceNormals = on
		}
	}
}

// inputState is owned by the event goroutine.
type inputState struct {
	mouseDown bool
	lastX     int
	lastY     int
}

// handle translates a terminal event into a command, or nil.
func (in *inputState) handle(ev uv.Event) command {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		w, h := ev.Width, ev.Height
		return func(v *viewer) {
			logger.Debugf("resize to %dx%d", w, h)
			v.term.Erase()
			v.term.Resize(w, h)
			v.resize(w, h)
		}

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c", "q"):
			return func(v *viewer) { v.quit = true }
		case ev.MatchString("w", "+", "="):
			return func(v *viewer) { v.camera.Zoom(zoomStep) }
		case ev.MatchString("s", "-", "_"):
			return func(v *viewer) { v.camera.Zoom(-zoomStep) }
		case ev.MatchString("a", "left"):
			return func(v *viewer) { v.torque.yaw = torqueStrength }
		case ev.MatchString("d", "right"):
			return func(v *viewer) { v.torque.yaw = -torqueStrength }
		case ev.MatchString("up"):
			return func(v *viewer) { v.torque.pitch = -torqueStrength }
		case ev.MatchString("down"):
			return func(v *viewer) { v.torque.pitch = torqueStrength }
		case ev.MatchString("space"):
			yaw, pitch := (rand.Float64()-0.5)*1.5, (rand.Float64()-0.5)*0.5
			return func(v *viewer) { v.orbit.ApplyImpulse(yaw, pitch) }
		case ev.MatchString("r"):
			return func(v *viewer) { v.reset() }
		case ev.MatchString("p"):
			return func(v *viewer) {
				v.view.Paused = !v.view.Paused
				logger.Infof("day cycle paused: %v", v.view.Paused)
			}
		case ev.MatchString("f"):
			return func(v *viewer) { v.setFaceNormals(!v.view.FaceNormals) }
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			return func(v *viewer) { v.view.ShowHUD = !v.view.ShowHUD }
		}

	case uv.KeyReleaseEvent:
		switch {
		case ev.MatchString("a", "left", "d", "right"):
			return func(v *viewer) { v.torque.yaw = 0 }
		case ev.MatchString("up", "down"):
			return func(v *viewer) { v.torque.pitch = 0 }
		}

	case uv.MouseClickEvent:
		in.mouseDown = true
		in.lastX, in.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		in.mouseDown = false

	case uv.MouseMotionEvent:
		if !in.mouseDown {
			return nil
		}
		dx, dy := ev.X-in.lastX, ev.Y-in.lastY
		in.lastX, in.lastY = ev.X, ev.Y
		return func(v *viewer) { v.orbit.ApplyImpulse(-float64(dx)*0.03, float64(dy)*0.03) }

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			return func(v *viewer) { v.camera.Zoom(zoomStep) }
		case uv.MouseWheelDown:
			return func(v *viewer) { v.camera.Zoom(-zoomStep) }
		}
	}
	return nil
}
