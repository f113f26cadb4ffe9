package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/tracksim/audio"
	"github.com/lixenwraith/tracksim/config"
	"github.com/lixenwraith/tracksim/core"
	"github.com/lixenwraith/tracksim/dynamics"
	"github.com/lixenwraith/tracksim/engine"
	"github.com/lixenwraith/tracksim/parameter"
	"github.com/lixenwraith/tracksim/render"
	"github.com/lixenwraith/tracksim/suspension"
	"github.com/lixenwraith/tracksim/telemetry"
	"github.com/lixenwraith/tracksim/terrain"
	"github.com/lixenwraith/tracksim/vmath"
)

func main() {
	var (
		configPath = flag.String("config", "", "vehicle/world YAML config (defaults used when empty)")
		listenAddr = flag.String("listen", "", "telemetry WebSocket address, e.g. :8080 (off when empty)")
		headless   = flag.Bool("headless", false, "run without the terminal view")
		mute       = flag.Bool("mute", false, "disable engine audio")
		duration   = flag.Duration("duration", 0, "headless run time (0 = until signal)")
		logPath    = flag.String("log", "tracksim.log", "log file used while the terminal view is active")
	)
	flag.Parse()

	if err := run(*configPath, *listenAddr, *logPath, *headless, *mute, *duration); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, listenAddr, logPath string, headless, mute bool, duration time.Duration) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := buildLogger(headless, logPath)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	// World and vehicle
	ground := terrain.New(terrain.Rolling(cfg.World.TerrainAmplitude, cfg.World.TerrainWavelength), 1)
	body, err := dynamics.NewBoxBody(cfg.Vehicle.Mass, cfg.Vehicle.HalfExtents.V())
	if err != nil {
		return err
	}
	body.SetGravity(vmath.Vec3{Y: -cfg.World.Gravity})
	startY := ground.HeightAt(0, 0) + cfg.Vehicle.HalfExtents.Y + cfg.Tunables().RestLength
	body.SetPosition(vmath.Vec3{Y: startY})

	rig, err := suspension.NewRig(body, ground, cfg.Tunables(), cfg.PointConfigs(), cfg.RollerConfigs())
	if err != nil {
		return err
	}

	// Presentation
	var screen tcell.Screen
	var view *render.View
	if !headless {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("screen init: %w", err)
		}
		core.SetCrashCleanup(screen.Fini)
		defer screen.Fini()
		view = render.NewView(screen, body, rig, ground)
	}

	var sound *audio.EngineSound
	if !headless && !mute {
		sound, err = audio.NewEngineSound()
		if err != nil {
			// Cosmetic only, the simulation runs fine without it
			logger.Warn("audio unavailable", zap.Error(err))
		}
	}
	defer sound.Close()

	var server *telemetry.Server
	if listenAddr != "" {
		server = telemetry.NewServer(listenAddr, logger)
	}

	// Driver inputs cross from the event loop into the physics tick
	var throttle, brake atomic.Bool
	brake.Store(true)

	clock := engine.NewPausableClock()
	simTime := 0.0

	step := func(dt float64) {
		rig.SetBrakeEngaged(brake.Load())
		if throttle.Load() {
			rig.SetRequestedAcceleration(parameter.DriveAccel)
		}
		rig.Step(dt)
		body.Integrate(dt)
		simTime += dt
	}
	renderTick := func(dt float64) {
		rig.RenderTick(dt)
		if view != nil {
			view.Draw(clock.IsPaused())
		}
		sound.SetTrackSpeed(rig.EstimateTrackSpeed())
		if server != nil {
			server.Publish(telemetry.Capture(body, rig, simTime))
		}
	}

	sched := engine.NewScheduler(clock, logger,
		time.Duration(cfg.World.FixedStep*float64(time.Second)),
		time.Second/60,
		step, renderTick)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if duration > 0 {
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	if server != nil {
		g.Go(func() error { return server.Run(ctx) })
	}

	sched.Start()
	defer sched.Stop()

	if headless {
		<-ctx.Done()
		return g.Wait()
	}

	runEventLoop(ctx, screen, clock, &throttle, &brake)
	cancel()
	return g.Wait()
}

// runEventLoop handles terminal input until quit or context cancellation
func runEventLoop(ctx context.Context, screen tcell.Screen, clock *engine.PausableClock, throttle, brake *atomic.Bool) {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	core.Go(func() { screen.ChannelEvents(events, quit) })
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
					return
				case ev.Rune() == ' ':
					clock.Toggle()
				case ev.Rune() == 'w':
					throttle.Store(true)
					brake.Store(false)
				case ev.Rune() == 's':
					throttle.Store(false)
					brake.Store(true)
				}
			}
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		c := config.Default()
		return &c, nil
	}
	return config.LoadFile(path)
}

// buildLogger writes to stderr in headless mode; with the terminal view
// active the log goes to a file so it cannot corrupt the screen
func buildLogger(headless bool, logPath string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if !headless {
		zcfg.OutputPaths = []string{logPath}
		zcfg.ErrorOutputPaths = []string{logPath}
	}
	return zcfg.Build()
}
