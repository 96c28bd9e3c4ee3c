package main

import (
	"os"

	"github.com/Carmen-Shannon/flicker-go/engine"
	"github.com/Carmen-Shannon/flicker-go/engine/geometry"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer"
	"github.com/Carmen-Shannon/flicker-go/engine/window"
	"github.com/Carmen-Shannon/flicker-go/log"
	"github.com/urfave/cli"
)

var logger = log.New("flicker")

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "flicker"
	app.Usage = "render a single triangle with per-frame random color jitter"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "width",
			Value: 1280,
			Usage: "window width in pixels",
		},
		cli.IntFlag{
			Name:  "height",
			Value: 720,
			Usage: "window height in pixels",
		},
		cli.StringFlag{
			Name:  "title",
			Value: "Flicker",
			Usage: "window title",
		},
		cli.BoolFlag{
			Name:  "uncapped",
			Usage: "present frames immediately instead of waiting for vblank",
		},
		cli.BoolFlag{
			Name:  "software",
			Usage: "force the CPU fallback adapter (requires a software Vulkan ICD)",
		},
		cli.BoolFlag{
			Name:  "profile",
			Usage: "log frame rate and memory stats once per second",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("v") {
		log.SetLevel(log.Debug)
	}

	win := window.NewWindow(
		window.WithTitle(c.String("title")),
		window.WithWidth(c.Int("width")),
		window.WithHeight(c.Int("height")),
	)

	// The surface stays configured to its startup dimensions; resizes are
	// observed but not propagated to the GPU surface.
	win.SetResizeCallback(func(width, height int) {
		logger.Debugf("framebuffer resized to %dx%d", width, height)
	})

	var opts []renderer.RendererBuilderOption
	if c.Bool("uncapped") {
		opts = append(opts, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	if c.Bool("software") {
		opts = append(opts, renderer.WithForceSoftwareRenderer(true))
	}

	// Capability probe: if the GPU subsystem is unavailable the renderer stays
	// nil and the driver loop no-ops every iteration instead of aborting.
	var r renderer.Renderer
	created, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, geometry.NewTriangle(), opts...)
	if err != nil {
		logger.Errorf("WebGPU unavailable, rendering disabled: %v", err)
	} else {
		r = created
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithProfiling(c.Bool("profile")),
	)
	eng.Run()

	return win.Close()
}
