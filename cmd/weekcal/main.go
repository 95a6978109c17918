package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"weekcal/internal/capture"
	"weekcal/internal/config"
	appLog "weekcal/internal/log"
	"weekcal/internal/pipeline"
)

// flagConfig holds CLI flag values; set flags override the config file.
type flagConfig struct {
	configPath string
	input      string
	outDir     string
	timezone   string
	noRaster   bool
	debug      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		return 1
	}
	applyFlags(conf, flags)

	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	appLog.Info("weekcal starting", "version", "0.1.0")
	appLog.Info("effective config",
		"input", conf.Input,
		"timezone", conf.Timezone,
		"page", conf.PagePath(),
		"image", conf.ImagePath(),
		"rasterize", conf.RasterEnabled(),
	)

	// Cancel rasterization or a remote fetch on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, conf, capture.NewChromium(conf.ChromeNoSandbox))
	if err != nil {
		appLog.Error("weekcal failed", err)
		return 1
	}

	appLog.Info("calendar saved",
		"events", res.Events,
		"boxes", res.Boxes,
		"page", res.PagePath,
		"image", res.ImagePath,
	)
	return 0
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "", "Path to YAML config file (created with defaults if missing)")
	flag.StringVar(&cfg.input, "input", "", "ICS file path or http(s) URL (overrides config)")
	flag.StringVar(&cfg.outDir, "out-dir", "", "Directory for calendar.svg and calendar.png (overrides config)")
	flag.StringVar(&cfg.timezone, "timezone", "", "IANA display timezone (overrides config)")
	flag.BoolVar(&cfg.noRaster, "no-raster", false, "Write the SVG page only; skip the PNG export")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

func applyFlags(conf *config.Config, f flagConfig) {
	if f.input != "" {
		conf.Input = f.input
	}
	if f.outDir != "" {
		conf.OutputDir = f.outDir
	}
	if f.timezone != "" {
		conf.Timezone = f.timezone
	}
	if f.noRaster {
		off := false
		conf.Rasterize = &off
	}
}
