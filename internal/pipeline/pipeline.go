// Package pipeline runs one calendar-to-image pass:
// load events, render the SVG page, rasterize it to PNG.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"weekcal/internal/capture"
	"weekcal/internal/config"
	"weekcal/internal/ics"
	"weekcal/internal/layout"
	appLog "weekcal/internal/log"
	"weekcal/internal/render"
)

// Result summarizes a finished run.
type Result struct {
	Events    int
	Boxes     int
	PagePath  string
	ImagePath string // empty when rasterization is disabled
}

// Run executes the pipeline. Input problems return *ics.ParseError before
// anything is written; output problems return *render.RenderError.
func Run(ctx context.Context, cfg *config.Config, rasterizer capture.Rasterizer) (Result, error) {
	var res Result

	palette, err := layout.ParsePalette(cfg.Palette)
	if err != nil {
		return res, fmt.Errorf("pipeline: %w", err)
	}

	loc := ics.ResolveLocation(cfg.Timezone)
	events, err := ics.Load(ctx, cfg.Input, loc, cfg.CacheDir)
	if err != nil {
		return res, err
	}
	res.Events = len(events)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return res, &render.RenderError{Path: cfg.OutputDir, Err: err}
	}

	page, err := render.New(cfg.Layout, palette).RenderFile(cfg.PagePath(), events)
	if err != nil {
		return res, err
	}
	res.Boxes = len(page.Boxes())
	res.PagePath = cfg.PagePath()

	if !cfg.RasterEnabled() || rasterizer == nil {
		appLog.Info("rasterize skipped", "page", res.PagePath)
		return res, nil
	}

	err = rasterizer.Rasterize(ctx, capture.RasterOptions{
		PagePath:   res.PagePath,
		OutputPath: cfg.ImagePath(),
		Width:      int(page.Width),
		Height:     int(page.Height),
		Timeout:    cfg.RasterTimeout(),
	})
	if err != nil {
		return res, &render.RenderError{Path: cfg.ImagePath(), Err: err}
	}
	res.ImagePath = cfg.ImagePath()

	return res, nil
}
