package capture

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	appLog "weekcal/internal/log"
)

// Default raster parameters; they match the default 800x800 page.
const (
	DefaultWidth      = 800
	DefaultHeight     = 800
	DefaultTimeoutSec = 30
)

// RasterOptions defines one page-to-PNG conversion.
type RasterOptions struct {
	// PagePath is the SVG page to load, e.g. "./calendar.svg".
	PagePath string

	// OutputPath is where the PNG is written, e.g. "./calendar.png".
	OutputPath string

	// Width and Height are the viewport in pixels. Zero means
	// DefaultWidth / DefaultHeight.
	Width  int
	Height int

	// Timeout bounds the whole browser session. Zero means DefaultTimeoutSec.
	Timeout time.Duration
}

// Rasterizer converts a rendered page into a raster image.
type Rasterizer interface {
	Rasterize(ctx context.Context, opts RasterOptions) error
}

// Chromium rasterizes pages with a headless Chromium driven by chromedp.
type Chromium struct {
	// AllocatorOptions are appended to chromedp.DefaultExecAllocatorOptions.
	AllocatorOptions []chromedp.ExecAllocatorOption
}

// NewChromium returns a Chromium rasterizer. noSandbox is needed when
// running as root inside containers.
func NewChromium(noSandbox bool) *Chromium {
	c := &Chromium{}
	if noSandbox {
		c.AllocatorOptions = append(c.AllocatorOptions, chromedp.NoSandbox)
	}
	return c
}

// Rasterize loads the SVG page from disk, waits for the root svg element
// and captures a lossless full-page screenshot. Only the first page is
// captured; an SVG document has exactly one.
func (c *Chromium) Rasterize(parentCtx context.Context, opts RasterOptions) error {
	opts, err := opts.withDefaults()
	if err != nil {
		return err
	}

	pageURL, err := fileURL(opts.PagePath)
	if err != nil {
		return fmt.Errorf("capture: resolve page path: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], c.AllocatorOptions...)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parentCtx, allocOpts...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	appLog.Info("rasterize start", "page", opts.PagePath, "width", opts.Width, "height", opts.Height)

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		// quality 100 captures PNG instead of JPEG
		chromedp.FullScreenshot(&png, 100),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}
	if len(png) == 0 {
		return fmt.Errorf("capture: screenshot is empty")
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}

	appLog.Info("rasterize done", "path", opts.OutputPath, "bytes", len(png))
	return nil
}

func (o RasterOptions) withDefaults() (RasterOptions, error) {
	if o.PagePath == "" {
		return o, fmt.Errorf("capture: PagePath is required")
	}
	if o.OutputPath == "" {
		return o, fmt.Errorf("capture: OutputPath is required")
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return o, nil
}

func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), nil
}
