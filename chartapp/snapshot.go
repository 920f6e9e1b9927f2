// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartapp

import (
	"context"
	"fmt"
	"image/png"
	"log"
	"maycharts/config"
	"maycharts/metrics"
	"maycharts/render"
	"maycharts/widgets"
	"os"
	"time"
)

// Snapshot renders the configured chart and its stored annotations to a
// PNG file of the configured window size, without opening a window.
func Snapshot(ctx context.Context, c config.Config, path string, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	appConfig, err := c.Copy(false)
	if err != nil {
		return err
	}
	m := metrics.New(nil)
	th := widgets.NewChartTheme(!appConfig.LightTheme)
	outbox, store, _ := OpenOutbox(appConfig.PersistenceConfig, c.GetAppName(), logger, m)
	defer store.Close()

	now := time.Now()
	model := NewChart(&appConfig, nil, logger, now)
	symbol := appConfig.ChartConfig.Symbol
	model.RestoreAnnotations(symbol, LoadAnnotations(ctx, outbox, symbol))

	surface := render.NewRasterSurface()
	o := render.NewOrchestrator(model, surface, render.NewWindowScheduler(nil), th, m, logger)
	defer o.Close()
	size := appConfig.WindowConfig.Size
	model.Resize(float64(size.X), float64(size.Y))
	model.FullUpdate()
	o.PaintNow(now)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create snapshot file: %w", err)
	}
	if err := png.Encode(f, surface.Image()); err != nil {
		f.Close()
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	return f.Close()
}
