// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package main

import (
	"context"
	"flag"
	"log"
	"maycharts/chartapp"
	"maycharts/config"
	"os"

	"gioui.org/app"
)

func main() {
	snapshot := flag.String("snapshot", "", "render the chart to this PNG file and exit")
	flag.Parse()

	logger := log.Default()
	c := config.NewGlobalConfig()
	if *snapshot != "" {
		if err := chartapp.Snapshot(context.Background(), c, *snapshot, logger); err != nil {
			logger.Fatalf("snapshot failed: %v", err)
		}
		return
	}

	a := chartapp.NewChartApp(c, logger)
	if err := a.Initialize(); err != nil {
		logger.Fatalf("initialization failed: %v", err)
	}
	go func() {
		a.Run(context.Background())
		os.Exit(0)
	}()
	app.Main()
}
