// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package chartapp

import (
	"context"
	"image"
	"log"
	"maycharts/annostore"
	"maycharts/chartmodel"
	"maycharts/chartwidget"
	"maycharts/config"
	"maycharts/drawing"
	"maycharts/feed"
	"maycharts/indapi"
	"maycharts/metrics"
	"maycharts/render"
	"maycharts/widgets"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/prometheus/client_golang/prometheus"
)

const chartFontSize = unit.Sp(12)

type loadedAnnotations struct {
	symbol      string
	annotations []drawing.Annotation
}

// ChartApp shows one chart window. The chart model is only accessed by the
// event loop; background workers deliver their results over channels.
type ChartApp struct {
	config      config.Config
	appConfig   config.AppConfig
	logger      *log.Logger
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	metricsSrv  *metrics.Server
	win         *app.Window
	size        image.Point
	matTheme    *material.Theme
	chartTheme  *widgets.ChartTheme
	store       annostore.Store
	outbox      *annostore.Outbox
	model       *chartmodel.Model
	orch        *render.Orchestrator
	sched       *render.WindowScheduler
	widget      *chartwidget.Widget
	message     *widgets.MessageField
	candleChan  chan indapi.CandleData
	annoChan    chan loadedAnnotations
	terminateWg sync.WaitGroup
}

func NewChartApp(c config.Config, logger *log.Logger) *ChartApp {
	if logger == nil {
		logger = log.Default()
	}
	reg := prometheus.NewRegistry()
	return &ChartApp{
		config:     c,
		logger:     logger,
		registry:   reg,
		metrics:    metrics.New(reg),
		candleChan: make(chan indapi.CandleData, 64),
		annoChan:   make(chan loadedAnnotations, 1),
		message:    widgets.NewMessageField(),
	}
}

// Initialize reads the configuration and opens the annotation store.
func (a *ChartApp) Initialize() error {
	appConfig, err := a.config.Copy(false)
	if err != nil {
		return err
	}
	a.appConfig = appConfig
	// Themes need to be set up first, because the chart uses them.
	dark := !appConfig.LightTheme
	a.matTheme = widgets.NewMaterialTheme(dark)
	a.chartTheme = widgets.NewChartTheme(dark)
	a.size = appConfig.WindowConfig.Size
	var persistent bool
	a.outbox, a.store, persistent = OpenOutbox(appConfig.PersistenceConfig, a.config.GetAppName(), a.logger, a.metrics)
	if !persistent {
		a.message.SetText("The " + appConfig.PersistenceConfig.Backend + " annotation store is not available, drawings will not be saved.")
	}
	if appConfig.MetricsAddr != "" {
		a.metricsSrv = metrics.NewServer(appConfig.MetricsAddr, a.registry, a.logger)
	}
	return nil
}

// Run opens the window and blocks until it is closed.
func (a *ChartApp) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.startWorkers(ctx)
	a.createWindow()
	err := a.handleEvents(ctx)
	if err != nil {
		a.logger.Printf("terminating with error: %v", err)
	}
	cancel()
	a.terminate()
}

func (a *ChartApp) startWorkers(ctx context.Context) {
	if a.metricsSrv != nil {
		a.metricsSrv.Start()
	}
	a.terminateWg.Add(1)
	go func() {
		defer a.terminateWg.Done()
		a.outbox.Run(ctx)
	}()

	symbol := a.appConfig.ChartConfig.Symbol
	a.terminateWg.Add(1)
	go func() {
		defer a.terminateWg.Done()
		annos := LoadAnnotations(ctx, a.outbox, symbol)
		select {
		case a.annoChan <- loadedAnnotations{symbol: symbol, annotations: annos}:
		case <-ctx.Done():
		}
	}()

	fc := a.appConfig.FeedConfig
	if fc.WsUrl == "" {
		return
	}
	client := feed.NewClient(feed.Config{
		Url:               fc.WsUrl,
		Symbol:            symbol,
		ReconnectDelay:    time.Duration(fc.ReconnectDelaySeconds) * time.Second,
		MaxReconnectDelay: time.Duration(fc.MaxReconnectDelaySeconds) * time.Second,
	}, a.logger, a.metrics)
	a.terminateWg.Add(1)
	go func() {
		defer a.terminateWg.Done()
		if err := client.Run(ctx, a.candleChan); err != nil && ctx.Err() == nil {
			a.logger.Printf("live feed stopped: %v", err)
		}
	}()
}

func (a *ChartApp) createWindow() {
	a.win = app.NewWindow(
		app.Title(a.config.GetAppName()+" - "+a.appConfig.ChartConfig.Symbol),
		app.Size(unit.Dp(a.size.X), unit.Dp(a.size.Y)),
	)
	a.model = NewChart(&a.appConfig, a.outbox, a.logger, time.Now())
	a.sched = render.NewWindowScheduler(a.win)
	surface := render.NewGioSurface(a.matTheme, chartFontSize)
	a.orch = render.NewOrchestrator(a.model, surface, a.sched, a.chartTheme, a.metrics, a.logger)
	a.widget = chartwidget.NewWidget(a.model, surface, a.sched)
	a.model.FullUpdate()
}

func (a *ChartApp) handleEvents(ctx context.Context) error {
	var ops op.Ops
	events := a.win.Events()
	for {
		select {
		case e := <-events:
			switch e := e.(type) {
			case system.FrameEvent:
				gtx := layout.NewContext(&ops, e)
				paint.Fill(gtx.Ops, a.matTheme.Bg)
				a.layoutChart(gtx)
				a.size.X = int(gtx.Metric.PxToDp(e.Size.X))
				a.size.Y = int(gtx.Metric.PxToDp(e.Size.Y))
				e.Frame(gtx.Ops)
			case system.DestroyEvent:
				return e.Err
			}
		case c := <-a.candleChan:
			a.model.UpdateCandle(MainSeries, c)
			a.model.UpdateCandle(VolumeSeries, c)
		case l := <-a.annoChan:
			n := a.model.RestoreAnnotations(l.symbol, l.annotations)
			a.logger.Printf("restored %d annotations of %s", n, l.symbol)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (a *ChartApp) layoutChart(gtx layout.Context) layout.Dimensions {
	return layout.Stack{Alignment: layout.N}.Layout(
		gtx,
		layout.Expanded(a.widget.Layout),
		layout.Stacked(func(gtx layout.Context) layout.Dimensions {
			return a.message.Layout(gtx, a.matTheme, a.chartTheme)
		}),
	)
}

func (a *ChartApp) saveConfiguration() error {
	appConfig, err := a.config.Lock()
	if err != nil {
		return err
	}
	appConfig.WindowConfig.Size = a.size
	return a.config.Unlock(appConfig, false)
}

func (a *ChartApp) terminate() {
	if err := a.saveConfiguration(); err != nil {
		a.logger.Printf("error saving configuration: %v", err)
	}
	a.orch.Close()
	// The outbox saves pending annotations before Run returns.
	a.terminateWg.Wait()
	if err := a.store.Close(); err != nil {
		a.logger.Printf("error closing annotation store: %v", err)
	}
	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := a.metricsSrv.Stop(ctx); err != nil {
			a.logger.Printf("error stopping metrics server: %v", err)
		}
	}
}
