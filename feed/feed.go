// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maycharts/chartval"
	"maycharts/indapi"
	"maycharts/metrics"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/gorilla/websocket"
)

const (
	defaultReconnectDelay    = 2 * time.Second
	defaultMaxReconnectDelay = 30 * time.Second
)

var ErrNoUrl = errors.New("feed url is empty")

type subscribeCommand struct {
	Action string `json:"action"`
	Symbol string `json:"symbol"`
}

// We directly unmarshal values into decimal.Big.
type bar struct {
	Symbol string       `json:"symbol"`
	Time   time.Time    `json:"t"`
	Open   *decimal.Big `json:"o"`
	High   *decimal.Big `json:"h"`
	Low    *decimal.Big `json:"l"`
	Close  *decimal.Big `json:"c"`
	Volume *decimal.Big `json:"v"`
}

func (b bar) valid() bool {
	return !b.Time.IsZero() && b.Open != nil && b.High != nil && b.Low != nil && b.Close != nil
}

func (b bar) candle() indapi.CandleData {
	volume := b.Volume
	if volume == nil {
		volume = new(decimal.Big)
	}
	return indapi.CandleData{
		Timestamp:  b.Time.UTC(),
		OpenPrice:  b.Open,
		HighPrice:  b.High,
		LowPrice:   b.Low,
		ClosePrice: b.Close,
		Volume:     volume,
	}
}

type Config struct {
	Url               string
	Symbol            string
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration
}

// Client streams live candles of one symbol from a websocket server.
type Client struct {
	config  Config
	logger  *log.Logger
	metrics *metrics.Metrics
}

func NewClient(c Config, logger *log.Logger, m *metrics.Metrics) *Client {
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = defaultReconnectDelay
	}
	if c.MaxReconnectDelay < c.ReconnectDelay {
		c.MaxReconnectDelay = max(defaultMaxReconnectDelay, c.ReconnectDelay)
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Client{config: c, logger: logger, metrics: m}
}

// Run sends received candles to out until ctx is done. A lost connection
// is re-established with exponential backoff. Run does not close out.
func (c *Client) Run(ctx context.Context, out chan<- indapi.CandleData) error {
	if c.config.Url == "" {
		return ErrNoUrl
	}
	delay := c.config.ReconnectDelay
	for {
		connected, err := c.runOnce(ctx, out)
		if ctx.Err() != nil {
			return nil
		}
		if connected {
			delay = c.config.ReconnectDelay
		}
		c.logger.Printf("feed connection lost, reconnecting in %v: %v", delay, err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		c.metrics.FeedReconnects.Inc()
		delay = min(delay*2, c.config.MaxReconnectDelay)
	}
}

func (c *Client) runOnce(ctx context.Context, out chan<- indapi.CandleData) (connected bool, err error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.config.Url, nil)
	if err != nil {
		return false, fmt.Errorf("could not connect to feed: %w", err)
	}
	defer conn.Close()

	// Unblock ReadMessage on cancellation.
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	cmd := subscribeCommand{Action: "subscribe", Symbol: chartval.NormalizeSymbol(c.config.Symbol)}
	if err := conn.WriteJSON(cmd); err != nil {
		return true, fmt.Errorf("could not subscribe to %s: %w", cmd.Symbol, err)
	}
	c.logger.Printf("subscribed to live bars of %s", cmd.Symbol)

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var bars []bar
		if err := json.Unmarshal(p, &bars); err != nil {
			c.logger.Printf("ignoring invalid feed message: %v", err)
			continue
		}
		for _, b := range bars {
			if !b.valid() || (b.Symbol != "" && chartval.NormalizeSymbol(b.Symbol) != cmd.Symbol) {
				continue
			}
			select {
			case out <- b.candle():
				c.metrics.FeedBars.Inc()
			case <-ctx.Done():
				return true, ctx.Err()
			}
		}
	}
}
