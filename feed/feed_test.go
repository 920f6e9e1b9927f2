// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package feed

import (
	"context"
	"encoding/json"
	"maycharts/indapi"
	"maycharts/metrics"
	"maycharts/mock"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMessage = `[
	{"symbol":"AAPL","t":"2022-04-11T08:00:00Z","o":168.99,"h":169.81,"l":167.99,"c":169,"v":7170},
	{"symbol":"MSFT","t":"2022-04-11T08:00:00Z","o":1,"h":1,"l":1,"c":1,"v":1},
	{"symbol":"AAPL","t":"2022-04-11T08:01:00Z","o":169,"h":170,"l":168.5,"c":169.5}
]`

func newFeedMock(t *testing.T, connections *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer conn.Close()
		connections.Add(1)

		_, p, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd subscribeCommand
		if err := json.Unmarshal(p, &cmd); err != nil || cmd.Action != "subscribe" || cmd.Symbol != "AAPL" {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte("not json"))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(testMessage))
		// Drop the first connection to force a reconnect.
		if connections.Load() > 1 {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}
	}))
}

func wsUrl(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestRunStreamsCandles(t *testing.T) {
	var connections atomic.Int32
	srv := newFeedMock(t, &connections)
	defer srv.Close()
	logger, _ := mock.NewLogger(t)
	m := metrics.New(nil)
	client := NewClient(Config{Url: wsUrl(srv), Symbol: "aapl", ReconnectDelay: 10 * time.Millisecond}, logger, m)

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan indapi.CandleData)
	done := make(chan error, 1)
	go func() {
		done <- client.Run(ctx, out)
	}()

	var got []indapi.CandleData
	for len(got) < 4 {
		select {
		case c := <-out:
			got = append(got, c)
		case <-time.After(5 * time.Second):
			require.Fail(t, "timeout waiting for candles")
		}
	}
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "Run did not return after cancel")
	}

	assert.Equal(t, time.Date(2022, 4, 11, 8, 0, 0, 0, time.UTC), got[0].Timestamp)
	assert.Equal(t, 0, decimal.New(16899, 2).CmpTotal(got[0].OpenPrice))
	assert.Equal(t, 0, decimal.New(169, 0).CmpTotal(got[0].ClosePrice))
	assert.Equal(t, 0, decimal.New(7170, 0).CmpTotal(got[0].Volume))
	// Missing volume is zero.
	assert.Equal(t, 0, new(decimal.Big).CmpTotal(got[1].Volume))
	// The second connection delivered the same bars.
	assert.Equal(t, got[0].Timestamp, got[2].Timestamp)
	assert.GreaterOrEqual(t, connections.Load(), int32(2))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.FeedReconnects), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.FeedBars), 4.0)
}

func TestRunWithoutUrl(t *testing.T) {
	logger, _ := mock.NewLogger(t)
	client := NewClient(Config{}, logger, nil)
	assert.ErrorIs(t, client.Run(context.Background(), make(chan indapi.CandleData)), ErrNoUrl)
}

func TestRunStopsWhileReconnecting(t *testing.T) {
	logger, _ := mock.NewLogger(t)
	client := NewClient(Config{Url: "ws://127.0.0.1:1/invalid", ReconnectDelay: time.Hour}, logger, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, client.Run(ctx, make(chan indapi.CandleData)))
}
