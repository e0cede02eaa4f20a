package main

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/walletledger/internal/infrastructure/config"
	"github.com/iho/walletledger/internal/infrastructure/eventpublisher"
)

func TestNewConverterUsesConfiguredRates(t *testing.T) {
	cfg := &config.Config{
		BaseCurrency:  "EGP",
		CurrencyRates: map[string]string{"USD": "48.17", "EUR": "56.55"},
	}

	converter, err := newConverter(cfg)
	require.NoError(t, err)

	got, err := converter.Convert(10000, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(481700), got)
}

func TestNewConverterFallsBackToDefaultRates(t *testing.T) {
	converter, err := newConverter(&config.Config{BaseCurrency: "EGP"})
	require.NoError(t, err)

	got, err := converter.Convert(100, "EUR")
	require.NoError(t, err)
	assert.Equal(t, int64(5655), got)
}

func TestNewConverterRejectsBadRate(t *testing.T) {
	_, err := newConverter(&config.Config{
		BaseCurrency:  "EGP",
		CurrencyRates: map[string]string{"USD": "not-a-number"},
	})
	require.Error(t, err)
}

func TestNewPublisherSelectsTransport(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, isLog := newPublisher(nil, "", logger).(*eventpublisher.LogPublisher)
	assert.True(t, isLog, "no redis client falls back to logging")

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	pub, isRedis := newPublisher(client, "ledger:", logger).(*eventpublisher.RedisPublisher)
	require.True(t, isRedis)
	assert.Equal(t, "ledger:transaction.completed", pub.Channel("transaction.completed"))
}

func TestNewServerAppliesTimeouts(t *testing.T) {
	cfg := &config.Config{
		HTTPPort:         "9090",
		HTTPReadTimeout:  time.Second,
		HTTPWriteTimeout: 2 * time.Second,
		HTTPIdleTimeout:  3 * time.Second,
	}

	server := newServer(cfg, http.NotFoundHandler())

	assert.Equal(t, ":9090", server.Addr)
	assert.Equal(t, time.Second, server.ReadTimeout)
	assert.Equal(t, 2*time.Second, server.WriteTimeout)
	assert.Equal(t, 3*time.Second, server.IdleTimeout)
}
