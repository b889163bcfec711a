package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/rsvp/pkg/cli/config"
	"github.com/secmon-lab/rsvp/pkg/utils/retry"
)

func TestBackendConfigure(t *testing.T) {
	t.Run("default endpoint", func(t *testing.T) {
		cfg := config.Backend{
			EndpointURL:      config.DefaultEndpointURL,
			RetryMaxAttempts: 4,
			RetryBaseDelay:   250 * time.Millisecond,
			RetryJitter:      250 * time.Millisecond,
			RequestTimeout:   10 * time.Second,
		}
		client, err := cfg.Configure()
		gt.NoError(t, err)
		gt.V(t, client).NotNil()
		gt.Equal(t, cfg.Policy(), retry.DefaultPolicy())
	})

	t.Run("relative endpoint is rejected", func(t *testing.T) {
		cfg := config.Backend{EndpointURL: "/exec", RetryMaxAttempts: 4}
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("zero attempts is rejected", func(t *testing.T) {
		cfg := config.Backend{EndpointURL: config.DefaultEndpointURL}
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}

func TestThrottleConfigure(t *testing.T) {
	limiter, err := (&config.Throttle{Attempts: 3, Window: 10 * time.Second}).Configure()
	gt.NoError(t, err)
	gt.V(t, limiter).NotNil()

	_, err = (&config.Throttle{Attempts: 0, Window: time.Second}).Configure()
	gt.Error(t, err)
}

func TestLoggerConfigure(t *testing.T) {
	logger, err := (&config.Logger{Level: "debug", Format: "json"}).Configure()
	gt.NoError(t, err)
	gt.V(t, logger).NotNil()

	_, err = (&config.Logger{Level: "loud", Format: "json"}).Configure()
	gt.Error(t, err)

	_, err = (&config.Logger{Level: "info", Format: "xml"}).Configure()
	gt.Error(t, err)
}

func TestFirestoreFallsBackToMemory(t *testing.T) {
	cfg := config.Firestore{}
	gt.False(t, cfg.IsConfigured())

	repo, err := cfg.Configure(context.Background())
	gt.NoError(t, err)
	defer repo.Close()
	gt.V(t, repo).NotNil()
}

func TestSlackOptional(t *testing.T) {
	gt.Nil(t, (&config.Slack{OAuthToken: "xoxb-test"}).ConfigureOptional(context.Background()))
	gt.V(t, (&config.Slack{OAuthToken: "xoxb-test", ChannelID: "C123"}).ConfigureOptional(context.Background())).NotNil()
}
