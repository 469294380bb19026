package telegram

import (
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/DevelopIT-LTD/escobar-bot/pkg/prometheus"
)

func TestObserveCountsEvent(t *testing.T) {
	b := &Bot{log: slog.Default()}

	before := testutil.ToFloat64(prometheus.EventCounter.WithLabelValues("callback"))
	called := false
	b.observe("callback", func() { called = true })

	assert.True(t, called)
	assert.Equal(t, before+1,
		testutil.ToFloat64(prometheus.EventCounter.WithLabelValues("callback")))
}
