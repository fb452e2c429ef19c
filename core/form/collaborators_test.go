package form_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/contactform/core/form"
)

func TestDelaySubmitter(t *testing.T) {
	t.Run("waits then succeeds", func(t *testing.T) {
		start := time.Now()
		err := form.DelaySubmitter(20*time.Millisecond).Submit(context.Background(), nil)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := form.DelaySubmitter(time.Hour).Submit(ctx, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	form.LogReporter(log).ReportError(context.Background(), "form submission", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"form submission"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"component":"form"`)
}

func TestNotifierFunc(t *testing.T) {
	var got string
	form.NotifierFunc(func(_ context.Context, message string) { got = message }).
		NotifySuccess(context.Background(), "sent")
	assert.Equal(t, "sent", got)
}
