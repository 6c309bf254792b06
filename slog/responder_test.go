package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/sitechat/mock"
	sitechatslog "github.com/fwojciec/sitechat/slog"
)

func TestLoggingResponder(t *testing.T) {
	t.Parallel()

	t.Run("LogsSizesNotContent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Responder{
			RespondFn: func(ctx context.Context, key, input string) (string, error) {
				return "a private answer", nil
			},
		}

		responder := sitechatslog.NewLoggingResponder(inner, logger)
		response, err := responder.Respond(context.Background(), "user_deadbeef", "a private question")
		require.NoError(t, err)
		assert.Equal(t, "a private answer", response)

		out := buf.String()
		assert.Contains(t, out, "msg=chat")
		assert.Contains(t, out, "key=user_deadbeef")
		assert.Contains(t, out, "input_len=18")
		assert.Contains(t, out, "response_len=16")
		assert.NotContains(t, out, "private question")
		assert.NotContains(t, out, "private answer")
	})
}
