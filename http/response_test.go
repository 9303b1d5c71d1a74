package http

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		resp := NewResponse()
		require.Equal(t, status.OK, resp.Code)
		require.Empty(t, resp.Headers)
		require.Nil(t, resp.Body)
		require.False(t, resp.Close)
	})

	t.Run("stream sets content length", func(t *testing.T) {
		resp := NewResponse().Stream(io.NopCloser(strings.NewReader("hello")), 5)
		require.Equal(t, int64(5), resp.Size)
		require.Equal(t, "5", resp.HeaderValue("Content-Length"))
	})

	t.Run("close once", func(t *testing.T) {
		resp := NewResponse().WithClose().WithClose()
		require.True(t, resp.Close)
		require.Len(t, resp.Headers, 1)
		require.Equal(t, "close", resp.HeaderValue("Connection"))
	})

	t.Run("errors", func(t *testing.T) {
		resp := Error(status.ErrBadStartLine)
		require.Equal(t, status.BadRequest, resp.Code)
		require.True(t, resp.Close)

		resp = Error(status.ErrMethodNotImplemented)
		require.Equal(t, status.NotImplemented, resp.Code)
		require.True(t, resp.Close)

		resp = Error(status.ErrNotFound)
		require.Equal(t, status.NotFound, resp.Code)
		require.False(t, resp.Close)
		require.Empty(t, resp.HeaderValue("Connection"))

		resp = Error(errors.New("whatever"))
		require.Equal(t, status.InternalServerError, resp.Code)
		require.True(t, resp.Close)
	})
}
