package assembler

import (
	"fmt"
	"testing"

	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/dchest/uniuri"
	"github.com/stretchr/testify/require"
)

func randomHeaders(n int) []string {
	headers := make([]string, n)
	for i := range headers {
		headers[i] = fmt.Sprintf("X-%s: %s", uniuri.NewLen(12), uniuri.NewLen(16))
	}

	return headers
}

func TestAssemble(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		request, err := Assemble([]string{
			"GET /plik HTTP/1.1",
			"Content-Length: 0",
			"Server: spaaaam",
			"Server: spaaaam2",
			"Connection: close",
		})
		require.NoError(t, err)
		require.Equal(t, 2, request.Headers.Len())
		require.True(t, request.Implemented)
		require.Equal(t, "GET", request.Method)
		require.Equal(t, "/plik", request.Target)
		require.True(t, request.WantsClose())
	})

	t.Run("no headers", func(t *testing.T) {
		request, err := Assemble([]string{"HEAD /index.html HTTP/1.1"})
		require.NoError(t, err)
		require.Zero(t, request.Headers.Len())
		require.False(t, request.WantsClose())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Assemble(nil)
		require.ErrorIs(t, err, status.ErrEmptyMessage)

		_, err = Assemble([]string{""})
		require.ErrorIs(t, err, status.ErrBadStartLine)
	})

	t.Run("duplicated", func(t *testing.T) {
		_, err := Assemble([]string{
			"GET /plik HTTP/1.1",
			"Content-Length: 0",
			"Content-Length: 12",
			"Connection: close",
		})
		require.Error(t, err)
		require.Equal(t, status.BadRequest, status.CodeOf(err))
	})

	t.Run("duplicated after case folding", func(t *testing.T) {
		_, err := Assemble([]string{
			"GET /plik HTTP/1.1",
			"Content-Length: 0",
			"content-LENGTH: 0",
		})
		require.ErrorIs(t, err, status.ErrDuplicateHeader)
	})

	t.Run("non-zero content length", func(t *testing.T) {
		_, err := Assemble([]string{"GET /plik HTTP/1.1", "Content-Length: 12"})
		require.ErrorIs(t, err, status.ErrNonZeroContentLength)
	})

	t.Run("single bad header invalidates everything", func(t *testing.T) {
		_, err := Assemble([]string{"GET /plik HTTP/1.1", "Connection: close", "ala makota"})
		require.ErrorIs(t, err, status.ErrBadHeaderField)
	})

	t.Run("bad start line", func(t *testing.T) {
		_, err := Assemble([]string{"GET /plik", "Connection: close"})
		require.ErrorIs(t, err, status.ErrBadStartLine)
	})

	t.Run("unimplemented method still assembles", func(t *testing.T) {
		request, err := Assemble([]string{"DELETE /plik HTTP/1.1", "Connection: keep-alive"})
		require.NoError(t, err)
		require.False(t, request.Implemented)
		require.Equal(t, "keep-alive", request.Headers.Value("connection"))
	})

	t.Run("insignificant headers are dropped", func(t *testing.T) {
		lines := append([]string{"GET /plik HTTP/1.1"}, randomHeaders(20)...)
		lines = append(lines, "Server: a", "Server: b", "Content-Type: text/html", "Content-Type: x")
		request, err := Assemble(lines)
		require.NoError(t, err)
		require.Zero(t, request.Headers.Len())
	})
}
