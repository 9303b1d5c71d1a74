package http1

import (
	"bufio"
	"errors"
	"io"
	stdhttp "net/http"
	"strings"
	"testing"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/LightFelicis/CorrelatedTCPServers/http"
	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/LightFelicis/CorrelatedTCPServers/transport/dummy"
	"github.com/stretchr/testify/require"
)

type trackingBody struct {
	io.Reader
	closed bool
}

func (t *trackingBody) Close() error {
	t.closed = true
	return nil
}

func newBody(data string) *trackingBody {
	return &trackingBody{Reader: strings.NewReader(data)}
}

func getRequest(methodToken string) *http.Request {
	return http.NewRequest(http.NewStartLine(methodToken, "/file", "HTTP/1.1"), http.NewHeaders())
}

func readResponse(t *testing.T, data string, methodName string) *stdhttp.Response {
	stdreq, err := stdhttp.NewRequest(methodName, "/", nil)
	require.NoError(t, err)
	resp, err := stdhttp.ReadResponse(bufio.NewReader(strings.NewReader(data)), stdreq)
	require.NoError(t, err)

	return resp
}

func TestSerializer(t *testing.T) {
	t.Run("bodiless response", func(t *testing.T) {
		client := dummy.NewMockClient()
		s := newSerializer(config.Default(), client)
		require.NoError(t, s.Write(nil, http.NewResponse().WithCode(status.NotFound)))
		require.Equal(t, "HTTP/1.1 404 Not Found\r\n\r\n", client.Written())
	})

	t.Run("redirect", func(t *testing.T) {
		client := dummy.NewMockClient()
		s := newSerializer(config.Default(), client)
		resp := http.NewResponse().
			WithCode(status.Found).
			Header("Location", "http://10.0.0.1:8080/file")
		require.NoError(t, s.Write(getRequest("GET"), resp))
		require.Equal(t, "HTTP/1.1 302 Redirected\r\nLocation: http://10.0.0.1:8080/file\r\n\r\n", client.Written())
	})

	t.Run("streamed body in small chunks", func(t *testing.T) {
		cfg := config.Default()
		cfg.Files.ChunkSize = 3
		client := dummy.NewMockClient()
		s := newSerializer(cfg, client)
		body := newBody("Hello, world!")
		resp := http.NewResponse().
			Header("Content-Type", "application/octet-stream").
			Stream(body, 13)

		require.NoError(t, s.Write(getRequest("GET"), resp))
		require.True(t, body.closed)

		parsed := readResponse(t, client.Written(), stdhttp.MethodGet)
		require.Equal(t, 200, parsed.StatusCode)
		require.Equal(t, "application/octet-stream", parsed.Header.Get("Content-Type"))
		require.Equal(t, int64(13), parsed.ContentLength)
		content, err := io.ReadAll(parsed.Body)
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(content))
	})

	t.Run("HEAD omits the body", func(t *testing.T) {
		client := dummy.NewMockClient()
		s := newSerializer(config.Default(), client)
		body := newBody("Hello, world!")

		require.NoError(t, s.Write(getRequest("HEAD"), http.NewResponse().Stream(body, 13)))
		require.True(t, body.closed)
		require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 13\r\n\r\n", client.Written())
	})

	t.Run("body longer than announced", func(t *testing.T) {
		client := dummy.NewMockClient()
		s := newSerializer(config.Default(), client)

		require.NoError(t, s.Write(getRequest("GET"), http.NewResponse().Stream(newBody("Hello, world!"), 5)))
		require.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nHello", client.Written())
	})

	t.Run("short body", func(t *testing.T) {
		client := dummy.NewMockClient()
		s := newSerializer(config.Default(), client)
		body := newBody("Hello")

		err := s.Write(getRequest("GET"), http.NewResponse().Stream(body, 13))
		require.True(t, errors.Is(err, errShortBody))
		require.True(t, body.closed)
	})

	t.Run("closed connection", func(t *testing.T) {
		client := dummy.NewMockClient()
		require.NoError(t, client.Close())
		s := newSerializer(config.Default(), client)
		body := newBody("Hello")

		require.Error(t, s.Write(getRequest("GET"), http.NewResponse().Stream(body, 5)))
		require.True(t, body.closed)
	})
}
