package http1

import (
	"errors"
	"io"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/LightFelicis/CorrelatedTCPServers/http"
	"github.com/LightFelicis/CorrelatedTCPServers/http/method"
	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/grammar"
	"github.com/LightFelicis/CorrelatedTCPServers/transport"
)

var errShortBody = errors.New("response body ended before the announced Content-Length")

type serializer struct {
	client transport.Client
	buff   []byte
	chunk  []byte
}

func newSerializer(cfg *config.Config, client transport.Client) *serializer {
	return &serializer{
		client: client,
		buff:   make([]byte, 0, 256),
		chunk:  make([]byte, cfg.Files.ChunkSize),
	}
}

// Write renders the response head and streams the body, if any. The body is always closed.
// Responses to HEAD requests never carry the body, even though the head describes it.
func (s *serializer) Write(request *http.Request, response *http.Response) error {
	if response.Body != nil {
		defer response.Body.Close()
	}

	s.buff = s.buff[:0]
	s.appendStatusLine(response.Code)
	for _, header := range response.Headers {
		s.appendHeader(header.Key, header.Value)
	}
	s.crlf()

	if _, err := s.client.Write(s.buff); err != nil {
		return err
	}

	if response.Body == nil || (request != nil && request.MethodEnum() == method.HEAD) {
		return nil
	}

	return s.stream(response.Body, response.Size)
}

func (s *serializer) stream(body io.Reader, size int64) error {
	n, err := io.CopyBuffer(clientWriter{s.client}, io.LimitReader(body, size), s.chunk)
	switch {
	case err != nil:
		return err
	case n < size:
		return errShortBody
	default:
		return nil
	}
}

func (s *serializer) appendStatusLine(code status.Code) {
	s.buff = append(s.buff, grammar.Version...)
	s.buff = append(s.buff, ' ')
	s.buff = append(s.buff, status.StringCode(code)...)
	s.buff = append(s.buff, ' ')
	s.buff = append(s.buff, status.Text(code)...)
	s.crlf()
}

func (s *serializer) appendHeader(key, value string) {
	s.buff = append(s.buff, key...)
	s.buff = append(s.buff, ':', ' ')
	s.buff = append(s.buff, value...)
	s.crlf()
}

func (s *serializer) crlf() {
	s.buff = append(s.buff, '\r', '\n')
}

// clientWriter hides everything but Write, so io.CopyBuffer always goes through the chunk.
type clientWriter struct {
	client transport.Client
}

func (c clientWriter) Write(b []byte) (int, error) {
	return c.client.Write(b)
}
