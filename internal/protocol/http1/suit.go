package http1

import (
	"errors"
	"io"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/LightFelicis/CorrelatedTCPServers/http"
	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/assembler"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/protocol"
	"github.com/LightFelicis/CorrelatedTCPServers/router"
	"github.com/LightFelicis/CorrelatedTCPServers/transport"
	"github.com/rs/zerolog"
)

var (
	_ protocol.Server     = new(Suit)
	_ protocol.Framer     = new(Framer)
	_ protocol.Serializer = new(serializer)
)

// Suit serves a single connection: requests are answered strictly one by one, in the order
// they arrived.
type Suit struct {
	framer     *Framer
	serializer *serializer
	router     router.Router
	client     transport.Client
	logger     zerolog.Logger
}

func New(cfg *config.Config, r router.Router, client transport.Client, logger zerolog.Logger) *Suit {
	return &Suit{
		framer:     NewFramer(cfg),
		serializer: newSerializer(cfg, client),
		router:     r,
		client:     client,
		logger:     logger,
	}
}

// Serve processes requests until either side decides to close the connection. The connection
// itself is left for the caller to close.
func (s *Suit) Serve() {
	for s.ServeOnce() {
	}
}

// ServeOnce reads the client until a single request is answered. Returns false, if the
// connection must be closed afterwards.
func (s *Suit) ServeOnce() bool {
	for {
		data, err := s.client.Read()
		if err != nil {
			s.readFailed(err)
			return false
		}

		lines, extra, err := s.framer.Feed(data)
		if err != nil {
			// fatal framing errors leave the stream in undefined position, so nothing
			// can be served after
			s.respond(nil, notNil(s.router.OnError(nil, err)).WithClose())
			return false
		}

		if lines == nil {
			continue
		}

		s.client.Pushback(extra)

		if event := s.logger.Trace(); event.Enabled() {
			event.Bytes("head", Render(lines)).Msg("request framed")
		}

		request, err := assembler.Assemble(lines)
		var response *http.Response
		if err != nil {
			response = s.router.OnError(request, err)
		} else {
			response = s.router.OnRequest(request)
		}

		response = notNil(response)
		return s.respond(request, response) && !response.Close
	}
}

func (s *Suit) respond(request *http.Request, response *http.Response) bool {
	event := s.logger.Debug().Uint16("code", uint16(response.Code))
	if request != nil {
		event = event.
			Str("method", request.Method).
			Str("target", request.Target).
			Int("headers", request.Headers.Len())
	}
	if location := response.HeaderValue("Location"); location != "" {
		event = event.Str("location", location)
	}
	event.Bool("close", response.Close).Msg("responding")

	if err := s.serializer.Write(request, response); err != nil {
		s.logger.Warn().Err(err).Msg("failed to write the response")
		return false
	}

	return true
}

func (s *Suit) readFailed(err error) {
	if errors.Is(err, io.EOF) {
		s.logger.Debug().Msg("connection closed by the client")
		return
	}

	s.logger.Warn().Err(err).Msg("failed to read from the connection")
}

func notNil(response *http.Response) *http.Response {
	if response != nil {
		return response
	}

	return http.Error(status.ErrInternalServerError)
}
