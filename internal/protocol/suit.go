package protocol

import (
	"github.com/LightFelicis/CorrelatedTCPServers/http"
)

// Framer cuts request heads out of the byte stream.
type Framer interface {
	Feed(data []byte) (lines []string, extra []byte, err error)
}

// Serializer converts a response into bytes and writes it.
type Serializer interface {
	Write(request *http.Request, response *http.Response) error
}

type Server interface {
	Serve()
}
