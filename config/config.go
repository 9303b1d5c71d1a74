package config

import (
	"time"

	"github.com/LightFelicis/CorrelatedTCPServers/http/mime"
)

type (
	LinesHeadSize struct {
		Default, Maximal int
	}
)

type (
	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket. It has nothing to do with the maximal length of a line, as lines are
		// accumulated across reads.
		ReadBufferSize int
		// ReadTimeout controls the maximal lifetime of IDLE connections. Zero disables it,
		// so a silent client keeps its connection (and, with MaxConnections: 1, the whole
		// server) for as long as it wants.
		ReadTimeout time.Duration `test:"nullable"`
		// WriteTimeout limits a single write into the socket. Zero disables it.
		WriteTimeout time.Duration `test:"nullable"`
		// MaxConnections is the number of connections served simultaneously. The rest wait
		// in the listen backlog. Zero means no limit.
		MaxConnections int
	}

	Lines struct {
		// MaxLength limits a single line of the request head, excluding CRLF.
		MaxLength int
		// MaxNumber limits the number of lines in a single request head, including the
		// request line itself.
		MaxNumber int
		// HeadSize is the buffer storing all the lines of a request head. Default is the
		// initial capacity, Maximal is the hard limit.
		HeadSize LinesHeadSize
	}

	Files struct {
		// ChunkSize is the size of a buffer, files are streamed through. Files are never
		// loaded into the memory as a whole.
		ChunkSize int
		// ContentType is sent along with every served file.
		ContentType string
	}
)

// Config holds settings used across various parts of the server, mainly restrictions,
// limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET   NET
	Lines Lines
	Files Files
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			ReadBufferSize: 4 * 1024,
			MaxConnections: 1, // peers of a correlated network expect one client at a time
		},
		Lines: Lines{
			MaxLength: 8 * 1024,
			MaxNumber: 100,
			HeadSize: LinesHeadSize{
				Default: 2 * 1024,
				Maximal: 64 * 1024,
			},
		},
		Files: Files{
			ChunkSize:   4 * 1024,
			ContentType: mime.OctetStream,
		},
	}
}
