package http1

import (
	"bytes"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/buffer"
	"github.com/indigo-web/utils/uf"
)

type framerState uint8

const (
	eLine framerState = iota
	eLineCR
	eTerminated
	eTerminatedCR
)

// Framer splits the byte stream into request heads. A head is a sequence of CRLF-terminated
// lines, closed by an empty line. Lone CR and LF are just a part of the line.
type Framer struct {
	state    framerState
	done     bool
	maxLines int
	buff     buffer.Buffer
	lines    []string
}

func NewFramer(cfg *config.Config) *Framer {
	return &Framer{
		state:    eLine,
		maxLines: cfg.Lines.MaxNumber,
		buff:     buffer.New(cfg.Lines.HeadSize.Default, cfg.Lines.MaxLength, cfg.Lines.HeadSize.Maximal),
		lines:    make([]string, 0, 16),
	}
}

// Feed consumes the data until a head is completed. Nil lines mean more data is needed.
// Completed lines stay valid until the next call to Feed, and extra holds everything,
// belonging to the next message.
func (f *Framer) Feed(data []byte) (lines []string, extra []byte, err error) {
	if f.done {
		f.reset()
	}

	for i := 0; i < len(data); i++ {
		switch f.state {
		case eLine:
			cr := bytes.IndexByte(data[i:], '\r')
			if cr == -1 {
				return nil, nil, f.fail(f.buff.Append(data[i:]))
			}

			if err = f.buff.Append(data[i : i+cr]); err != nil {
				return nil, nil, f.fail(err)
			}

			i += cr
			f.state = eLineCR
		case eLineCR:
			if data[i] == '\n' {
				if err = f.push(); err != nil {
					return nil, nil, f.fail(err)
				}

				f.state = eTerminated
				continue
			}

			if err = f.buff.AppendByte('\r'); err != nil {
				return nil, nil, f.fail(err)
			}

			f.state = eLine
			i--
		case eTerminated:
			if data[i] == '\r' {
				f.state = eTerminatedCR
				continue
			}

			f.state = eLine
			i--
		case eTerminatedCR:
			if data[i] == '\n' {
				f.done = true
				f.state = eLine
				return f.lines, data[i+1:], nil
			}

			if err = f.buff.AppendByte('\r'); err != nil {
				return nil, nil, f.fail(err)
			}

			f.state = eLine
			i--
		}
	}

	return nil, nil, nil
}

func (f *Framer) push() error {
	if len(f.lines) >= f.maxLines {
		return status.ErrTooManyHeaders
	}

	f.lines = append(f.lines, uf.B2S(f.buff.Finish()))
	return nil
}

func (f *Framer) fail(err error) error {
	if err == nil {
		return nil
	}

	f.done = true
	f.state = eLine

	switch err {
	case buffer.ErrSegmentTooLong:
		return status.ErrLineTooLong
	case buffer.ErrOverflow:
		return status.ErrHeadTooLarge
	default:
		return err
	}
}

func (f *Framer) reset() {
	f.done = false
	f.buff.Clear()
	f.lines = f.lines[:0]
}

// Render turns the lines back into a wire-format head.
func Render(lines []string) []byte {
	size := 2
	for _, line := range lines {
		size += len(line) + 2
	}

	buff := make([]byte, 0, size)
	for _, line := range lines {
		buff = append(buff, line...)
		buff = append(buff, '\r', '\n')
	}

	return append(buff, '\r', '\n')
}
