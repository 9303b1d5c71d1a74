package http

import (
	"github.com/LightFelicis/CorrelatedTCPServers/http/method"
)

// StartLine is a validated request line. Target is guaranteed to begin with a slash and
// to contain only path-safe characters, Version is always HTTP/1.1.
type StartLine struct {
	// Method is the raw method token, case preserved.
	Method string
	Target string
	// Version equals "HTTP/1.1" byte-for-byte.
	Version string
	// Implemented is false for syntactically valid methods, the server doesn't serve.
	// Those must be answered with 501 Not Implemented instead of a syntax error.
	Implemented bool
}

// NewStartLine returns a start line with Implemented computed from the method token.
func NewStartLine(methodToken, target, version string) StartLine {
	return StartLine{
		Method:      methodToken,
		Target:      target,
		Version:     version,
		Implemented: method.Implemented(method.Parse(methodToken)),
	}
}

// Request represents an assembled HTTP request. It's constructed at once from a complete
// set of message lines and mustn't be modified afterwards.
type Request struct {
	StartLine
	// Headers holds only significant header fields. Others are validated but dropped.
	Headers *Headers
}

func NewRequest(startLine StartLine, headers *Headers) *Request {
	return &Request{
		StartLine: startLine,
		Headers:   headers,
	}
}

// MethodEnum returns the parsed method of the request.
func (r *Request) MethodEnum() method.Method {
	return method.Parse(r.StartLine.Method)
}

// WantsClose tells whether the client explicitly requested closing the connection after
// the response.
func (r *Request) WantsClose() bool {
	return r.Headers.Is("connection", "close")
}
