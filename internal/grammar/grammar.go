// Package grammar validates request lines against the strict subset of HTTP/1.1 the
// server understands. All functions are pure and safe for concurrent use.
package grammar

import (
	"strings"

	"github.com/LightFelicis/CorrelatedTCPServers/http"
	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/indigo-web/utils/strcomp"
)

// Version is the only protocol version accepted.
const Version = "HTTP/1.1"

// Scope selects which header names are significant and whether the zero Content-Length
// rule is enforced. Names must be lower-cased.
type Scope struct {
	Significant       []string
	ZeroContentLength bool
}

var (
	// GenericScope covers every header name the server recognizes at all.
	GenericScope = Scope{
		Significant: []string{"connection", "content-length", "server", "content-type"},
	}
	// RequestScope narrows significance to the fields meaningful in a request. As requests
	// never carry a body, Content-Length is additionally required to be zero.
	RequestScope = Scope{
		Significant:       []string{"connection", "content-length"},
		ZeroContentLength: true,
	}
)

// ValidateStartLine parses `<method> <target> HTTP/1.1`, where fields are separated by
// exactly one space each.
func ValidateStartLine(line string) (http.StartLine, error) {
	methodEnd := strings.IndexByte(line, ' ')
	if methodEnd <= 0 {
		return http.StartLine{}, status.ErrBadStartLine
	}

	methodToken, rest := line[:methodEnd], line[methodEnd+1:]
	targetEnd := strings.IndexByte(rest, ' ')
	if targetEnd == -1 {
		return http.StartLine{}, status.ErrBadStartLine
	}

	target, version := rest[:targetEnd], rest[targetEnd+1:]
	if !isToken(methodToken) || !isTarget(target) || version != Version {
		return http.StartLine{}, status.ErrBadStartLine
	}

	return http.NewStartLine(methodToken, target, version), nil
}

// ValidateHeaderLine parses `<name>:<spaces><value><spaces>`. The name must not contain
// any whitespace, the value must not be empty after trimming. Both are lower-cased.
func ValidateHeaderLine(line string, scope Scope) (http.HeaderField, error) {
	colon := strings.IndexByte(line, ':')
	if colon <= 0 {
		return http.HeaderField{}, status.ErrBadHeaderField
	}

	name, value := line[:colon], trimSpaces(line[colon+1:])
	if strings.IndexFunc(name, isSpace) != -1 || len(value) == 0 ||
		strings.ContainsAny(value, "\r\n") {
		return http.HeaderField{}, status.ErrBadHeaderField
	}

	name, value = strings.ToLower(name), strings.ToLower(value)
	if scope.ZeroContentLength && name == "content-length" && value != "0" {
		return http.HeaderField{}, status.ErrNonZeroContentLength
	}

	return http.HeaderField{
		Name:        name,
		Value:       value,
		Significant: Classify(name, scope),
	}, nil
}

// Classify tells whether the header name is significant within the scope.
func Classify(name string, scope Scope) bool {
	for _, significant := range scope.Significant {
		if strcomp.EqualFold(name, significant) {
			return true
		}
	}

	return false
}

func isToken(str string) bool {
	return len(str) > 0 && strings.IndexFunc(str, isSpace) == -1
}

// isTarget accepts a slash followed by at least one of [A-Za-z0-9._/-].
func isTarget(str string) bool {
	if len(str) < 2 || str[0] != '/' {
		return false
	}

	for i := 1; i < len(str); i++ {
		if !isPathChar(str[i]) {
			return false
		}
	}

	return true
}

func isPathChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return c == '.' || c == '-' || c == '/' || c == '_'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

func trimSpaces(str string) string {
	for len(str) > 0 && str[0] == ' ' {
		str = str[1:]
	}

	for len(str) > 0 && str[len(str)-1] == ' ' {
		str = str[:len(str)-1]
	}

	return str
}
