// Package assembler builds validated requests out of framed message lines.
package assembler

import (
	"github.com/LightFelicis/CorrelatedTCPServers/http"
	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/grammar"
)

// Assemble validates the start line (lines[0]) and every header line after it. Any single
// invalid line invalidates the whole message. Insignificant header fields are checked for
// syntax only and aren't included into the request. Significant ones must be unique.
func Assemble(lines []string) (*http.Request, error) {
	if len(lines) == 0 {
		return nil, status.ErrEmptyMessage
	}

	startLine, err := grammar.ValidateStartLine(lines[0])
	if err != nil {
		return nil, err
	}

	headers := http.NewPreallocHeaders(len(grammar.RequestScope.Significant))

	for _, line := range lines[1:] {
		field, err := grammar.ValidateHeaderLine(line, grammar.RequestScope)
		if err != nil {
			return nil, err
		}

		if !field.Significant {
			continue
		}

		if !headers.Add(field) {
			return nil, status.ErrDuplicateHeader
		}
	}

	return http.NewRequest(startLine, headers), nil
}
