// Package correlation holds the static table of peer servers, a missing resource may be
// found on. The table is loaded once at startup and is read-only afterwards, so it is
// safe to be shared between connections without locking.
package correlation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

var (
	ErrFieldsNumber = errors.New("record must consist of exactly 3 tab-separated fields")
	ErrEmptyField   = errors.New("record contains an empty field")
	ErrBadPort      = errors.New("port must be a number in range 1-65535")
)

// Entry tells that Resource is available at Host:Port.
type Entry struct {
	Resource string
	Host     string
	Port     string
}

// ParseEntry parses a single `resource<TAB>host<TAB>port` record.
func ParseEntry(record string) (Entry, error) {
	fields := strings.Split(record, "\t")
	if len(fields) != 3 {
		return Entry{}, ErrFieldsNumber
	}

	for _, field := range fields {
		if len(field) == 0 {
			return Entry{}, ErrEmptyField
		}
	}

	if port, err := strconv.ParseUint(fields[2], 10, 16); err != nil || port == 0 {
		return Entry{}, ErrBadPort
	}

	return Entry{
		Resource: fields[0],
		Host:     fields[1],
		Port:     fields[2],
	}, nil
}

// Location renders the absolute URL of the resource on the peer.
func (e Entry) Location() string {
	return "http://" + net.JoinHostPort(e.Host, e.Port) + e.Resource
}

type Table struct {
	entries []Entry
}

// New returns a table consisting of the entries in the passed order.
func New(entries ...Entry) *Table {
	return &Table{entries: entries}
}

// Parse reads newline-separated records. A trailing newline is allowed, but any other
// malformed record, including an empty line, fails the whole table.
func Parse(r io.Reader) (*Table, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		entry, err := ParseEntry(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("correlation: line %d: %w", line, err)
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	return New(entries...), nil
}

// Load parses the table from a file.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}

	defer file.Close()

	return Parse(file)
}

// Lookup returns the first entry of the resource. Resources are compared byte-for-byte
// against the request target.
func (t *Table) Lookup(resource string) (Entry, bool) {
	for _, entry := range t.entries {
		if entry.Resource == resource {
			return entry, true
		}
	}

	return Entry{}, false
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
