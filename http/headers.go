package http

import (
	"github.com/indigo-web/utils/strcomp"
)

// HeaderField is a single validated header line. Both name and value are lower-cased.
type HeaderField struct {
	Name  string
	Value string
	// Significant marks fields, meaningful for the request semantics. Only those
	// participate in uniqueness checks.
	Significant bool
}

// Headers is an ordered set of header fields, keyed case-insensitively by name. It uses
// linear search instead of a map, as there are at most a couple of significant fields
// per request.
type Headers struct {
	fields []HeaderField
}

func NewHeaders() *Headers {
	return new(Headers)
}

// NewPreallocHeaders returns an instance of Headers with pre-allocated underlying storage.
func NewPreallocHeaders(n int) *Headers {
	return &Headers{
		fields: make([]HeaderField, 0, n),
	}
}

// Add inserts the field unless a field with the same name is already presented. Returns
// false in the latter case, leaving the set untouched.
func (h *Headers) Add(field HeaderField) (ok bool) {
	if h.Has(field.Name) {
		return false
	}

	h.fields = append(h.fields, field)
	return true
}

// Get returns the value of the field and a bool, indicating whether it was found.
func (h *Headers) Get(name string) (string, bool) {
	for _, field := range h.fields {
		if strcomp.EqualFold(field.Name, name) {
			return field.Value, true
		}
	}

	return "", false
}

// Value returns the value of the field or an empty string, if it isn't presented.
func (h *Headers) Value(name string) string {
	value, _ := h.Get(name)
	return value
}

// Has tells whether a field with the name exists.
func (h *Headers) Has(name string) bool {
	_, found := h.Get(name)
	return found
}

// Is compares the field value against the wanted one case-insensitively.
func (h *Headers) Is(name, wanted string) bool {
	value, found := h.Get(name)
	return found && strcomp.EqualFold(value, wanted)
}

// Len returns the number of stored fields.
func (h *Headers) Len() int {
	return len(h.fields)
}

// Fields exposes the underlying fields in their insertion order. The returned slice
// must not be modified.
func (h *Headers) Fields() []HeaderField {
	return h.fields
}
