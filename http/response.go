package http

import (
	"io"
	"strconv"

	"github.com/LightFelicis/CorrelatedTCPServers/http/status"
)

// Header is a response header pair. Unlike HeaderField, it isn't normalized.
type Header struct {
	Key, Value string
}

// preallocRespHeaders covers the largest response the server produces: content-type,
// content-length and connection.
const preallocRespHeaders = 3

type Response struct {
	Code    status.Code
	Headers []Header
	// Body is streamed after the headers and closed afterwards. Nil means no body.
	Body io.ReadCloser
	// Size is the exact number of bytes Body is going to produce.
	Size int64
	// Close tells that the connection must be closed after the response is written.
	Close bool
}

// NewResponse returns a new instance of the Response object with status code set to 200 OK.
func NewResponse() *Response {
	return &Response{
		Code:    status.OK,
		Headers: make([]Header, 0, preallocRespHeaders),
	}
}

// WithCode sets the response code.
func (r *Response) WithCode(code status.Code) *Response {
	r.Code = code
	return r
}

// Header appends a header pair. Duplicates aren't checked.
func (r *Response) Header(key, value string) *Response {
	r.Headers = append(r.Headers, Header{
		Key:   key,
		Value: value,
	})
	return r
}

// Stream sets a body of known size. Content-Length header is set implicitly.
func (r *Response) Stream(body io.ReadCloser, size int64) *Response {
	r.Body = body
	r.Size = size
	return r.Header("Content-Length", strconv.FormatInt(size, 10))
}

// WithClose marks the connection to be closed once the response is sent and notifies the
// client about it.
func (r *Response) WithClose() *Response {
	if r.Close {
		return r
	}

	r.Close = true
	return r.Header("Connection", "close")
}

// Error returns a bodiless response for the error. Errors, which aren't status.HTTPError,
// result in 500 Internal Server Error.
func Error(err error) *Response {
	resp := NewResponse().WithCode(status.CodeOf(err))
	if status.Closing(resp.Code) {
		resp.WithClose()
	}

	return resp
}

// HeaderValue returns the value of the first header with the key, or an empty string.
// The session uses it to log redirect targets.
// Keys are compared exactly, as they're set by the server itself.
func (r *Response) HeaderValue(key string) string {
	for _, h := range r.Headers {
		if h.Key == key {
			return h.Value
		}
	}

	return ""
}
