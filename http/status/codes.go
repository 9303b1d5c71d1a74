package status

import "strconv"

type (
	Code   uint16
	Status string
)

// Codes the server is able to respond with. The rest of IANA registry is deliberately
// left out, as nothing is going to produce them.
const (
	OK Code = 200 // RFC 9110, 15.3.1

	Found Code = 302 // RFC 9110, 15.4.3

	BadRequest Code = 400 // RFC 9110, 15.5.1
	NotFound   Code = 404 // RFC 9110, 15.5.5

	InternalServerError Code = 500 // RFC 9110, 15.6.1
	NotImplemented      Code = 501 // RFC 9110, 15.6.2
)

// KnownCodes lists every code having its own reason phrase.
var KnownCodes = []Code{OK, Found, BadRequest, NotFound, InternalServerError, NotImplemented}

// Text returns the reason phrase for the status code. Note that 302 is rendered as
// "Redirected", as peers of the correlated servers network expect exactly this.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case Found:
		return "Redirected"
	case BadRequest:
		return "Bad Request"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	case NotImplemented:
		return "Not Implemented"
	default:
		return "Unknown Status Code"
	}
}

// StringCode returns the code as a decimal string.
func StringCode(code Code) string {
	return strconv.Itoa(int(code))
}

// Closing reports whether responding with the code must be followed by closing the
// connection. Those are all the codes, caused by malformed or unsupported requests.
func Closing(code Code) bool {
	return code == BadRequest || code == NotImplemented || code == InternalServerError
}
