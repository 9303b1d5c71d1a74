package mime

type MIME = string

// OctetStream is sent with every served file, as the server never inspects file contents
// or extensions.
const OctetStream MIME = "application/octet-stream"
