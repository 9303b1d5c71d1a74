package transport

import (
	"net"
)

type Transport interface {
	Bind(addr string) error
	Listen(cb func(conn net.Conn)) error
	Stop()
	Close()
	Wait()
}
