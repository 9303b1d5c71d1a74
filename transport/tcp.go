package transport

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"golang.org/x/net/netutil"
)

var _ Transport = new(TCP)

// TCP accepts connections, serving each of them in a separate goroutine. The number of
// simultaneously served connections may be limited, in which case the rest are left
// waiting in the backlog.
type TCP struct {
	cfg   config.NET
	l     net.Listener
	wg    *sync.WaitGroup
	stop  *atomic.Bool
	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

func NewTCP(cfg config.NET) *TCP {
	return &TCP{
		cfg:   cfg,
		wg:    new(sync.WaitGroup),
		stop:  new(atomic.Bool),
		conns: make(map[net.Conn]struct{}),
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) error {
	l, err := bindTCP(addr)
	if err != nil {
		return err
	}

	t.l = l
	if t.cfg.MaxConnections > 0 {
		t.l = netutil.LimitListener(l, t.cfg.MaxConnections)
	}

	return nil
}

// Addr returns the address the transport is bound to. Useful when bound to port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen blocks until Stop is called or the listener fails.
func (t *TCP) Listen(cb func(conn net.Conn)) error {
	for {
		conn, err := t.l.Accept()
		if err != nil {
			if t.stop.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}

			return err
		}

		if !t.track(conn) {
			_ = conn.Close()
			return nil
		}

		go func(conn net.Conn) {
			cb(conn)
			t.untrack(conn)
			_ = conn.Close()
			t.wg.Done()
		}(conn)
	}
}

func (t *TCP) track(conn net.Conn) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop.Load() {
		return false
	}

	t.conns[conn] = struct{}{}
	// must happen under the lock, otherwise it might race with Wait after Stop
	t.wg.Add(1)
	return true
}

func (t *TCP) untrack(conn net.Conn) {
	t.mu.Lock()
	delete(t.conns, conn)
	t.mu.Unlock()
}

// Stop stops accepting new connections and interrupts already accepted ones.
func (t *TCP) Stop() {
	t.mu.Lock()
	t.stop.Store(true)
	for conn := range t.conns {
		_ = conn.Close()
	}
	t.mu.Unlock()

	_ = t.l.Close()
}

func (t *TCP) Close() {
	_ = t.l.Close()
}

func (t *TCP) Wait() {
	t.wg.Wait()
}
