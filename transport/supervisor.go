package transport

import (
	"net"
	"sync"
)

// Supervisor runs a group of transports, stopping all of them as soon as any fails.
type Supervisor struct {
	ts     []boundTransport
	once   *sync.Once
	stopch chan struct{}
	done   chan struct{}
}

func NewSupervisor() Supervisor {
	return Supervisor{
		once:   new(sync.Once),
		stopch: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Add binds the transport to the address. In case of failure, all the already bound
// transports are closed.
func (s *Supervisor) Add(addr string, transport Transport, cb func(net.Conn)) error {
	err := transport.Bind(addr)
	if err != nil {
		s.close()
		return err
	}

	s.ts = append(s.ts, boundTransport{
		cb: cb,
		t:  transport,
	})

	return nil
}

// Run blocks until either Stop is called or one of transports fails. Returned error is
// the one, the failed transport returned.
func (s *Supervisor) Run() error {
	defer close(s.done)

	if len(s.ts) == 0 {
		return nil
	}

	errch := make(chan error)

	for _, t := range s.ts {
		go func(t boundTransport) {
			errch <- t.t.Listen(t.cb)
		}(t)
	}

	select {
	case err := <-errch:
		s.stop()
		drain(errch, len(s.ts)-1)

		return err
	case <-s.stopch:
		s.stop()
		drain(errch, len(s.ts))

		return nil
	}
}

// Stop gracefully stops all the transports and blocks until Run returns. Must be called
// only once Run is invoked.
func (s *Supervisor) Stop() {
	s.once.Do(func() {
		close(s.stopch)
	})
	<-s.done
}

func (s *Supervisor) stop() {
	for _, t := range s.ts {
		t.t.Stop()
	}

	for _, t := range s.ts {
		t.t.Wait()
		t.t.Close()
	}
}

func (s *Supervisor) close() {
	for _, t := range s.ts {
		t.t.Close()
	}
}

type boundTransport struct {
	cb func(conn net.Conn)
	t  Transport
}

func drain(ch <-chan error, n int) {
	for range n {
		<-ch
	}
}
