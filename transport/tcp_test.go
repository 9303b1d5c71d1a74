package transport

import (
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/stretchr/testify/require"
)

func listenAsync(t *testing.T, tcp *TCP, cb func(net.Conn)) chan error {
	errch := make(chan error, 1)
	go func() {
		errch <- tcp.Listen(cb)
	}()

	return errch
}

func TestTCP(t *testing.T) {
	t.Run("echo and stop", func(t *testing.T) {
		tcp := NewTCP(config.Default().NET)
		require.NoError(t, tcp.Bind("127.0.0.1:0"))
		errch := listenAsync(t, tcp, func(conn net.Conn) {
			_, _ = io.Copy(conn, conn)
		})

		conn, err := net.Dial("tcp", tcp.Addr().String())
		require.NoError(t, err)
		_, err = conn.Write([]byte("ping"))
		require.NoError(t, err)
		buff := make([]byte, 4)
		_, err = io.ReadFull(conn, buff)
		require.NoError(t, err)
		require.Equal(t, "ping", string(buff))

		// the connection is still open, so stopping must interrupt it
		tcp.Stop()
		tcp.Wait()
		require.NoError(t, <-errch)

		_, err = conn.Read(buff)
		require.Error(t, err)
	})

	t.Run("connections limit", func(t *testing.T) {
		cfg := config.Default().NET
		cfg.MaxConnections = 1
		tcp := NewTCP(cfg)
		require.NoError(t, tcp.Bind("127.0.0.1:0"))

		served := new(atomic.Int32)
		release := make(chan struct{})
		errch := listenAsync(t, tcp, func(conn net.Conn) {
			served.Add(1)
			<-release
		})

		first, err := net.Dial("tcp", tcp.Addr().String())
		require.NoError(t, err)
		defer first.Close()
		second, err := net.Dial("tcp", tcp.Addr().String())
		require.NoError(t, err)
		defer second.Close()

		require.Eventually(t, func() bool {
			return served.Load() == 1
		}, time.Second, 5*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		require.Equal(t, int32(1), served.Load())

		release <- struct{}{}
		require.Eventually(t, func() bool {
			return served.Load() == 2
		}, time.Second, 5*time.Millisecond)

		close(release)
		tcp.Stop()
		tcp.Wait()
		require.NoError(t, <-errch)
	})

	t.Run("bad address", func(t *testing.T) {
		tcp := NewTCP(config.Default().NET)
		require.Error(t, tcp.Bind("127.0.0.1:-1"))
	})
}
