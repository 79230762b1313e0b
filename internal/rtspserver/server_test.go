package rtspserver

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestServerOptionsRoundTrip(t *testing.T) {
	ctx, rt := newTestContext(t)
	defer rt.Stop()

	srv, err := NewServer("127.0.0.1:0", ctx, rt)
	require.NoError(t, err)
	defer srv.Close()

	go srv.Serve()

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("OPTIONS * RTSP/1.0\r\nCSeq: 1\r\n\r\n"))
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	require.Contains(t, line, "200")
}

func TestServerCloseStopsAcceptLoop(t *testing.T) {
	ctx, rt := newTestContext(t)
	defer rt.Stop()

	srv, err := NewServer("127.0.0.1:0", ctx, rt)
	require.NoError(t, err)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve() }()

	require.NoError(t, srv.Close())

	select {
	case err := <-serveErr:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after Close")
	}
}

func TestConnectionClosesOnClientDisconnect(t *testing.T) {
	ctx, rt := newTestContext(t)
	defer rt.Stop()

	clientConn, serverConn := net.Pipe()
	c := NewConnection(serverConn, ctx)

	served := make(chan struct{})
	go func() {
		c.Serve(rt)
		close(served)
	}()

	clientConn.Close()

	select {
	case <-served:
	case <-time.After(time.Second):
		t.Fatal("Connection.Serve never returned after client disconnect")
	}
}
