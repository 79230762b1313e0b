package rtspserver

import (
	"errors"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oddity-ai/oddity-rtsp/internal/runtime"
	"github.com/oddity-ai/oddity-rtsp/pkg/base"
	"github.com/oddity-ai/oddity-rtsp/pkg/conn"
)

// writeQueueCapacity bounds the Connection's output channel (spec §4.5:
// "Backpressure on the writer is bounded by the channel capacity; exceeding
// it drops the connection").
const writeQueueCapacity = 256

// Connection owns one client TCP socket. It splits the socket into a
// reader loop (decode requests, dispatch to Handler, enqueue the response)
// and a writer loop (drain the output channel, serialize onto the socket),
// so a slow writer never blocks parsing (spec §4.5, §5). Grounded on
// gortsplib's server_conn.go/server_conn_reader.go reader/writer split,
// simplified to this spec's single shared output channel instead of
// gortsplib's per-feature dispatch.
type Connection struct {
	id   string
	sock net.Conn
	ctx  *SharedContext

	writeCh chan *base.ResponseOrInterleaved
	stopCh  chan struct{}
}

// NewConnection wraps sock. Call Serve to run it. Each Connection gets a
// UUID so its log lines can be correlated across the reader/writer split,
// the same role gortsplib's server_session.go gives its secretID.
func NewConnection(sock net.Conn, ctx *SharedContext) *Connection {
	return &Connection{
		id:      uuid.NewString(),
		sock:    sock,
		ctx:     ctx,
		writeCh: make(chan *base.ResponseOrInterleaved, writeQueueCapacity),
		stopCh:  make(chan struct{}),
	}
}

// Serve spawns the reader and writer tasks through rt and blocks until both
// have exited, then closes the socket. Dropping the Connection this way
// joins both tasks (spec §4.5: "Dropping the Connection joins both
// tasks").
func (c *Connection) Serve(rt *runtime.Runtime) {
	readerDone := make(chan struct{})
	writerDone := make(chan struct{})

	rt.Spawn(func(tc *runtime.TaskContext) {
		defer close(readerDone)
		c.runReader(tc)
	})
	rt.Spawn(func(tc *runtime.TaskContext) {
		defer close(writerDone)
		c.runWriter(tc)
	})

	select {
	case <-readerDone:
	case <-writerDone:
	}
	// Shutdown of one half signals the other via the shared cancellation
	// token and by shutting the socket (spec §4.5).
	close(c.stopCh)
	c.sock.Close()
	<-readerDone
	<-writerDone
}

func (c *Connection) runReader(tc *runtime.TaskContext) {
	cr := conn.NewReader(c.sock)
	for {
		req, _, err := cr.ReadMessage()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Debug().Err(err).Str("conn", c.id).Msg("connection: read error, closing")
			}
			return
		}
		if req == nil {
			// A bare interleaved frame from the client is not valid RTSP
			// input; this server never expects one on its receive side.
			continue
		}

		res := HandleRequest(req, c.ctx, c.writeCh)
		select {
		case c.writeCh <- &base.ResponseOrInterleaved{Response: res}:
		case <-c.stopCh:
			return
		case <-tc.Done():
			return
		default:
			log.Warn().Str("conn", c.id).Msg("connection: write queue full, dropping connection")
			return
		}
	}
}

func (c *Connection) runWriter(tc *runtime.TaskContext) {
	cw := conn.NewWriter(c.sock)
	for {
		select {
		case msg := <-c.writeCh:
			if err := cw.WriteMessage(msg); err != nil {
				log.Debug().Err(err).Str("conn", c.id).Msg("connection: write error, closing")
				return
			}
		case <-c.stopCh:
			return
		case <-tc.Done():
			return
		}
	}
}
