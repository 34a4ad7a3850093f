// Package transport provides bridge connection implementations. The
// in-process pipe is the postMessage analogue used by the simulator to
// connect a host session to an embedded view running in the same
// process.
package transport

import (
	"context"
	"errors"
	"sync"

	"github.com/swapp1990/mcp-apps/pkg/mcpapps/bridge"
)

// ErrPipeClosed is returned by Send and Receive after either end closes.
var ErrPipeClosed = errors.New("transport: pipe closed")

// pipeBuffer bounds in-flight messages per direction so a stalled reader
// backpressures the sender instead of growing without bound.
const pipeBuffer = 16

// PipeConn is one end of an in-process bridge pipe.
type PipeConn struct {
	send chan<- bridge.Message
	recv <-chan bridge.Message

	closed    chan struct{}
	closeOnce *sync.Once
}

// NewPipe creates a connected pair of bridge connections. Messages sent
// on one end are received on the other. Closing either end unblocks both.
func NewPipe() (hostEnd, viewEnd *PipeConn) {
	hostToView := make(chan bridge.Message, pipeBuffer)
	viewToHost := make(chan bridge.Message, pipeBuffer)
	closed := make(chan struct{})
	once := &sync.Once{}

	hostEnd = &PipeConn{
		send:      hostToView,
		recv:      viewToHost,
		closed:    closed,
		closeOnce: once,
	}
	viewEnd = &PipeConn{
		send:      viewToHost,
		recv:      hostToView,
		closed:    closed,
		closeOnce: once,
	}

	return hostEnd, viewEnd
}

// Send implements bridge.Conn.
func (c *PipeConn) Send(ctx context.Context, msg bridge.Message) error {
	select {
	case <-c.closed:
		return ErrPipeClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.closed:
		return ErrPipeClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive implements bridge.Conn.
func (c *PipeConn) Receive(ctx context.Context) (bridge.Message, error) {
	// Drain buffered messages even after close so nothing already sent
	// is lost.
	select {
	case msg := <-c.recv:
		return msg, nil
	default:
	}

	select {
	case msg := <-c.recv:
		return msg, nil
	case <-c.closed:
		return bridge.Message{}, ErrPipeClosed
	case <-ctx.Done():
		return bridge.Message{}, ctx.Err()
	}
}

// Close implements bridge.Conn. Both ends share the close signal, so
// closing one tears down the whole pipe.
func (c *PipeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })

	return nil
}
