// Package pipeline runs the per-connection cooperative loop: read bytes,
// extract frames as they complete, execute commands against the shared
// store, and write replies back in request order.
package pipeline

import (
	"errors"
	"io"
	"net"

	"github.com/google/uuid"

	"github.com/lukluk/rendang/internal/command"
	"github.com/lukluk/rendang/internal/logger"
	"github.com/lukluk/rendang/internal/metrics"
	"github.com/lukluk/rendang/internal/rescue"
	"github.com/lukluk/rendang/internal/resp"
	"github.com/lukluk/rendang/internal/store"
)

const readChunkSize = 4096

// Handle drives conn to completion: EOF with an empty buffer, a write
// error, or a fatal decode error all end the connection. It never returns
// until the connection is done, and it closes conn itself.
func Handle(conn net.Conn, s *store.Store) {
	defer rescue.HandleCrash()
	defer conn.Close()

	id := uuid.NewString()
	metrics.ConnectionsTotal.Inc()
	metrics.ConnectionsActive.Inc()
	defer metrics.ConnectionsActive.Dec()

	logger.Infof("connection %s: accepted from %s", id, conn.RemoteAddr())
	defer logger.Infof("connection %s: closed", id)

	reader := resp.NewFrameReader()
	chunk := make([]byte, readChunkSize)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			reader.Write(chunk[:n])
			if !drainFrames(conn, reader, s, id) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				metrics.ConnectionErrorsTotal.WithLabelValues("read").Inc()
				logger.Warnf("connection %s: read error: %v", id, err)
			}
			return
		}
	}
}

// drainFrames executes every complete frame currently buffered, in arrival
// order, writing one reply per frame. It reports whether the connection
// should stay open.
func drainFrames(conn net.Conn, reader *resp.FrameReader, s *store.Store, id string) bool {
	for {
		frame, err := reader.Next()
		if err != nil {
			if errors.Is(err, resp.ErrNotComplete) {
				return true
			}
			metrics.ConnectionErrorsTotal.WithLabelValues("decode").Inc()
			logger.Warnf("connection %s: fatal decode error: %v", id, err)
			writeReply(conn, resp.SimpleError("ERR "+err.Error()))
			return false
		}

		reply, cmdName := executeFrame(frame, s)
		metrics.CommandsTotal.WithLabelValues(cmdName).Inc()
		if !writeReply(conn, reply) {
			metrics.ConnectionErrorsTotal.WithLabelValues("write").Inc()
			logger.Warnf("connection %s: write error", id)
			return false
		}
	}
}

func executeFrame(frame resp.Frame, s *store.Store) (resp.Frame, string) {
	cmd, err := command.Parse(frame)
	if err != nil {
		return resp.SimpleError("ERR " + err.Error()), "parse_error"
	}
	return cmd.Execute(s), cmd.Name.String()
}

// writeReply encodes frame and flushes it, retrying on partial writes.
func writeReply(conn net.Conn, frame resp.Frame) bool {
	data := resp.Encode(frame)
	for len(data) > 0 {
		n, err := conn.Write(data)
		if err != nil {
			return false
		}
		data = data[n:]
	}
	return true
}
