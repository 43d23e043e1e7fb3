// Package textserver implements the persistent line-oriented text-embedding
// server. It reads newline-delimited JSON requests, invokes the encoder, and
// writes one correlated JSON response per request. A failing request never
// terminates the loop; only end-of-input does.
package textserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/papercomputeco/lenscap/pkg/encoder"
	"github.com/papercomputeco/lenscap/pkg/utils"
)

const (
	// initialBufSize is the scanner's starting line buffer.
	initialBufSize = 64 * 1024

	// maxLineSize bounds a single request line.
	maxLineSize = 10 * 1024 * 1024
)

// Request is one line of input. ID is an opaque correlation token echoed
// back unchanged; it may be any JSON value or absent.
type Request struct {
	ID    json.RawMessage `json:"id"`
	Query string          `json:"q"`
}

// Response is one line of output. Exactly one of Vector or Error is set.
// ID is always emitted, null when the request carried none or could not
// be parsed.
type Response struct {
	ID     json.RawMessage `json:"id"`
	Vector []float32       `json:"vector,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Server is the single-threaded request/response loop.
type Server struct {
	enc    encoder.Encoder
	logger *zap.Logger
}

// New creates a Server around the given encoder.
func New(enc encoder.Encoder, logger *zap.Logger) *Server {
	return &Server{
		enc:    enc,
		logger: logger,
	}
}

// Run reads requests from in until end-of-input, writing one response line
// per non-blank request to out. Each response line is flushed before the
// next read, so a waiting caller never observes buffering delay. Requests
// are processed strictly in order, one at a time.
//
// Run returns nil on clean end-of-input. Per-request failures (malformed
// JSON, empty query, encoding errors) are reported as error-shaped response
// lines and never end the loop; only a write or read failure on the
// underlying streams does.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, initialBufSize), maxLineSize)

	writer := bufio.NewWriter(out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		resp := s.handle(ctx, line)
		if err := writeResponse(writer, resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	s.logger.Debug("input stream closed, exiting")
	return nil
}

// handle turns one non-blank input line into exactly one response.
func (s *Server) handle(ctx context.Context, line string) Response {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.logger.Debug("malformed request line", zap.Error(err))
		return Response{Error: fmt.Sprintf("parse error: %v", err)}
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return Response{ID: req.ID, Error: "empty query"}
	}

	vector, err := s.enc.EncodeText(ctx, query)
	if err != nil {
		s.logger.Debug("encoding failed",
			zap.String("query", utils.Truncate(query, 60)),
			zap.Error(err),
		)
		return Response{ID: req.ID, Error: err.Error()}
	}

	s.logger.Debug("request served",
		zap.String("query", utils.Truncate(query, 60)),
		zap.Int("dims", len(vector)),
	)

	return Response{ID: req.ID, Vector: vector}
}

// writeResponse marshals resp as a single complete line and flushes it.
func writeResponse(w *bufio.Writer, resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
