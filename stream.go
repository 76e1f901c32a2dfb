package inputparser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tedchain/inputparser/types"
)

// bufferPool lends the scratch buffers a stream is drained into.
type bufferPool interface {
	Get() *bytes.Buffer
	Put(b *bytes.Buffer)
}

type syncBufferPool struct {
	pool sync.Pool
}

func newSyncBufferPool(chunk int) *syncBufferPool {
	if chunk <= 0 {
		chunk = types.DefaultStreamChunkSize
	}
	return &syncBufferPool{
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, chunk))
			},
		},
	}
}

func (s *syncBufferPool) Get() *bytes.Buffer {
	b := s.pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func (s *syncBufferPool) Put(b *bytes.Buffer) {
	s.pool.Put(b)
}

// ctxReader fails reads once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func (p *Parser) resolveStream(ctx context.Context, inv *invocation, mimeType string, stream io.ReadCloser) *Result {
	if stream == nil {
		return errorResult(types.ErrIO, "", errors.New("no input stream"))
	}
	defer func() {
		if err := stream.Close(); err != nil {
			inv.log.Warn("failed to close input stream", map[string]any{"error": err})
		}
	}()

	if mimeType != p.params.MimeTypePaymentRequest {
		return errorResult(types.ErrUnclassifiable, mimeType, fmt.Errorf("unsupported content type %q", mimeType))
	}
	if ctx == nil {
		ctx = context.Background()
	}

	buf := p.buffers.Get()
	defer p.buffers.Put(buf)

	// One byte past the limit lets the decoder report the request as too big.
	limit := int64(p.requests.MaxSize()) + 1
	if _, err := buf.ReadFrom(io.LimitReader(&ctxReader{ctx: ctx, r: stream}, limit)); err != nil {
		return errorResult(types.ErrIO, "", fmt.Errorf("failed to read payment request: %w", err))
	}
	return p.paymentRequestResult(inv, buf.Bytes())
}
