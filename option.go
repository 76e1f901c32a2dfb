package inputparser

import (
	"time"

	"github.com/tedchain/inputparser/logger"
	"github.com/tedchain/inputparser/metrics"
	"github.com/tedchain/inputparser/paymentrequest"
	"github.com/tedchain/inputparser/types"
)

type Option func(*Parser)

func WithLogger(l logger.Logger) Option {
	return func(p *Parser) {
		p.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(p *Parser) {
		p.metrics = r
	}
}

// WithVerifier replaces the system-root X.509 verifier used for signed
// payment requests.
func WithVerifier(v paymentrequest.PKIVerifier) Option {
	return func(p *Parser) {
		p.verifier = v
	}
}

// WithNetwork overrides the configured network.
func WithNetwork(n types.Network) Option {
	return func(p *Parser) {
		p.network = n
	}
}

// WithClock sets the time source for payment request expiry and certificate
// validity.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

func WithMaxPaymentRequestSize(n int) Option {
	return func(p *Parser) {
		p.maxSize = n
	}
}

func withBufferPool(b bufferPool) Option {
	return func(p *Parser) {
		p.buffers = b
	}
}
