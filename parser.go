// Package inputparser classifies user-supplied payment input (typed or
// scanned text, raw bytes with a MIME type, or a byte stream) and resolves it
// into a payment intent, a dumped private key, a raw transaction, or a
// structured failure.
package inputparser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/tedchain/inputparser/logger"
	"github.com/tedchain/inputparser/metrics"
	"github.com/tedchain/inputparser/paymentrequest"
	"github.com/tedchain/inputparser/types"
	"github.com/tedchain/inputparser/utils"
	"github.com/tedchain/inputparser/verification"
)

// Parser is the entry point for all three input fronts. It holds only
// immutable configuration and is safe for concurrent use.
type Parser struct {
	config  *types.ParserConfig
	params  *types.NetworkParams
	network types.Network

	logger   logger.Logger
	metrics  metrics.Recorder
	verifier paymentrequest.PKIVerifier
	now      func() time.Time
	maxSize  int
	buffers  bufferPool

	requests *paymentrequest.Parser
	rules    []textRule

	addressPattern *regexp.Regexp
	keyPattern     *regexp.Regexp
}

// New creates a parser for the configured network.
func New(config *types.ParserConfig, opts ...Option) (*Parser, error) {
	if config == nil {
		config = types.DefaultParserConfig()
	}

	p := &Parser{
		config:  config,
		network: config.Network,
		maxSize: config.MaxPaymentRequestSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	params, ok := types.ParamsFor(p.network)
	if !ok {
		return nil, fmt.Errorf("unsupported network: %q", p.network)
	}
	p.params = params

	if p.logger == nil {
		if config.LogLevel != "" {
			p.logger = logger.NewZapLogger(config.LogLevel)
		} else {
			p.logger = logger.NoopLogger{}
		}
	}

	if p.metrics == nil {
		if config.EnableMetrics {
			rec, err := metrics.NewPrometheusRecorder(nil)
			if err != nil {
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}
			p.metrics = rec
		} else {
			p.metrics = metrics.NoopRecorder{}
		}
	}

	if p.verifier == nil {
		v, err := verification.NewSystemVerifier(verification.WithClock(p.now))
		if err != nil {
			p.logger.Warn("no system roots, signed payment requests will be unverifiable", map[string]any{
				"error": err,
			})
		} else {
			p.verifier = v
		}
	}

	if p.buffers == nil {
		p.buffers = newSyncBufferPool(config.StreamChunkSize)
	}

	p.requests = paymentrequest.NewParser(params, p.verifier, p.maxSize, p.now)
	p.addressPattern = regexp.MustCompile(`^[` + utils.Base58Alphabet + `]{20,40}$`)
	p.keyPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(params.DumpedPrivateKeyPrefix) + `[` + utils.Base58Alphabet + `]{50}$`)
	p.rules = p.textRules()

	return p, nil
}

// NewWithDefaults creates a mainnet parser with default configuration.
func NewWithDefaults() *Parser {
	p, err := New(types.DefaultParserConfig())
	if err != nil {
		panic(err)
	}
	return p
}

// Network returns the parameters of the network the parser accepts.
func (p *Parser) Network() *types.NetworkParams {
	return p.params
}

// Parse dispatches input to the matching front. sink must implement the
// front's sink interface; otherwise ErrUnsupportedOperation is returned and
// nothing is delivered. The returned error never reflects the parse outcome,
// which always goes to the sink.
func (p *Parser) Parse(ctx context.Context, input types.RawInput, sink ErrorHandler) error {
	switch input.Front {
	case types.FrontText:
		s, ok := sink.(TextSink)
		if !ok {
			return fmt.Errorf("%w: text input needs a TextSink", ErrUnsupportedOperation)
		}
		p.ParseText(input.Text, s)
	case types.FrontBinary:
		s, ok := sink.(BinarySink)
		if !ok {
			return fmt.Errorf("%w: binary input needs a BinarySink", ErrUnsupportedOperation)
		}
		p.ParseBytes(input.MimeType, input.Data, s)
	case types.FrontStream:
		s, ok := sink.(StreamSink)
		if !ok {
			return fmt.Errorf("%w: stream input needs a StreamSink", ErrUnsupportedOperation)
		}
		p.ParseStream(ctx, input.MimeType, input.Stream, s)
	default:
		return fmt.Errorf("unknown input front %q", input.Front)
	}
	return nil
}

// ParseText classifies text and delivers exactly one terminal to sink.
func (p *Parser) ParseText(text string, sink TextSink) {
	inv := p.begin(types.FrontText)
	p.deliver(inv, sink, p.finish(inv, p.resolveText(inv, text)))
}

// ParseBytes classifies data by its declared MIME type and delivers exactly
// one terminal to sink.
func (p *Parser) ParseBytes(mimeType string, data []byte, sink BinarySink) {
	inv := p.begin(types.FrontBinary)
	p.deliver(inv, sink, p.finish(inv, p.resolveBytes(inv, mimeType, data)))
}

// ParseStream reads a payment request from stream and delivers exactly one
// terminal to sink. The stream is always closed.
func (p *Parser) ParseStream(ctx context.Context, mimeType string, stream io.ReadCloser, sink StreamSink) {
	inv := p.begin(types.FrontStream)
	p.deliver(inv, sink, p.finish(inv, p.resolveStream(ctx, inv, mimeType, stream)))
}

// ResolveText returns the result ParseText would deliver. Private keys are
// returned as such.
func (p *Parser) ResolveText(text string) *Result {
	inv := p.begin(types.FrontText)
	return p.finish(inv, p.resolveText(inv, text))
}

// ResolveBytes returns the result ParseBytes would deliver.
func (p *Parser) ResolveBytes(mimeType string, data []byte) *Result {
	inv := p.begin(types.FrontBinary)
	return p.finish(inv, p.resolveBytes(inv, mimeType, data))
}

// ResolveStream returns the result ParseStream would deliver. The stream is
// always closed.
func (p *Parser) ResolveStream(ctx context.Context, mimeType string, stream io.ReadCloser) *Result {
	inv := p.begin(types.FrontStream)
	return p.finish(inv, p.resolveStream(ctx, inv, mimeType, stream))
}

// invocation carries per-call logging context.
type invocation struct {
	front types.Front
	log   logger.Logger
	start time.Time
}

func (p *Parser) begin(front types.Front) *invocation {
	return &invocation{
		front: front,
		log: logger.With(p.logger, map[string]any{
			"invocation": uuid.NewString(),
			"front":      front.String(),
		}),
		start: time.Now(),
	}
}

func (p *Parser) finish(inv *invocation, res *Result) *Result {
	labels := map[string]string{"front": inv.front.String()}
	p.metrics.ObserveLatency(metrics.OperationClassify, time.Since(inv.start), labels)

	if res.Err != nil {
		labels["kind"] = string(res.Err.Kind)
		p.metrics.IncCounter(metrics.EventFailed, labels)
		inv.log.Info("input rejected", map[string]any{
			"kind":  string(res.Err.Kind),
			"error": res.Err.Message,
		})
		return res
	}

	labels["kind"] = string(res.Kind())
	p.metrics.IncCounter(metrics.EventClassified, labels)
	fields := map[string]any{"result": string(res.Kind())}
	if res.Intent != nil {
		fields["intent"] = string(res.Intent.Kind)
		fields["outputs"] = len(res.Intent.Outputs)
	}
	inv.log.Debug("input classified", fields)
	return res
}

func (p *Parser) deliver(inv *invocation, sink ErrorHandler, res *Result) {
	if err := route(inv.front, sink, res); err != nil {
		inv.log.Error("result not delivered", map[string]any{"error": err})
	}
}

// validIntent checks intent invariants before delivery.
func validIntent(intent *types.PaymentIntent, kind types.ErrorKind, input string) *Result {
	if err := utils.ValidatePaymentIntent(intent); err != nil {
		return errorResult(kind, input, err)
	}
	return intentResult(intent)
}

// paymentRequestResult decodes a serialized payment request.
func (p *Parser) paymentRequestResult(inv *invocation, serialized []byte) *Result {
	intent, err := p.requests.Parse(serialized)
	if err != nil {
		var pkiErr *paymentrequest.PKIError
		if errors.As(err, &pkiErr) {
			return errorResult(types.ErrUnverifiablePaymentRequest, "", err)
		}
		return errorResult(types.ErrInvalidPaymentRequest, "", err)
	}
	inv.log.Debug("payment request decoded", map[string]any{
		"verified": intent.IsVerified(),
		"bytes":    len(serialized),
	})
	return validIntent(intent, types.ErrInvalidPaymentRequest, "")
}
