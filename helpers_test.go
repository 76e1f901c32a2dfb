package inputparser

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tedchain/inputparser/address"
	"github.com/tedchain/inputparser/logger"
	"github.com/tedchain/inputparser/paymentrequest"
	"github.com/tedchain/inputparser/transaction"
	"github.com/tedchain/inputparser/types"
	"github.com/tedchain/inputparser/utils"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// recorder is a text, binary and stream sink that keeps every callback.
type recorder struct {
	intents []*types.PaymentIntent
	txs     []*transaction.Transaction
	errs    []*types.ParseError
}

func (r *recorder) OnPaymentIntent(intent *types.PaymentIntent)     { r.intents = append(r.intents, intent) }
func (r *recorder) OnDirectTransaction(tx *transaction.Transaction) { r.txs = append(r.txs, tx) }
func (r *recorder) OnError(err *types.ParseError)                   { r.errs = append(r.errs, err) }

func (r *recorder) calls() int {
	return len(r.intents) + len(r.txs) + len(r.errs)
}

type keyRecorder struct {
	recorder
	keys []*address.PrivateKey
}

func (r *keyRecorder) OnPrivateKey(key *address.PrivateKey) { r.keys = append(r.keys, key) }

type unclassifiedRecorder struct {
	recorder
	unclassified []string
}

func (r *unclassifiedRecorder) CannotClassify(input string) {
	r.unclassified = append(r.unclassified, input)
}

// streamRecorder only has the stream terminals.
type streamRecorder struct {
	intents []*types.PaymentIntent
	errs    []*types.ParseError
}

func (r *streamRecorder) OnPaymentIntent(intent *types.PaymentIntent) { r.intents = append(r.intents, intent) }
func (r *streamRecorder) OnError(err *types.ParseError)               { r.errs = append(r.errs, err) }

type stubVerifier struct {
	data *paymentrequest.PKIVerificationData
	err  error
}

func (s *stubVerifier) VerifyPaymentRequest(*paymentrequest.PaymentRequest) (*paymentrequest.PKIVerificationData, error) {
	return s.data, s.err
}

type countingRecorder struct {
	mu       sync.Mutex
	counters map[string]int
	latency  int
}

func (c *countingRecorder) IncCounter(name string, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counters == nil {
		c.counters = map[string]int{}
	}
	c.counters[name+"/"+labels["front"]+"/"+labels["kind"]]++
}

func (c *countingRecorder) ObserveLatency(string, time.Duration, map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latency++
}

func newTestParser(t *testing.T, opts ...Option) (*Parser, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	base := []Option{
		WithLogger(logger.NewZapLoggerFrom(zap.New(core))),
		WithVerifier(&stubVerifier{err: &paymentrequest.PKIError{Reason: "untrusted"}}),
		WithClock(clock),
	}
	p, err := New(types.DefaultParserConfig(), append(base, opts...)...)
	require.NoError(t, err)
	return p, logs
}

func testAddress(t *testing.T, params *types.NetworkParams) *address.Address {
	t.Helper()
	a, err := address.FromPubKeyHash(params, bytes.Repeat([]byte{0x42}, 20))
	require.NoError(t, err)
	return a
}

func testKey(t *testing.T) *address.PrivateKey {
	t.Helper()
	k, err := utils.PrivateKeyFromBytes(sha256Bytes("test key"))
	require.NoError(t, err)
	return address.NewPrivateKey(types.MainNetParams, k, false)
}

func sha256Bytes(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func testTransaction(t *testing.T) *transaction.Transaction {
	t.Helper()
	var prev [32]byte
	copy(prev[:], sha256Bytes("previous"))

	// Unique script bytes keep the gzip form from collapsing.
	var scriptSig []byte
	for i := 0; i < 4; i++ {
		scriptSig = append(scriptSig, sha256Bytes(string(rune('a'+i)))...)
	}

	return &transaction.Transaction{
		Params:  types.MainNetParams,
		Version: 1,
		Time:    uint32(fixedNow.Unix()),
		Inputs: []transaction.Input{{
			PreviousOutput: transaction.OutPoint{Hash: prev, Index: 1},
			ScriptSig:      scriptSig,
			Sequence:       0xffffffff,
		}},
		Outputs: []transaction.Output{{
			Value:        5 * types.Coin,
			ScriptPubKey: testAddress(t, types.MainNetParams).ScriptPubKey(),
		}},
	}
}

func gzipped(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(b)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func paymentRequestBytes(t *testing.T, pkiType string, amounts ...uint64) []byte {
	t.Helper()
	d := &paymentrequest.PaymentDetails{
		Time:       uint64(fixedNow.Unix()),
		Memo:       "invoice 7",
		PaymentURL: "https://merchant.example/pay",
	}
	for _, amount := range amounts {
		d.Outputs = append(d.Outputs, paymentrequest.Output{
			Amount: amount,
			Script: testAddress(t, types.MainNetParams).ScriptPubKey(),
		})
	}
	req := &paymentrequest.PaymentRequest{SerializedPaymentDetails: d.Marshal()}
	if pkiType != "" {
		req.SetPKIType(pkiType)
		req.PKIData = (&paymentrequest.X509Certificates{Certificates: [][]byte{{0x30}}}).Marshal()
		req.Signature = []byte("signature")
	}
	return req.Marshal()
}
