package types

// Network identifies a supported tedcoin network.
type Network string

const (
	NetworkMain Network = "main"
	NetworkTest Network = "test"
)

const (
	// CoinDecimals is the number of fractional digits of one coin.
	CoinDecimals = 8

	// Coin is the number of smallest units in one coin.
	Coin int64 = 100000000

	// MaxMoney bounds any single amount or output total.
	MaxMoney int64 = 2000000000 * Coin
)

const (
	MimeTypePaymentRequest = "application/tedcoin-paymentrequest" // BIP 71
	MimeTypeTransaction    = "application/x-tedtx"
)

// NetworkParams holds the constants a grammar needs to decide whether a
// payload belongs to a network.
type NetworkParams struct {
	Network Network

	// ID is the payment protocol network name ("main" or "test").
	ID string

	// URIScheme is the payment URI scheme without the colon.
	URIScheme string

	AddressHeader          byte
	P2SHHeader             byte
	DumpedPrivateKeyHeader byte

	// DumpedPrivateKeyPrefix is the leading character of an uncompressed
	// dumped private key on this network.
	DumpedPrivateKeyPrefix string

	// TxHasTimestamp reports whether serialized transactions carry a 32-bit
	// timestamp after the version field.
	TxHasTimestamp bool

	MimeTypeTransaction    string
	MimeTypePaymentRequest string
}

var (
	MainNetParams = &NetworkParams{
		Network:                NetworkMain,
		ID:                     "main",
		URIScheme:              "ppcoin",
		AddressHeader:          55,
		P2SHHeader:             117,
		DumpedPrivateKeyHeader: 183,
		DumpedPrivateKeyPrefix: "7",
		TxHasTimestamp:         true,
		MimeTypeTransaction:    MimeTypeTransaction,
		MimeTypePaymentRequest: MimeTypePaymentRequest,
	}

	TestNetParams = &NetworkParams{
		Network:                NetworkTest,
		ID:                     "test",
		URIScheme:              "ppcoin",
		AddressHeader:          111,
		P2SHHeader:             196,
		DumpedPrivateKeyHeader: 239,
		DumpedPrivateKeyPrefix: "9",
		TxHasTimestamp:         true,
		MimeTypeTransaction:    MimeTypeTransaction,
		MimeTypePaymentRequest: MimeTypePaymentRequest,
	}
)

// KnownNetworks lists every network an address may be recognized against.
func KnownNetworks() []*NetworkParams {
	return []*NetworkParams{MainNetParams, TestNetParams}
}

// ParamsFor returns the parameters for a network name.
func ParamsFor(n Network) (*NetworkParams, bool) {
	for _, p := range KnownNetworks() {
		if p.Network == n {
			return p, true
		}
	}
	return nil, false
}

// ParamsForPaymentProtocolID resolves the network named inside a payment request.
func ParamsForPaymentProtocolID(id string) (*NetworkParams, bool) {
	for _, p := range KnownNetworks() {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (p *NetworkParams) String() string {
	if p == nil {
		return "<nil>"
	}
	return string(p.Network)
}

// Helper functions for network classification
func (n Network) IsTestnet() bool {
	return n == NetworkTest
}

func (n Network) String() string {
	return string(n)
}
