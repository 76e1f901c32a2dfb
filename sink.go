package inputparser

import (
	"errors"
	"fmt"

	"github.com/tedchain/inputparser/address"
	"github.com/tedchain/inputparser/transaction"
	"github.com/tedchain/inputparser/types"
)

// ErrUnsupportedOperation is returned when a result kind is routed to a
// front that can never produce it.
var ErrUnsupportedOperation = errors.New("unsupported operation for this input front")

type IntentHandler interface {
	OnPaymentIntent(intent *types.PaymentIntent)
}

type TransactionHandler interface {
	OnDirectTransaction(tx *transaction.Transaction)
}

type ErrorHandler interface {
	OnError(err *types.ParseError)
}

// TextSink receives the outcome of ParseText.
type TextSink interface {
	IntentHandler
	TransactionHandler
	ErrorHandler
}

// BinarySink receives the outcome of ParseBytes.
type BinarySink interface {
	IntentHandler
	TransactionHandler
	ErrorHandler
}

// StreamSink receives the outcome of ParseStream. Streams only carry payment
// requests.
type StreamSink interface {
	IntentHandler
	ErrorHandler
}

// PrivateKeyHandler is implemented by text sinks that want dumped private
// keys. Without it a key is delivered as an address intent for its address.
type PrivateKeyHandler interface {
	OnPrivateKey(key *address.PrivateKey)
}

// Unclassifier is implemented by sinks that handle unrecognized input
// themselves instead of receiving an UNCLASSIFIABLE error.
type Unclassifier interface {
	CannotClassify(input string)
}

// allowed lists the result kinds each front may deliver.
var allowed = map[types.Front]map[ResultKind]bool{
	types.FrontText: {
		ResultPaymentIntent:     true,
		ResultPrivateKey:        true,
		ResultDirectTransaction: true,
		ResultError:             true,
	},
	types.FrontBinary: {
		ResultPaymentIntent:     true,
		ResultDirectTransaction: true,
		ResultError:             true,
	},
	types.FrontStream: {
		ResultPaymentIntent: true,
		ResultError:         true,
	},
}

// route hands res to exactly one terminal of sink.
func route(front types.Front, sink ErrorHandler, res *Result) error {
	kind := res.Kind()
	if !allowed[front][kind] {
		return fmt.Errorf("%w: %s result on %s front", ErrUnsupportedOperation, kind, front)
	}

	switch kind {
	case ResultError:
		if res.Err.Kind == types.ErrUnclassifiable {
			if u, ok := sink.(Unclassifier); ok {
				u.CannotClassify(res.Err.Input)
				return nil
			}
		}
		sink.OnError(res.Err)
		return nil

	case ResultPrivateKey:
		if h, ok := sink.(PrivateKeyHandler); ok {
			h.OnPrivateKey(res.PrivateKey)
			return nil
		}
		return route(front, sink, intentResult(privateKeyIntent(res.PrivateKey)))

	case ResultDirectTransaction:
		h, ok := sink.(TransactionHandler)
		if !ok {
			return fmt.Errorf("%w: sink cannot take transactions", ErrUnsupportedOperation)
		}
		h.OnDirectTransaction(res.Transaction)
		return nil

	default:
		h, ok := sink.(IntentHandler)
		if !ok {
			return fmt.Errorf("%w: sink cannot take payment intents", ErrUnsupportedOperation)
		}
		h.OnPaymentIntent(res.Intent)
		return nil
	}
}

func privateKeyIntent(key *address.PrivateKey) *types.PaymentIntent {
	return addressIntent(key.Address(), 0, false, "", "")
}

// addressIntent builds a single-output BIP 21 intent paying addr.
func addressIntent(addr *address.Address, amount int64, hasAmount bool, label, message string) *types.PaymentIntent {
	kind := types.IntentAddress
	if hasAmount {
		kind = types.IntentAddressAmount
	}
	return &types.PaymentIntent{
		Kind:     kind,
		Standard: types.StandardBIP21,
		Network:  addr.Params.Network,
		Address:  addr.String(),
		Label:    label,
		Message:  message,
		Amount:   amount,
		Outputs: []types.Output{{
			Amount:  amount,
			Script:  addr.ScriptPubKey(),
			Address: addr.String(),
		}},
	}
}
