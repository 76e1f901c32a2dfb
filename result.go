package inputparser

import (
	"github.com/tedchain/inputparser/address"
	"github.com/tedchain/inputparser/transaction"
	"github.com/tedchain/inputparser/types"
)

// ResultKind names the terminal a Result is delivered to.
type ResultKind string

const (
	ResultPaymentIntent     ResultKind = "payment_intent"
	ResultPrivateKey        ResultKind = "private_key"
	ResultDirectTransaction ResultKind = "direct_transaction"
	ResultError             ResultKind = "error"
)

// Result is the outcome of classifying one input. Exactly one field is set.
type Result struct {
	Intent      *types.PaymentIntent
	PrivateKey  *address.PrivateKey
	Transaction *transaction.Transaction
	Err         *types.ParseError
}

func (r *Result) Kind() ResultKind {
	switch {
	case r.Err != nil:
		return ResultError
	case r.PrivateKey != nil:
		return ResultPrivateKey
	case r.Transaction != nil:
		return ResultDirectTransaction
	default:
		return ResultPaymentIntent
	}
}

func intentResult(intent *types.PaymentIntent) *Result {
	return &Result{Intent: intent}
}

func errorResult(kind types.ErrorKind, input string, cause error) *Result {
	return &Result{Err: types.NewParseError(kind, input, cause)}
}
