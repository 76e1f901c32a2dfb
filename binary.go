package inputparser

import (
	"fmt"

	"github.com/tedchain/inputparser/transaction"
	"github.com/tedchain/inputparser/types"
)

// resolveBytes matches the declared MIME type exactly.
func (p *Parser) resolveBytes(inv *invocation, mimeType string, data []byte) *Result {
	switch mimeType {
	case p.params.MimeTypeTransaction:
		tx, err := transaction.Decode(p.params, data)
		if err != nil {
			return errorResult(types.ErrInvalidTransaction, "", err)
		}
		return &Result{Transaction: tx}
	case p.params.MimeTypePaymentRequest:
		return p.paymentRequestResult(inv, data)
	default:
		return errorResult(types.ErrUnclassifiable, mimeType, fmt.Errorf("unsupported content type %q", mimeType))
	}
}
