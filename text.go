package inputparser

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/tedchain/inputparser/address"
	"github.com/tedchain/inputparser/transaction"
	"github.com/tedchain/inputparser/types"
	"github.com/tedchain/inputparser/uri"
	"github.com/tedchain/inputparser/utils"
)

// transactionPattern matches QR-compacted transactions: Base43 text of at
// least 100 characters.
var transactionPattern = regexp.MustCompile(`^[0-9A-Z$*+\-./:]{100,}$`)

// textRule is one entry of the ordered text grammar. The first rule whose
// match returns true handles the input.
type textRule struct {
	name    string
	match   func(s string) bool
	resolve func(inv *invocation, s string) *Result
}

func (p *Parser) textRules() []textRule {
	return []textRule{
		{name: "payment_request_qr", match: p.isPaymentRequestQR, resolve: p.resolvePaymentRequestQR},
		{name: "uri", match: p.isURI, resolve: p.resolveURI},
		{name: "address", match: p.addressPattern.MatchString, resolve: p.resolveAddress},
		{name: "private_key", match: p.keyPattern.MatchString, resolve: p.resolvePrivateKey},
		{name: "transaction", match: transactionPattern.MatchString, resolve: p.resolveTransactionQR},
	}
}

func (p *Parser) resolveText(inv *invocation, text string) *Result {
	for _, r := range p.rules {
		if !r.match(text) {
			continue
		}
		inv.log.Debug("text rule matched", map[string]any{"rule": r.name, "length": len(text)})
		return r.resolve(inv, text)
	}
	return errorResult(types.ErrUnclassifiable, text, errors.New("cannot classify input"))
}

// isPaymentRequestQR matches "<scheme>:-", a payment request embedded in a
// QR code.
func (p *Parser) isPaymentRequestQR(s string) bool {
	n := len(p.params.URIScheme)
	return uri.HasScheme(s, p.params.URIScheme) && len(s) > n+1 && s[n+1] == '-'
}

func (p *Parser) resolvePaymentRequestQR(inv *invocation, s string) *Result {
	body := s[len(p.params.URIScheme)+2:]
	serialized, err := utils.DecodeBinary(body)
	if err != nil {
		return errorResult(types.ErrIO, "", fmt.Errorf("cannot decode payment request: %w", err))
	}
	return p.paymentRequestResult(inv, serialized)
}

func (p *Parser) isURI(s string) bool {
	return uri.HasScheme(s, p.params.URIScheme)
}

func (p *Parser) resolveURI(_ *invocation, s string) *Result {
	u, err := uri.Parse(p.params.URIScheme, types.KnownNetworks(), s)
	if err != nil {
		return errorResult(types.ErrInvalidURI, s, err)
	}
	if u.Address == nil {
		return errorResult(types.ErrInvalidURI, s, errors.New("missing address"))
	}
	if u.Address.Params != p.params {
		return errorResult(types.ErrInvalidAddress, s,
			fmt.Errorf("address belongs to network %s", u.Address.Params))
	}

	intent := addressIntent(u.Address, u.Amount, u.HasAmount, u.Label, u.Message)
	return validIntent(intent, types.ErrInvalidURI, s)
}

func (p *Parser) resolveAddress(_ *invocation, s string) *Result {
	a, err := address.Decode(p.params, s)
	if err != nil {
		return errorResult(types.ErrInvalidAddress, s, err)
	}
	return validIntent(addressIntent(a, 0, false, "", ""), types.ErrInvalidAddress, s)
}

// resolvePrivateKey never echoes the input: it is secret key material.
func (p *Parser) resolvePrivateKey(_ *invocation, s string) *Result {
	key, err := address.DecodePrivateKey(p.params, s)
	if err != nil {
		return errorResult(types.ErrInvalidAddress, "", err)
	}
	return &Result{PrivateKey: key}
}

func (p *Parser) resolveTransactionQR(_ *invocation, s string) *Result {
	raw, err := utils.DecodeDecompressBinary(s)
	if err != nil {
		return errorResult(types.ErrInvalidTransaction, "", fmt.Errorf("cannot decode transaction payload: %w", err))
	}
	tx, err := transaction.Decode(p.params, raw)
	if err != nil {
		return errorResult(types.ErrInvalidTransaction, "", err)
	}
	return &Result{Transaction: tx}
}
