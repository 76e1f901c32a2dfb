package paymentrequest

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tedchain/inputparser/address"
	"github.com/tedchain/inputparser/types"
)

// PKIVerificationData describes a verified signer.
type PKIVerificationData struct {
	// DisplayName is the signer's name from the signing certificate.
	DisplayName string

	// Organization is the signer's organization, if the certificate names one.
	Organization string

	// RootAuthorityName names the trusted root the chain ends in.
	RootAuthorityName string
}

// PKIVerifier checks the signature block of a payment request. Verification
// failures, including certificates that cannot be parsed, are returned as
// *PKIError; a structurally malformed pki_data container may be returned as
// *Error. Any other error is treated as a verification failure.
type PKIVerifier interface {
	VerifyPaymentRequest(req *PaymentRequest) (*PKIVerificationData, error)
}

// Parser turns serialized payment requests into payment intents for one
// network.
type Parser struct {
	params   *types.NetworkParams
	verifier PKIVerifier
	maxSize  int
	now      func() time.Time
}

// NewParser creates a parser. A nil verifier makes every signed request
// unverifiable; maxSize <= 0 selects the default limit.
func NewParser(params *types.NetworkParams, verifier PKIVerifier, maxSize int, now func() time.Time) *Parser {
	if maxSize <= 0 {
		maxSize = types.DefaultMaxPaymentRequestSize
	}
	if now == nil {
		now = time.Now
	}
	return &Parser{
		params:   params,
		verifier: verifier,
		maxSize:  maxSize,
		now:      now,
	}
}

// MaxSize returns the largest serialized request the parser accepts.
func (p *Parser) MaxSize() int {
	return p.maxSize
}

// Parse decodes, verifies and normalizes a serialized payment request. The
// returned error is either *Error or *PKIError.
func (p *Parser) Parse(serialized []byte) (*types.PaymentIntent, error) {
	if len(serialized) > p.maxSize {
		return nil, invalid(fmt.Sprintf("payment request too big: %d bytes", len(serialized)), nil)
	}

	req, err := UnmarshalPaymentRequest(serialized)
	if err != nil {
		return nil, invalid("malformed payment request", err)
	}
	if v := req.Version(); v != PaymentDetailsVersion {
		return nil, invalid(fmt.Sprintf("unsupported payment details version %d", v), nil)
	}
	details, err := UnmarshalPaymentDetails(req.SerializedPaymentDetails)
	if err != nil {
		return nil, invalid("malformed payment details", err)
	}

	var payee *types.Payee
	switch pkiType := req.PKITypeOrDefault(); pkiType {
	case PKITypeNone:
	case PKITypeX509SHA256, PKITypeX509SHA1:
		data, err := p.verify(req)
		if err != nil {
			return nil, err
		}
		payee = &types.Payee{
			Name:         data.DisplayName,
			Organization: data.Organization,
			VerifiedBy:   data.RootAuthorityName,
		}
	default:
		return nil, invalid(fmt.Sprintf("unsupported pki type %q", pkiType), nil)
	}

	return p.assemble(serialized, details, payee)
}

func (p *Parser) verify(req *PaymentRequest) (*PKIVerificationData, error) {
	if p.verifier == nil {
		return nil, &PKIError{Reason: "no PKI verifier configured"}
	}

	data, err := p.verifier.VerifyPaymentRequest(req)
	if err != nil {
		var invalidErr *Error
		var pkiErr *PKIError
		switch {
		case errors.As(err, &invalidErr), errors.As(err, &pkiErr):
			return nil, err
		default:
			return nil, &PKIError{Reason: "verification failed", Cause: err}
		}
	}
	if data == nil || data.DisplayName == "" {
		return nil, &PKIError{Reason: "verifier returned no signer identity"}
	}
	return data, nil
}

func (p *Parser) assemble(serialized []byte, details *PaymentDetails, payee *types.Payee) (*types.PaymentIntent, error) {
	network := details.NetworkOrDefault()
	params, ok := types.ParamsForPaymentProtocolID(network)
	if !ok {
		return nil, invalid(fmt.Sprintf("unknown payment request network %q", network), nil)
	}
	if params != p.params {
		return nil, invalid(fmt.Sprintf("cannot handle payment request network: %s", network), nil)
	}

	if len(details.Outputs) == 0 {
		return nil, invalid("payment request has no outputs", nil)
	}

	outputs := make([]types.Output, 0, len(details.Outputs))
	var total uint64
	for i, o := range details.Outputs {
		if o.Amount > uint64(types.MaxMoney) || total+o.Amount > uint64(types.MaxMoney) {
			return nil, invalid(fmt.Sprintf("output %d has a negative or excessive amount", i), nil)
		}
		if len(o.Script) == 0 {
			return nil, invalid(fmt.Sprintf("output %d has an empty script", i), nil)
		}
		total += o.Amount

		out := types.Output{Amount: int64(o.Amount), Script: o.Script}
		if a := address.FromScript(params, o.Script); a != nil {
			out.Address = a.String()
		}
		outputs = append(outputs, out)
	}

	var expires *time.Time
	if details.Expires != 0 {
		t := time.Unix(int64(details.Expires), 0).UTC()
		if p.now().After(t) {
			return nil, invalid(fmt.Sprintf("payment details expired at %s", t.Format(time.RFC3339)), nil)
		}
		expires = &t
	}

	if details.PaymentURL != "" {
		u, err := url.Parse(details.PaymentURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, invalid(fmt.Sprintf("cannot handle payment url: %s", details.PaymentURL), err)
		}
	}

	hash := sha256.Sum256(serialized)
	return &types.PaymentIntent{
		Kind:               types.IntentPaymentRequest,
		Standard:           types.StandardBIP70,
		Network:            params.Network,
		Outputs:            outputs,
		Memo:               details.Memo,
		PaymentURL:         details.PaymentURL,
		MerchantData:       details.MerchantData,
		PaymentRequestHash: hash[:],
		Payee:              payee,
		Expires:            expires,
	}, nil
}
