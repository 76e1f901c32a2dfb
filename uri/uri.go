// Package uri parses and builds payment URIs of the form
//
//	ppcoin:<address>[?amount=<coins>][&label=<text>][&message=<text>]
package uri

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tedchain/inputparser/address"
	"github.com/tedchain/inputparser/types"
	"github.com/tedchain/inputparser/utils"
)

const (
	FieldAmount         = "amount"
	FieldLabel          = "label"
	FieldMessage        = "message"
	FieldPaymentRequest = "r"

	requiredPrefix = "req-"
)

// ParseError reports a URI the grammar rejects.
type ParseError struct {
	URI    string
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bad payment URI: %s: %v", e.Reason, e.Cause)
	}
	return "bad payment URI: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Cause }

// URI is a parsed payment URI.
type URI struct {
	// Address is nil when the URI carries only a payment request URL.
	Address *address.Address

	Amount    int64
	HasAmount bool

	Label             string
	Message           string
	PaymentRequestURL string

	// Params holds every other optional parameter.
	Params map[string]string
}

// HasScheme reports whether s starts with scheme followed by a colon,
// ignoring the scheme's case.
func HasScheme(s, scheme string) bool {
	return len(s) > len(scheme) && s[len(scheme)] == ':' && strings.EqualFold(s[:len(scheme)], scheme)
}

// Parse parses s with the given scheme. The address is matched against every
// network in networks; callers check the owning network themselves.
func Parse(scheme string, networks []*types.NetworkParams, s string) (*URI, error) {
	if !HasScheme(s, scheme) {
		return nil, &ParseError{URI: s, Reason: "missing " + scheme + " scheme"}
	}

	rest := strings.TrimPrefix(s[len(scheme)+1:], "//")
	addrPart, query, _ := strings.Cut(rest, "?")

	u := &URI{Params: map[string]string{}}
	if err := u.parseParams(s, query); err != nil {
		return nil, err
	}

	if addrPart != "" {
		addrText, err := url.PathUnescape(addrPart)
		if err != nil {
			return nil, &ParseError{URI: s, Reason: "malformed address", Cause: err}
		}
		a, err := address.DecodeAny(networks, addrText)
		if err != nil {
			return nil, &ParseError{URI: s, Reason: "bad address", Cause: err}
		}
		u.Address = a
	}

	if u.Address == nil && u.PaymentRequestURL == "" {
		return nil, &ParseError{URI: s, Reason: "missing address"}
	}
	return u, nil
}

func (u *URI) parseParams(s, query string) error {
	if query == "" {
		return nil
	}

	seen := map[string]bool{}
	for _, pair := range strings.Split(query, "&") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return &ParseError{URI: s, Reason: fmt.Sprintf("no separator in parameter %q", pair)}
		}
		if name == "" {
			return &ParseError{URI: s, Reason: "empty parameter name"}
		}
		name = strings.ToLower(name)
		if seen[name] {
			return &ParseError{URI: s, Reason: fmt.Sprintf("duplicated parameter %q", name)}
		}
		seen[name] = true

		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return &ParseError{URI: s, Reason: fmt.Sprintf("malformed value for %q", name), Cause: err}
		}

		switch {
		case name == FieldAmount:
			amount, err := utils.ParseCoins(decoded)
			if err != nil {
				return &ParseError{URI: s, Reason: "bad amount", Cause: err}
			}
			u.Amount = amount
			u.HasAmount = true
		case name == FieldLabel:
			u.Label = decoded
		case name == FieldMessage:
			u.Message = decoded
		case name == FieldPaymentRequest:
			u.PaymentRequestURL = decoded
		case strings.HasPrefix(name, requiredPrefix):
			return &ParseError{URI: s, Reason: fmt.Sprintf("unsupported required parameter %q", name)}
		default:
			u.Params[name] = decoded
		}
	}
	return nil
}

// Build renders a payment URI. A nil amount omits the amount parameter.
func Build(scheme string, addr *address.Address, amount *int64, label, message string) string {
	var b strings.Builder
	b.WriteString(scheme)
	b.WriteByte(':')
	if addr != nil {
		b.WriteString(addr.String())
	}

	sep := byte('?')
	add := func(name, value string) {
		b.WriteByte(sep)
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(value)
		sep = '&'
	}

	if amount != nil {
		add(FieldAmount, utils.FormatCoins(*amount))
	}
	if label != "" {
		add(FieldLabel, encode(label))
	}
	if message != "" {
		add(FieldMessage, encode(message))
	}
	return b.String()
}

func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
