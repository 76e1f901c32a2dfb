package types

import (
	"io"
	"time"
)

// Front names the input shape a parse started from.
type Front string

const (
	FrontText   Front = "text"
	FrontBinary Front = "binary"
	FrontStream Front = "stream"
)

func (f Front) String() string {
	return string(f)
}

// RawInput is one of Text, TypedBytes or TypedStream. It is owned by the
// parse invocation it is handed to.
type RawInput struct {
	Front Front

	// Text is set for FrontText.
	Text string

	// MimeType is the caller-declared content type for FrontBinary and FrontStream.
	MimeType string

	// Data is set for FrontBinary.
	Data []byte

	// Stream is set for FrontStream. The parser closes it.
	Stream io.ReadCloser
}

// TextInput wraps typed or scanned text.
func TextInput(text string) RawInput {
	return RawInput{Front: FrontText, Text: text}
}

// BytesInput wraps raw bytes with a declared MIME type.
func BytesInput(mimeType string, data []byte) RawInput {
	return RawInput{Front: FrontBinary, MimeType: mimeType, Data: data}
}

// StreamInput wraps a byte stream with a declared MIME type.
func StreamInput(mimeType string, stream io.ReadCloser) RawInput {
	return RawInput{Front: FrontStream, MimeType: mimeType, Stream: stream}
}

// IntentKind classifies a PaymentIntent.
type IntentKind string

const (
	IntentAddress        IntentKind = "address"
	IntentAddressAmount  IntentKind = "address_amount"
	IntentPaymentRequest IntentKind = "payment_request"
)

// Standard names the protocol an intent was derived from.
type Standard string

const (
	StandardBIP21 Standard = "BIP21"
	StandardBIP70 Standard = "BIP70"
)

// Output is one payee output of an intent. Amount is in the smallest unit.
type Output struct {
	Amount int64  `json:"amount" validate:"gte=0"`
	Script []byte `json:"script" validate:"required"`

	// Address is the encoded address of Script when it is a standard
	// pay-to-pubkey-hash or pay-to-script-hash script.
	Address string `json:"address,omitempty"`
}

// Payee is the signer identity of a verified payment request.
type Payee struct {
	// Name is the display name taken from the signing certificate.
	Name string `json:"name" validate:"required"`

	Organization string `json:"organization,omitempty"`

	// VerifiedBy is the display name of the trusted root authority.
	VerifiedBy string `json:"verifiedBy,omitempty"`
}

// PaymentIntent is the normalized target of a payment.
type PaymentIntent struct {
	Kind     IntentKind `json:"kind" validate:"required,oneof=address address_amount payment_request"`
	Standard Standard   `json:"standard" validate:"required,oneof=BIP21 BIP70"`
	Network  Network    `json:"network" validate:"required"`

	// Address, Label, Message and Amount are set for BIP21 intents.
	Address string `json:"address,omitempty" validate:"required_unless=Kind payment_request"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message,omitempty"`
	Amount  int64  `json:"amount,omitempty" validate:"gte=0"`

	Outputs []Output `json:"outputs" validate:"required,min=1,dive"`

	// The remaining fields are set for BIP70 intents.
	Memo               string     `json:"memo,omitempty"`
	PaymentURL         string     `json:"paymentUrl,omitempty" validate:"omitempty,url"`
	MerchantData       []byte     `json:"merchantData,omitempty"`
	PaymentRequestHash []byte     `json:"paymentRequestHash,omitempty"`
	Payee              *Payee     `json:"payee,omitempty"`
	Expires            *time.Time `json:"expires,omitempty"`
}

// HasAmount reports whether the intent names an amount.
func (p *PaymentIntent) HasAmount() bool {
	if p == nil {
		return false
	}
	switch p.Kind {
	case IntentAddressAmount:
		return true
	case IntentPaymentRequest:
		return p.TotalAmount() > 0
	default:
		return false
	}
}

// TotalAmount sums the output amounts.
func (p *PaymentIntent) TotalAmount() int64 {
	var total int64
	for _, o := range p.Outputs {
		total += o.Amount
	}
	return total
}

// IsVerified reports whether the intent came from a payment request with a
// verified signer.
func (p *PaymentIntent) IsVerified() bool {
	return p != nil && p.Payee != nil
}

// ParserConfig contains global configuration for the input parser
type ParserConfig struct {
	Network               Network `json:"network" validate:"required,oneof=main test"`
	LogLevel              string  `json:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`
	EnableMetrics         bool    `json:"enableMetrics,omitempty"`
	MaxPaymentRequestSize int     `json:"maxPaymentRequestSize,omitempty" validate:"gte=0"`
	StreamChunkSize       int     `json:"streamChunkSize,omitempty" validate:"gte=0"`
}

const (
	DefaultMaxPaymentRequestSize = 50000
	DefaultStreamChunkSize       = 4096
)

// DefaultParserConfig returns the mainnet configuration.
func DefaultParserConfig() *ParserConfig {
	return &ParserConfig{
		Network:               NetworkMain,
		LogLevel:              "info",
		MaxPaymentRequestSize: DefaultMaxPaymentRequestSize,
		StreamChunkSize:       DefaultStreamChunkSize,
	}
}
