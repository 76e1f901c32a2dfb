// Package paymentrequest decodes signed BIP 70 payment requests into payment
// intents.
//
// The protobuf messages are read and written with protowire so that the
// signed bytes can be reproduced field by field.
package paymentrequest

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	PKITypeNone       = "none"
	PKITypeX509SHA256 = "x509+sha256"
	PKITypeX509SHA1   = "x509+sha1"

	// PaymentDetailsVersion is the only supported version.
	PaymentDetailsVersion = 1
)

// PaymentRequest is the signed container.
type PaymentRequest struct {
	PaymentDetailsVersion    uint32
	PKIType                  string
	PKIData                  []byte
	SerializedPaymentDetails []byte
	Signature                []byte

	hasVersion bool
	hasPKIType bool
}

// Version returns the payment details version, defaulting to 1 when absent.
func (r *PaymentRequest) Version() uint32 {
	if !r.hasVersion {
		return PaymentDetailsVersion
	}
	return r.PaymentDetailsVersion
}

// PKITypeOrDefault returns the PKI type, defaulting to "none" when absent.
func (r *PaymentRequest) PKITypeOrDefault() string {
	if !r.hasPKIType {
		return PKITypeNone
	}
	return r.PKIType
}

// SetVersion sets the payment details version as an explicit field.
func (r *PaymentRequest) SetVersion(v uint32) {
	r.PaymentDetailsVersion = v
	r.hasVersion = true
}

// SetPKIType sets the PKI type as an explicit field.
func (r *PaymentRequest) SetPKIType(t string) {
	r.PKIType = t
	r.hasPKIType = true
}

// PaymentDetails is the payload carried in SerializedPaymentDetails.
type PaymentDetails struct {
	Network      string
	Outputs      []Output
	Time         uint64
	Expires      uint64
	Memo         string
	PaymentURL   string
	MerchantData []byte

	hasNetwork bool
}

// NetworkOrDefault returns the network id, defaulting to "main" when absent.
func (d *PaymentDetails) NetworkOrDefault() string {
	if !d.hasNetwork {
		return "main"
	}
	return d.Network
}

// SetNetwork sets the network id as an explicit field.
func (d *PaymentDetails) SetNetwork(n string) {
	d.Network = n
	d.hasNetwork = true
}

// Output is one requested output.
type Output struct {
	Amount uint64
	Script []byte
}

// X509Certificates is the pki_data payload for the x509 PKI types. The
// signing certificate comes first.
type X509Certificates struct {
	Certificates [][]byte
}

// Field numbers
const (
	fieldRequestVersion   protowire.Number = 1
	fieldRequestPKIType   protowire.Number = 2
	fieldRequestPKIData   protowire.Number = 3
	fieldRequestDetails   protowire.Number = 4
	fieldRequestSignature protowire.Number = 5

	fieldDetailsNetwork      protowire.Number = 1
	fieldDetailsOutputs      protowire.Number = 2
	fieldDetailsTime         protowire.Number = 3
	fieldDetailsExpires      protowire.Number = 4
	fieldDetailsMemo         protowire.Number = 5
	fieldDetailsPaymentURL   protowire.Number = 6
	fieldDetailsMerchantData protowire.Number = 7

	fieldOutputAmount protowire.Number = 1
	fieldOutputScript protowire.Number = 2

	fieldCertificate protowire.Number = 1
)

// visitFunc consumes one field value and returns how many bytes it used.
// ok=false leaves the field to be skipped as unknown.
type visitFunc func(num protowire.Number, typ protowire.Type, b []byte) (n int, ok bool)

func consumeFields(b []byte, visit visitFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		m, ok := visit(num, typ, b)
		if !ok {
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return fmt.Errorf("field %d: %w", num, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return nil
}

func consumeBytes(typ protowire.Type, b []byte, dst *[]byte) (int, bool) {
	if typ != protowire.BytesType {
		return 0, false
	}
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		*dst = append(make([]byte, 0, len(v)), v...)
	}
	return n, true
}

func consumeString(typ protowire.Type, b []byte, dst *string) (int, bool) {
	if typ != protowire.BytesType {
		return 0, false
	}
	v, n := protowire.ConsumeBytes(b)
	if n >= 0 {
		*dst = string(v)
	}
	return n, true
}

func consumeVarint(typ protowire.Type, b []byte, dst *uint64) (int, bool) {
	if typ != protowire.VarintType {
		return 0, false
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = v
	}
	return n, true
}

// UnmarshalPaymentRequest decodes the outer container.
func UnmarshalPaymentRequest(b []byte) (*PaymentRequest, error) {
	r := &PaymentRequest{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case fieldRequestVersion:
			var v uint64
			n, ok := consumeVarint(typ, b, &v)
			if ok && n >= 0 {
				r.PaymentDetailsVersion = uint32(v)
				r.hasVersion = true
			}
			return n, ok
		case fieldRequestPKIType:
			n, ok := consumeString(typ, b, &r.PKIType)
			if ok && n >= 0 {
				r.hasPKIType = true
			}
			return n, ok
		case fieldRequestPKIData:
			return consumeBytes(typ, b, &r.PKIData)
		case fieldRequestDetails:
			return consumeBytes(typ, b, &r.SerializedPaymentDetails)
		case fieldRequestSignature:
			return consumeBytes(typ, b, &r.Signature)
		}
		return 0, false
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UnmarshalPaymentDetails decodes the serialized details.
func UnmarshalPaymentDetails(b []byte) (*PaymentDetails, error) {
	d := &PaymentDetails{}
	var outputErr error
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case fieldDetailsNetwork:
			n, ok := consumeString(typ, b, &d.Network)
			if ok && n >= 0 {
				d.hasNetwork = true
			}
			return n, ok
		case fieldDetailsOutputs:
			var raw []byte
			n, ok := consumeBytes(typ, b, &raw)
			if !ok || n < 0 {
				return n, ok
			}
			out, err := unmarshalOutput(raw)
			if err != nil {
				outputErr = fmt.Errorf("output %d: %w", len(d.Outputs), err)
				return -1, true
			}
			d.Outputs = append(d.Outputs, *out)
			return n, true
		case fieldDetailsTime:
			return consumeVarint(typ, b, &d.Time)
		case fieldDetailsExpires:
			return consumeVarint(typ, b, &d.Expires)
		case fieldDetailsMemo:
			return consumeString(typ, b, &d.Memo)
		case fieldDetailsPaymentURL:
			return consumeString(typ, b, &d.PaymentURL)
		case fieldDetailsMerchantData:
			return consumeBytes(typ, b, &d.MerchantData)
		}
		return 0, false
	})
	if outputErr != nil {
		return nil, outputErr
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func unmarshalOutput(b []byte) (*Output, error) {
	o := &Output{}
	hasScript := false
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		switch num {
		case fieldOutputAmount:
			return consumeVarint(typ, b, &o.Amount)
		case fieldOutputScript:
			n, ok := consumeBytes(typ, b, &o.Script)
			if ok && n >= 0 {
				hasScript = true
			}
			return n, ok
		}
		return 0, false
	})
	if err != nil {
		return nil, err
	}
	if !hasScript {
		return nil, fmt.Errorf("output is missing required field script")
	}
	return o, nil
}

// UnmarshalX509Certificates decodes x509 pki_data.
func UnmarshalX509Certificates(b []byte) (*X509Certificates, error) {
	c := &X509Certificates{}
	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, bool) {
		if num != fieldCertificate {
			return 0, false
		}
		var cert []byte
		n, ok := consumeBytes(typ, b, &cert)
		if ok && n >= 0 {
			c.Certificates = append(c.Certificates, cert)
		}
		return n, ok
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal encodes the request with fields in number order.
func (r *PaymentRequest) Marshal() []byte {
	return r.marshal(r.Signature)
}

// SignedBytes returns the encoding covered by the signature: the request
// with an empty signature field.
func (r *PaymentRequest) SignedBytes() []byte {
	return r.marshal([]byte{})
}

func (r *PaymentRequest) marshal(signature []byte) []byte {
	var b []byte
	if r.hasVersion {
		b = protowire.AppendTag(b, fieldRequestVersion, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(r.PaymentDetailsVersion))
	}
	if r.hasPKIType {
		b = protowire.AppendTag(b, fieldRequestPKIType, protowire.BytesType)
		b = protowire.AppendString(b, r.PKIType)
	}
	if r.PKIData != nil {
		b = protowire.AppendTag(b, fieldRequestPKIData, protowire.BytesType)
		b = protowire.AppendBytes(b, r.PKIData)
	}
	if r.SerializedPaymentDetails != nil {
		b = protowire.AppendTag(b, fieldRequestDetails, protowire.BytesType)
		b = protowire.AppendBytes(b, r.SerializedPaymentDetails)
	}
	if signature != nil {
		b = protowire.AppendTag(b, fieldRequestSignature, protowire.BytesType)
		b = protowire.AppendBytes(b, signature)
	}
	return b
}

// Marshal encodes the details with fields in number order.
func (d *PaymentDetails) Marshal() []byte {
	var b []byte
	if d.hasNetwork {
		b = protowire.AppendTag(b, fieldDetailsNetwork, protowire.BytesType)
		b = protowire.AppendString(b, d.Network)
	}
	for _, o := range d.Outputs {
		b = protowire.AppendTag(b, fieldDetailsOutputs, protowire.BytesType)
		b = protowire.AppendBytes(b, o.marshal())
	}
	b = protowire.AppendTag(b, fieldDetailsTime, protowire.VarintType)
	b = protowire.AppendVarint(b, d.Time)
	if d.Expires != 0 {
		b = protowire.AppendTag(b, fieldDetailsExpires, protowire.VarintType)
		b = protowire.AppendVarint(b, d.Expires)
	}
	if d.Memo != "" {
		b = protowire.AppendTag(b, fieldDetailsMemo, protowire.BytesType)
		b = protowire.AppendString(b, d.Memo)
	}
	if d.PaymentURL != "" {
		b = protowire.AppendTag(b, fieldDetailsPaymentURL, protowire.BytesType)
		b = protowire.AppendString(b, d.PaymentURL)
	}
	if d.MerchantData != nil {
		b = protowire.AppendTag(b, fieldDetailsMerchantData, protowire.BytesType)
		b = protowire.AppendBytes(b, d.MerchantData)
	}
	return b
}

func (o Output) marshal() []byte {
	b := protowire.AppendTag(nil, fieldOutputAmount, protowire.VarintType)
	b = protowire.AppendVarint(b, o.Amount)
	b = protowire.AppendTag(b, fieldOutputScript, protowire.BytesType)
	return protowire.AppendBytes(b, o.Script)
}

// Marshal encodes the certificate chain.
func (c *X509Certificates) Marshal() []byte {
	var b []byte
	for _, cert := range c.Certificates {
		b = protowire.AppendTag(b, fieldCertificate, protowire.BytesType)
		b = protowire.AppendBytes(b, cert)
	}
	return b
}
