// Package verification checks the X.509 signature block of BIP 70 payment
// requests.
package verification

import (
	"crypto"
	"crypto/x509"
	"fmt"
	"time"

	"github.com/tedchain/inputparser/paymentrequest"
)

// Option configures an X509Verifier.
type Option func(*X509Verifier)

// WithClock sets the time used to check certificate validity.
func WithClock(now func() time.Time) Option {
	return func(v *X509Verifier) {
		v.now = now
	}
}

// WithIntermediates adds certificates that may complete a chain in addition
// to the ones shipped inside the request.
func WithIntermediates(pool *x509.CertPool) Option {
	return func(v *X509Verifier) {
		v.intermediates = pool
	}
}

// X509Verifier implements paymentrequest.PKIVerifier for the x509+sha256 and
// x509+sha1 PKI types.
type X509Verifier struct {
	roots         *x509.CertPool
	intermediates *x509.CertPool
	now           func() time.Time
}

var _ paymentrequest.PKIVerifier = (*X509Verifier)(nil)

// NewX509Verifier creates a verifier trusting the given roots.
func NewX509Verifier(roots *x509.CertPool, opts ...Option) *X509Verifier {
	v := &X509Verifier{
		roots: roots,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewSystemVerifier creates a verifier trusting the host's root store.
func NewSystemVerifier(opts ...Option) (*X509Verifier, error) {
	roots, err := x509.SystemCertPool()
	if err != nil {
		return nil, fmt.Errorf("failed to load system roots: %w", err)
	}
	return NewX509Verifier(roots, opts...), nil
}

// VerifyPaymentRequest validates the certificate chain carried in pki_data
// and the signature over the request's signed bytes.
func (v *X509Verifier) VerifyPaymentRequest(req *paymentrequest.PaymentRequest) (*paymentrequest.PKIVerificationData, error) {
	var hash crypto.Hash
	switch t := req.PKITypeOrDefault(); t {
	case paymentrequest.PKITypeX509SHA256:
		hash = crypto.SHA256
	case paymentrequest.PKITypeX509SHA1:
		hash = crypto.SHA1
	default:
		return nil, &paymentrequest.Error{Reason: fmt.Sprintf("unsupported pki type %q", t)}
	}

	chain, err := parseChain(req.PKIData)
	if err != nil {
		return nil, err
	}
	leaf := chain[0]

	intermediates := x509.NewCertPool()
	if v.intermediates != nil {
		intermediates = v.intermediates.Clone()
	}
	for _, c := range chain[1:] {
		intermediates.AddCert(c)
	}

	verified, err := leaf.Verify(x509.VerifyOptions{
		Roots:         v.roots,
		Intermediates: intermediates,
		CurrentTime:   v.now(),
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	if err != nil {
		return nil, &paymentrequest.PKIError{Reason: "certificate chain not trusted", Cause: err}
	}

	algo, err := signatureAlgorithm(leaf, hash)
	if err != nil {
		return nil, err
	}
	if err := leaf.CheckSignature(algo, req.SignedBytes(), req.Signature); err != nil {
		return nil, &paymentrequest.PKIError{Reason: "invalid signature", Cause: err}
	}

	name := subjectName(leaf)
	if name == "" {
		return nil, &paymentrequest.PKIError{Reason: "signing certificate has no subject name"}
	}

	data := &paymentrequest.PKIVerificationData{DisplayName: name}
	if len(leaf.Subject.Organization) > 0 {
		data.Organization = leaf.Subject.Organization[0]
	}
	if len(verified) > 0 && len(verified[0]) > 0 {
		root := verified[0][len(verified[0])-1]
		data.RootAuthorityName = subjectName(root)
	}
	return data, nil
}

func parseChain(pkiData []byte) ([]*x509.Certificate, error) {
	certs, err := paymentrequest.UnmarshalX509Certificates(pkiData)
	if err != nil {
		return nil, &paymentrequest.Error{Reason: "invalid pki data", Cause: err}
	}
	if len(certs.Certificates) == 0 {
		return nil, &paymentrequest.Error{Reason: "pki data has no certificates"}
	}

	chain := make([]*x509.Certificate, 0, len(certs.Certificates))
	for i, der := range certs.Certificates {
		c, err := x509.ParseCertificate(der)
		if err != nil {
			return nil, &paymentrequest.PKIError{Reason: fmt.Sprintf("invalid certificate %d", i), Cause: err}
		}
		chain = append(chain, c)
	}
	return chain, nil
}

func signatureAlgorithm(leaf *x509.Certificate, hash crypto.Hash) (x509.SignatureAlgorithm, error) {
	switch leaf.PublicKeyAlgorithm {
	case x509.RSA:
		if hash == crypto.SHA1 {
			return x509.SHA1WithRSA, nil
		}
		return x509.SHA256WithRSA, nil
	case x509.ECDSA:
		if hash == crypto.SHA1 {
			return x509.ECDSAWithSHA1, nil
		}
		return x509.ECDSAWithSHA256, nil
	default:
		return x509.UnknownSignatureAlgorithm, &paymentrequest.PKIError{
			Reason: fmt.Sprintf("unsupported public key algorithm %s", leaf.PublicKeyAlgorithm),
		}
	}
}

// subjectName prefers the common name and falls back to the organization.
func subjectName(c *x509.Certificate) string {
	if c.Subject.CommonName != "" {
		return c.Subject.CommonName
	}
	if len(c.Subject.Organization) > 0 {
		return c.Subject.Organization[0]
	}
	return ""
}
