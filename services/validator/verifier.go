package validator

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/model"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// SignatureVerifier checks that signature authorizes message under pubKey.
type SignatureVerifier interface {
	Verify(pubKey *bec.PublicKey, message []byte, signature []byte) bool
}

// ECDSAVerifier verifies DER encoded secp256k1 signatures over model.MessageDigest(message).
type ECDSAVerifier struct{}

func (ECDSAVerifier) Verify(pubKey *bec.PublicKey, message []byte, signature []byte) bool {
	if pubKey == nil || len(signature) == 0 {
		return false
	}

	sig, err := bec.ParseDERSignature(signature)
	if err != nil {
		return false
	}

	return sig.Verify(model.MessageDigest(message), pubKey)
}

// SignatureVerifierFunc adapts a plain function to SignatureVerifier.
type SignatureVerifierFunc func(pubKey *bec.PublicKey, message []byte, signature []byte) bool

func (f SignatureVerifierFunc) Verify(pubKey *bec.PublicKey, message []byte, signature []byte) bool {
	return f(pubKey, message, signature)
}
