package model

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// MessageDigest is the 32 byte digest that input signatures are computed over.
func MessageDigest(message []byte) []byte {
	return chainhash.HashB(message)
}

// Sign signs the input at index with privKey and stores the DER encoded signature on it.
func Sign(privKey *bec.PrivateKey, tx *Transaction, index int) error {
	message := tx.RawDataToSign(index)
	if message == nil {
		return errors.NewInvalidArgumentError("input index %d out of range [0,%d)", index, len(tx.Inputs))
	}

	signature, err := privKey.Sign(MessageDigest(message))
	if err != nil {
		return errors.NewProcessingError("failed to sign input %d", index, err)
	}

	return tx.AddSignature(signature.Serialize(), index)
}
