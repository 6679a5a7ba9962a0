package model

import (
	"encoding/hex"

	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type outputJSON struct {
	Value   string `json:"value"`
	Address string `json:"address"`
}

type inputJSON struct {
	PrevTxHash  string `json:"prevTxHash"`
	OutputIndex uint32 `json:"outputIndex"`
	Signature   string `json:"signature,omitempty"`
}

type transactionJSON struct {
	Hash    string       `json:"hash,omitempty"`
	Inputs  []inputJSON  `json:"inputs"`
	Outputs []outputJSON `json:"outputs"`
}

// ParsePublicKey decodes a hex encoded compressed or uncompressed public key.
func ParsePublicKey(s string) (*bec.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("public key is not hex", err)
	}

	pk, err := bec.ParsePubKey(b)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid public key", err)
	}

	return pk, nil
}

func (o *Output) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.toJSON())
}

func (o *Output) UnmarshalJSON(data []byte) error {
	var oj outputJSON
	if err := json.Unmarshal(data, &oj); err != nil {
		return errors.NewInvalidArgumentError("invalid output json", err)
	}

	out, err := oj.toOutput()
	if err != nil {
		return err
	}

	*o = *out

	return nil
}

func (o *Output) toJSON() outputJSON {
	oj := outputJSON{Value: o.Value.String()}
	if o.Address != nil {
		oj.Address = hex.EncodeToString(o.Address.Compressed())
	}

	return oj
}

func (oj outputJSON) toOutput() (*Output, error) {
	value, err := decimal.NewFromString(oj.Value)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("invalid output value %q", oj.Value, err)
	}

	out := &Output{Value: value}

	if oj.Address != "" {
		if out.Address, err = ParsePublicKey(oj.Address); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (tx *Transaction) MarshalJSON() ([]byte, error) {
	tj := transactionJSON{
		Inputs:  make([]inputJSON, 0, len(tx.Inputs)),
		Outputs: make([]outputJSON, 0, len(tx.Outputs)),
	}

	if tx.hash != nil {
		tj.Hash = tx.hash.String()
	}

	for _, input := range tx.Inputs {
		tj.Inputs = append(tj.Inputs, inputJSON{
			PrevTxHash:  input.PrevTxHash.String(),
			OutputIndex: input.OutputIndex,
			Signature:   hex.EncodeToString(input.Signature),
		})
	}

	for _, output := range tx.Outputs {
		tj.Outputs = append(tj.Outputs, output.toJSON())
	}

	return json.Marshal(tj)
}

// UnmarshalJSON decodes and finalizes the transaction. A hash present in the document must match
// the computed identity.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var tj transactionJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return errors.NewInvalidArgumentError("invalid transaction json", err)
	}

	decoded := NewTransaction()

	for i, ij := range tj.Inputs {
		prevTxHash, err := chainhash.NewHashFromStr(ij.PrevTxHash)
		if err != nil {
			return errors.NewInvalidArgumentError("input %d has invalid prevTxHash", i, err)
		}

		signature, err := hex.DecodeString(ij.Signature)
		if err != nil {
			return errors.NewInvalidArgumentError("input %d has invalid signature hex", i, err)
		}

		decoded.Inputs = append(decoded.Inputs, &Input{
			PrevTxHash:  *prevTxHash,
			OutputIndex: ij.OutputIndex,
			Signature:   signature,
		})
	}

	for _, oj := range tj.Outputs {
		out, err := oj.toOutput()
		if err != nil {
			return err
		}

		decoded.Outputs = append(decoded.Outputs, out)
	}

	hash := decoded.Finalize()
	if tj.Hash != "" && tj.Hash != hash.String() {
		return errors.NewInvalidArgumentError("transaction hash %s does not match computed hash %s", tj.Hash, hash)
	}

	*tx = *decoded

	return nil
}
