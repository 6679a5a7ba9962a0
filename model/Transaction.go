package model

import (
	"github.com/Diffblue-benchmarks/ScroogeCoin/errors"
	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	bec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	"github.com/shopspring/decimal"
)

// Output is a value payable to the holder of the private key behind Address.
type Output struct {
	Value   decimal.Decimal
	Address *bec.PublicKey
}

func NewOutput(value decimal.Decimal, address *bec.PublicKey) *Output {
	return &Output{Value: value, Address: address}
}

// Clone returns a copy that shares no mutable state with o.
func (o *Output) Clone() *Output {
	if o == nil {
		return nil
	}

	// decimal.Decimal is immutable
	clone := &Output{Value: o.Value}

	if o.Address != nil {
		if pk, err := bec.ParsePubKey(o.Address.Compressed()); err == nil {
			clone.Address = pk
		} else {
			clone.Address = o.Address
		}
	}

	return clone
}

func (o *Output) bytes() []byte {
	var b []byte

	// a nil output encodes as an empty value and an empty address
	if o == nil {
		b = append(b, bt.VarInt(0).Bytes()...)
		return append(b, bt.VarInt(0).Bytes()...)
	}

	value := []byte(o.Value.String())
	b = append(b, bt.VarInt(len(value)).Bytes()...)
	b = append(b, value...)

	var address []byte
	if o.Address != nil {
		address = o.Address.Compressed()
	}

	b = append(b, bt.VarInt(len(address)).Bytes()...)
	b = append(b, address...)

	return b
}

// Input claims the output PrevTxHash:OutputIndex. Signature authorizes the claim and covers
// RawDataToSign at this input's position.
type Input struct {
	PrevTxHash  chainhash.Hash
	OutputIndex uint32
	Signature   []byte
}

func (in *Input) UTXO() UTXO {
	return NewUTXO(in.PrevTxHash, in.OutputIndex)
}

func (in *Input) outpointBytes() []byte {
	if in == nil {
		return append(make([]byte, chainhash.HashSize), bt.VarInt(0).Bytes()...)
	}

	var b []byte
	b = append(b, in.PrevTxHash.CloneBytes()...)
	b = append(b, bt.VarInt(in.OutputIndex).Bytes()...)

	return b
}

// Transaction is an ordered list of inputs and outputs. Its identity is only known after
// Finalize. The mutator methods clear it; after editing Inputs or Outputs directly, call Finalize
// again. IsFinalized reports false while the stored identity no longer matches the contents.
type Transaction struct {
	Inputs  []*Input
	Outputs []*Output

	hash *chainhash.Hash
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (tx *Transaction) AddInput(prevTxHash chainhash.Hash, outputIndex uint32) {
	tx.Inputs = append(tx.Inputs, &Input{PrevTxHash: prevTxHash, OutputIndex: outputIndex})
	tx.hash = nil
}

func (tx *Transaction) AddOutput(value decimal.Decimal, address *bec.PublicKey) {
	tx.Outputs = append(tx.Outputs, NewOutput(value, address))
	tx.hash = nil
}

func (tx *Transaction) RemoveInput(index int) error {
	if index < 0 || index >= len(tx.Inputs) {
		return errors.NewInvalidArgumentError("input index %d out of range [0,%d)", index, len(tx.Inputs))
	}

	tx.Inputs = append(tx.Inputs[:index], tx.Inputs[index+1:]...)
	tx.hash = nil

	return nil
}

func (tx *Transaction) AddSignature(signature []byte, index int) error {
	if index < 0 || index >= len(tx.Inputs) {
		return errors.NewInvalidArgumentError("input index %d out of range [0,%d)", index, len(tx.Inputs))
	}

	tx.Inputs[index].Signature = append([]byte(nil), signature...)
	tx.hash = nil

	return nil
}

// RawDataToSign returns the message signed by the input at index: that input's outpoint followed
// by every output. Signatures are never included. Returns nil when index is out of range.
func (tx *Transaction) RawDataToSign(index int) []byte {
	if index < 0 || index >= len(tx.Inputs) {
		return nil
	}

	var b []byte
	b = append(b, bt.VarInt(index).Bytes()...)
	b = append(b, tx.Inputs[index].outpointBytes()...)

	b = append(b, bt.VarInt(len(tx.Outputs)).Bytes()...)
	for _, output := range tx.Outputs {
		b = append(b, output.bytes()...)
	}

	return b
}

// RawTx is the full canonical encoding, signatures included.
func (tx *Transaction) RawTx() []byte {
	var b []byte

	b = append(b, bt.VarInt(len(tx.Inputs)).Bytes()...)
	for _, input := range tx.Inputs {
		var signature []byte
		if input != nil {
			signature = input.Signature
		}

		b = append(b, input.outpointBytes()...)
		b = append(b, bt.VarInt(len(signature)).Bytes()...)
		b = append(b, signature...)
	}

	b = append(b, bt.VarInt(len(tx.Outputs)).Bytes()...)
	for _, output := range tx.Outputs {
		b = append(b, output.bytes()...)
	}

	return b
}

// Finalize computes and stores the transaction identity.
func (tx *Transaction) Finalize() *chainhash.Hash {
	hash := chainhash.DoubleHashH(tx.RawTx())
	tx.hash = &hash

	return tx.hash
}

// Hash returns the identity set by Finalize, or nil.
func (tx *Transaction) Hash() *chainhash.Hash {
	return tx.hash
}

// IsFinalized reports whether the stored identity matches the current contents.
func (tx *Transaction) IsFinalized() bool {
	if tx == nil || tx.hash == nil {
		return false
	}

	current := chainhash.DoubleHashH(tx.RawTx())

	return current.IsEqual(tx.hash)
}

func (tx *Transaction) TotalOutputValue() decimal.Decimal {
	total := decimal.Zero
	for _, output := range tx.Outputs {
		if output != nil {
			total = total.Add(output.Value)
		}
	}

	return total
}

func (tx *Transaction) String() string {
	if tx == nil {
		return "<nil>"
	}

	if tx.hash == nil {
		return "<unfinalized>"
	}

	return tx.hash.String()
}
