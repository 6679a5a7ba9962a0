package model

import (
	"bytes"
	"fmt"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// UTXO identifies a spendable output by the hash of the transaction that created it and the
// position of the output in that transaction. It is a value type and can be used as a map key.
type UTXO struct {
	Hash  chainhash.Hash
	Index uint32
}

func NewUTXO(hash chainhash.Hash, index uint32) UTXO {
	return UTXO{Hash: hash, Index: index}
}

func (u UTXO) String() string {
	return fmt.Sprintf("%s:%d", u.Hash.String(), u.Index)
}

func (u UTXO) Bytes() []byte {
	b := make([]byte, 0, chainhash.HashSize+5)
	b = append(b, u.Hash.CloneBytes()...)
	b = append(b, bt.VarInt(u.Index).Bytes()...)

	return b
}

// Less orders by hash bytes, then by index.
func (u UTXO) Less(other UTXO) bool {
	if c := bytes.Compare(u.Hash[:], other.Hash[:]); c != 0 {
		return c < 0
	}

	return u.Index < other.Index
}
