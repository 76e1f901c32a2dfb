// Package transaction decodes serialized tedcoin transactions.
package transaction

import (
	"encoding/hex"
	"fmt"

	"github.com/tedchain/inputparser/types"
	"github.com/tedchain/inputparser/utils"
)

const (
	// MaxScriptSize bounds any single input or output script.
	MaxScriptSize = 10000

	outPointSize = 36
)

// ProtocolError reports a structural violation of the transaction grammar.
type ProtocolError struct {
	Offset int
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("invalid transaction at offset %d: %s", e.Offset, e.Reason)
}

// OutPoint references an output of a previous transaction.
type OutPoint struct {
	Hash  [32]byte
	Index uint32
}

type Input struct {
	PreviousOutput OutPoint
	ScriptSig      []byte
	Sequence       uint32
}

type Output struct {
	Value        int64
	ScriptPubKey []byte
}

// Transaction is structurally valid per the wire grammar; it is not checked
// against consensus rules.
type Transaction struct {
	Params   *types.NetworkParams
	Version  int32
	Time     uint32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32

	raw []byte
}

// Decode parses a serialized transaction. Trailing bytes are rejected.
func Decode(params *types.NetworkParams, b []byte) (*Transaction, error) {
	r := &reader{buf: b}
	tx := &Transaction{Params: params}

	tx.Version = int32(r.uint32("version"))
	if params.TxHasTimestamp {
		tx.Time = r.uint32("time")
	}

	nIn := r.count("input count", outPointSize+1+4)
	if r.err == nil && nIn > 0 {
		tx.Inputs = make([]Input, 0, nIn)
	}
	for i := uint64(0); r.err == nil && i < nIn; i++ {
		var in Input
		copy(in.PreviousOutput.Hash[:], r.bytes(32, "previous output hash"))
		in.PreviousOutput.Index = r.uint32("previous output index")
		in.ScriptSig = r.script("input script")
		in.Sequence = r.uint32("sequence")
		tx.Inputs = append(tx.Inputs, in)
	}

	nOut := r.count("output count", 8+1)
	if r.err == nil && nOut > 0 {
		tx.Outputs = make([]Output, 0, nOut)
	}
	for i := uint64(0); r.err == nil && i < nOut; i++ {
		var out Output
		offset := r.pos
		out.Value = int64(r.uint64("output value"))
		if r.err == nil && (out.Value < 0 || out.Value > types.MaxMoney) {
			r.fail(offset, fmt.Sprintf("output %d value %d out of range", i, out.Value))
		}
		out.ScriptPubKey = r.script("output script")
		tx.Outputs = append(tx.Outputs, out)
	}

	tx.LockTime = r.uint32("lock time")

	if r.err != nil {
		return nil, r.err
	}
	if r.pos != len(b) {
		return nil, &ProtocolError{Offset: r.pos, Reason: fmt.Sprintf("%d trailing bytes", len(b)-r.pos)}
	}

	tx.raw = append([]byte(nil), b...)
	return tx, nil
}

// Bytes returns the serialized form the transaction was decoded from, or the
// encoding of a constructed transaction.
func (tx *Transaction) Bytes() []byte {
	if tx.raw != nil {
		return append([]byte(nil), tx.raw...)
	}
	return tx.Encode()
}

// Hash returns the transaction id in display (reversed) hex order.
func (tx *Transaction) Hash() string {
	h := utils.DoubleSHA256(tx.Bytes())
	for i, j := 0, len(h)-1; i < j; i, j = i+1, j-1 {
		h[i], h[j] = h[j], h[i]
	}
	return hex.EncodeToString(h)
}

// TotalOutput sums output values.
func (tx *Transaction) TotalOutput() int64 {
	var total int64
	for _, o := range tx.Outputs {
		total += o.Value
	}
	return total
}
