package transaction

import (
	"encoding/binary"
	"fmt"
)

type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) fail(offset int, reason string) {
	if r.err == nil {
		r.err = &ProtocolError{Offset: offset, Reason: reason}
	}
}

func (r *reader) bytes(n int, what string) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.buf)-r.pos < n {
		r.fail(r.pos, fmt.Sprintf("truncated %s", what))
		return nil
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) uint32(what string) uint32 {
	b := r.bytes(4, what)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) uint64(what string) uint64 {
	b := r.bytes(8, what)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// varInt reads a CompactSize integer and rejects non-minimal encodings.
func (r *reader) varInt(what string) uint64 {
	offset := r.pos
	prefix := r.bytes(1, what)
	if prefix == nil {
		return 0
	}

	var v, minVal uint64
	switch prefix[0] {
	case 0xfd:
		b := r.bytes(2, what)
		if b == nil {
			return 0
		}
		v, minVal = uint64(binary.LittleEndian.Uint16(b)), 0xfd
	case 0xfe:
		v, minVal = uint64(r.uint32(what)), 0x10000
	case 0xff:
		v, minVal = r.uint64(what), 0x100000000
	default:
		return uint64(prefix[0])
	}
	if r.err == nil && v < minVal {
		r.fail(offset, fmt.Sprintf("non-canonical %s", what))
	}
	return v
}

// count reads an element count and checks it against the bytes left, given
// the minimum encoded size of one element.
func (r *reader) count(what string, minElemSize int) uint64 {
	offset := r.pos
	n := r.varInt(what)
	if r.err != nil {
		return 0
	}
	if n > uint64(len(r.buf)-r.pos)/uint64(minElemSize) {
		r.fail(offset, fmt.Sprintf("%s %d exceeds remaining data", what, n))
		return 0
	}
	return n
}

func (r *reader) script(what string) []byte {
	offset := r.pos
	n := r.varInt(what + " length")
	if r.err != nil {
		return nil
	}
	if n > MaxScriptSize {
		r.fail(offset, fmt.Sprintf("%s length %d exceeds %d", what, n, MaxScriptSize))
		return nil
	}
	b := r.bytes(int(n), what)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func appendVarInt(b []byte, v uint64) []byte {
	switch {
	case v < 0xfd:
		return append(b, byte(v))
	case v <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(b, 0xfd), uint16(v))
	case v <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(b, 0xfe), uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(append(b, 0xff), v)
	}
}

// Encode serializes the transaction for its network.
func (tx *Transaction) Encode() []byte {
	b := binary.LittleEndian.AppendUint32(nil, uint32(tx.Version))
	if tx.Params != nil && tx.Params.TxHasTimestamp {
		b = binary.LittleEndian.AppendUint32(b, tx.Time)
	}

	b = appendVarInt(b, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		b = append(b, in.PreviousOutput.Hash[:]...)
		b = binary.LittleEndian.AppendUint32(b, in.PreviousOutput.Index)
		b = appendVarInt(b, uint64(len(in.ScriptSig)))
		b = append(b, in.ScriptSig...)
		b = binary.LittleEndian.AppendUint32(b, in.Sequence)
	}

	b = appendVarInt(b, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		b = binary.LittleEndian.AppendUint64(b, uint64(out.Value))
		b = appendVarInt(b, uint64(len(out.ScriptPubKey)))
		b = append(b, out.ScriptPubKey...)
	}

	return binary.LittleEndian.AppendUint32(b, tx.LockTime)
}
