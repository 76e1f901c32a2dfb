package address

import (
	"github.com/tedchain/inputparser/types"
)

// Script opcodes used by standard output scripts.
const (
	opDup         = 0x76
	opHash160     = 0xa9
	opEqual       = 0x87
	opEqualVerify = 0x88
	opCheckSig    = 0xac
	opPush20      = hashLen
)

// ScriptPubKey returns the standard output script paying to a.
func (a *Address) ScriptPubKey() []byte {
	if a.IsP2SH() {
		s := make([]byte, 0, 23)
		s = append(s, opHash160, opPush20)
		s = append(s, a.Hash[:]...)
		return append(s, opEqual)
	}
	s := make([]byte, 0, 25)
	s = append(s, opDup, opHash160, opPush20)
	s = append(s, a.Hash[:]...)
	return append(s, opEqualVerify, opCheckSig)
}

// FromScript extracts the address paid by a standard output script. It
// returns nil for any other script.
func FromScript(params *types.NetworkParams, script []byte) *Address {
	switch {
	case len(script) == 25 &&
		script[0] == opDup && script[1] == opHash160 && script[2] == opPush20 &&
		script[23] == opEqualVerify && script[24] == opCheckSig:
		a, _ := FromPubKeyHash(params, script[3:23])
		return a
	case len(script) == 23 &&
		script[0] == opHash160 && script[1] == opPush20 && script[22] == opEqual:
		a, _ := FromScriptHash(params, script[2:22])
		return a
	default:
		return nil
	}
}
