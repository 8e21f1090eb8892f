package arch

import (
	"crypto/sha256"
	"encoding/binary"
)

// Serialize produces the canonical byte form of the message that gets hashed
// and signed. Layout: u32 signer count, each signer's 32 bytes, u32
// instruction count, then per instruction the program id, u32 account count,
// each account as pubkey + is_signer + is_writable bytes, and the u32-length
// prefixed data. All integers little-endian. Any reordering of accounts,
// signers or data changes the signature, so this layout is frozen.
func (m *Message) Serialize() []byte {
	out := make([]byte, 0, m.serializedSize())

	out = binary.LittleEndian.AppendUint32(out, uint32(len(m.Signers)))
	for _, s := range m.Signers {
		out = append(out, s[:]...)
	}

	out = binary.LittleEndian.AppendUint32(out, uint32(len(m.Instructions)))
	for _, ins := range m.Instructions {
		out = append(out, ins.ProgramID[:]...)

		out = binary.LittleEndian.AppendUint32(out, uint32(len(ins.Accounts)))
		for _, acc := range ins.Accounts {
			out = append(out, acc.Pubkey[:]...)
			out = append(out, boolByte(acc.IsSigner), boolByte(acc.IsWritable))
		}

		out = binary.LittleEndian.AppendUint32(out, uint32(len(ins.Data)))
		out = append(out, ins.Data...)
	}

	return out
}

// Hash is the digest the wallet signs.
func (m *Message) Hash() [32]byte {
	return sha256.Sum256(m.Serialize())
}

func (m *Message) serializedSize() int {
	size := 4 + len(m.Signers)*PubkeyLength + 4
	for _, ins := range m.Instructions {
		size += PubkeyLength + 4 + len(ins.Accounts)*(PubkeyLength+2) + 4 + len(ins.Data)
	}
	return size
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
