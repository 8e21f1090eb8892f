package arch

// AccountMeta references one account inside an instruction. Order matters:
// the on-chain program resolves accounts positionally.
type AccountMeta struct {
	Pubkey     Pubkey `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

func Meta(pk Pubkey) *AccountMeta {
	return &AccountMeta{Pubkey: pk}
}

func (m *AccountMeta) WRITE() *AccountMeta {
	m.IsWritable = true
	return m
}

func (m *AccountMeta) SIGNER() *AccountMeta {
	m.IsSigner = true
	return m
}

type Instruction struct {
	ProgramID Pubkey         `json:"program_id"`
	Accounts  []*AccountMeta `json:"accounts"`
	Data      Bytes          `json:"data"`
}

type Message struct {
	Signers      []Pubkey       `json:"signers"`
	Instructions []*Instruction `json:"instructions"`
}

// NewMessage wraps instructions with their signer set. Duplicate signers are
// collapsed, first occurrence wins.
func NewMessage(signers []Pubkey, instructions ...*Instruction) *Message {
	seen := make(map[Pubkey]struct{}, len(signers))
	deduped := make([]Pubkey, 0, len(signers))

	for _, s := range signers {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		deduped = append(deduped, s)
	}

	return &Message{
		Signers:      deduped,
		Instructions: instructions,
	}
}

// RuntimeTransaction is the signed envelope accepted by the node's
// send_transaction endpoint.
type RuntimeTransaction struct {
	Version    int      `json:"version"`
	Signatures []Bytes  `json:"signatures"`
	Message    *Message `json:"message"`
}
