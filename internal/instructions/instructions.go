// Package instructions builds the program instructions for every
// user-initiated action. Account order inside an instruction is positional:
// the on-chain program resolves accounts by index, so a reordered list still
// submits but mutates the wrong state. The orders below are frozen.
package instructions

import (
	"fmt"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
	"github.com/iqbalbaharum/predictr-client/internal/coder"
)

// TradeParams covers buy and sell: both reference the event, token and signer
// accounts in that order.
type TradeParams struct {
	Program      arch.Pubkey
	EventAccount arch.Pubkey
	TokenAccount arch.Pubkey
	Signer       arch.Pubkey
	RandomUID    arch.Pubkey
	UID          arch.Pubkey
	OutcomeID    uint8
	Amount       uint64
}

// MakeBuyInstruction encodes a buy payload against accounts
// [event, token, signer] with writable flags [true, true, false] and signer
// flags [false, false, true].
func MakeBuyInstruction(p *TradeParams) (*arch.Instruction, error) {
	data, err := coder.BuyPayload{
		RandomUID: [32]byte(p.RandomUID),
		UID:       [32]byte(p.UID),
		OutcomeID: p.OutcomeID,
		Amount:    p.Amount,
	}.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode buy payload: %w", err)
	}

	return tradeInstruction(p, data), nil
}

// MakeSellInstruction mirrors MakeBuyInstruction with the sell function
// number and the same account layout.
func MakeSellInstruction(p *TradeParams) (*arch.Instruction, error) {
	data, err := coder.SellPayload{
		RandomUID: [32]byte(p.RandomUID),
		UID:       [32]byte(p.UID),
		OutcomeID: p.OutcomeID,
		Amount:    p.Amount,
	}.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode sell payload: %w", err)
	}

	return tradeInstruction(p, data), nil
}

func tradeInstruction(p *TradeParams, data []byte) *arch.Instruction {
	return &arch.Instruction{
		ProgramID: p.Program,
		Accounts: []*arch.AccountMeta{
			arch.Meta(p.EventAccount).WRITE(),
			arch.Meta(p.TokenAccount).WRITE(),
			arch.Meta(p.Signer).SIGNER(),
		},
		Data: data,
	}
}

type MintParams struct {
	Program      arch.Pubkey
	TokenAccount arch.Pubkey
	Signer       arch.Pubkey
	UID          arch.Pubkey
	Amount       uint64
}

// MakeMintInstruction encodes a mint payload against accounts
// [token, signer].
func MakeMintInstruction(p *MintParams) (*arch.Instruction, error) {
	data, err := coder.MintPayload{
		UID:    [32]byte(p.UID),
		Amount: p.Amount,
	}.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode mint payload: %w", err)
	}

	return &arch.Instruction{
		ProgramID: p.Program,
		Accounts: []*arch.AccountMeta{
			arch.Meta(p.TokenAccount).WRITE(),
			arch.Meta(p.Signer).SIGNER(),
		},
		Data: data,
	}, nil
}

type CreateTokenParams struct {
	Program      arch.Pubkey
	TokenAccount arch.Pubkey
	Signer       arch.Pubkey
	Owner        arch.Pubkey
	Supply       uint64
	Ticker       string
	Decimals     uint8
}

// MakeCreateTokenInstruction encodes a create-token payload against accounts
// [token, signer].
func MakeCreateTokenInstruction(p *CreateTokenParams) (*arch.Instruction, error) {
	data, err := coder.CreateTokenPayload{
		Owner:    [32]byte(p.Owner),
		Supply:   p.Supply,
		Ticker:   p.Ticker,
		Decimals: p.Decimals,
	}.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode create token payload: %w", err)
	}

	return &arch.Instruction{
		ProgramID: p.Program,
		Accounts: []*arch.AccountMeta{
			arch.Meta(p.TokenAccount).WRITE(),
			arch.Meta(p.Signer).SIGNER(),
		},
		Data: data,
	}, nil
}

type CreateMarketParams struct {
	Program         arch.Pubkey
	EventAccount    arch.Pubkey
	Signer          arch.Pubkey
	UniqueID        arch.Pubkey
	ExpiryTimestamp uint32
	NumOutcomes     uint8
}

// MakeCreateMarketInstruction encodes a create-market payload against
// accounts [event, signer].
func MakeCreateMarketInstruction(p *CreateMarketParams) (*arch.Instruction, error) {
	data, err := coder.CreateMarketPayload{
		UniqueID:        [32]byte(p.UniqueID),
		ExpiryTimestamp: p.ExpiryTimestamp,
		NumOutcomes:     p.NumOutcomes,
	}.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode create market payload: %w", err)
	}

	return &arch.Instruction{
		ProgramID: p.Program,
		Accounts: []*arch.AccountMeta{
			arch.Meta(p.EventAccount).WRITE(),
			arch.Meta(p.Signer).SIGNER(),
		},
		Data: data,
	}, nil
}
