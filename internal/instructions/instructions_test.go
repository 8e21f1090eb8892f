package instructions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
	"github.com/iqbalbaharum/predictr-client/internal/coder"
)

func pk(b byte) arch.Pubkey {
	var out arch.Pubkey
	for i := range out {
		out[i] = b
	}
	return out
}

func tradeParams() *TradeParams {
	return &TradeParams{
		Program:      pk(0x01),
		EventAccount: pk(0x02),
		TokenAccount: pk(0x03),
		Signer:       pk(0x04),
		RandomUID:    arch.UniqueIDFromString("6f9619ff-8b86-d011-b42d-00c04fc964ff"),
		UID:          arch.UniqueIDFromString("123e4567-e89b-12d3-a456-426614174000"),
		OutcomeID:    1,
		Amount:       1000,
	}
}

func TestMakeBuyInstructionAccountOrder(t *testing.T) {
	ins, err := MakeBuyInstruction(tradeParams())
	require.NoError(t, err)

	assert.Equal(t, pk(0x01), ins.ProgramID)
	require.Len(t, ins.Accounts, 3)

	// Event first, token second, signer last. The program reads positionally.
	assert.Equal(t, pk(0x02), ins.Accounts[0].Pubkey)
	assert.True(t, ins.Accounts[0].IsWritable)
	assert.False(t, ins.Accounts[0].IsSigner)

	assert.Equal(t, pk(0x03), ins.Accounts[1].Pubkey)
	assert.True(t, ins.Accounts[1].IsWritable)
	assert.False(t, ins.Accounts[1].IsSigner)

	assert.Equal(t, pk(0x04), ins.Accounts[2].Pubkey)
	assert.False(t, ins.Accounts[2].IsWritable)
	assert.True(t, ins.Accounts[2].IsSigner)

	assert.Equal(t, coder.FnBuy, ins.Data[0])
}

func TestMakeSellInstructionSharesTradeLayout(t *testing.T) {
	buy, err := MakeBuyInstruction(tradeParams())
	require.NoError(t, err)

	sell, err := MakeSellInstruction(tradeParams())
	require.NoError(t, err)

	assert.Equal(t, buy.Accounts, sell.Accounts)
	assert.Equal(t, coder.FnSell, sell.Data[0])
	assert.Equal(t, []byte(buy.Data[1:]), []byte(sell.Data[1:]))
}

func TestMakeMintInstruction(t *testing.T) {
	ins, err := MakeMintInstruction(&MintParams{
		Program:      pk(0x01),
		TokenAccount: pk(0x03),
		Signer:       pk(0x04),
		UID:          arch.UniqueIDFromString("6f9619ff-8b86-d011-b42d-00c04fc964ff"),
		Amount:       500,
	})
	require.NoError(t, err)

	require.Len(t, ins.Accounts, 2)
	assert.Equal(t, pk(0x03), ins.Accounts[0].Pubkey)
	assert.True(t, ins.Accounts[0].IsWritable)
	assert.Equal(t, pk(0x04), ins.Accounts[1].Pubkey)
	assert.True(t, ins.Accounts[1].IsSigner)
	assert.Equal(t, coder.FnMint, ins.Data[0])
}

func TestMakeCreateTokenInstruction(t *testing.T) {
	ins, err := MakeCreateTokenInstruction(&CreateTokenParams{
		Program:      pk(0x01),
		TokenAccount: pk(0x03),
		Signer:       pk(0x04),
		Owner:        pk(0x07),
		Supply:       1_000_000,
		Ticker:       "PUSD",
		Decimals:     10,
	})
	require.NoError(t, err)

	require.Len(t, ins.Accounts, 2)
	assert.Equal(t, pk(0x03), ins.Accounts[0].Pubkey)
	assert.True(t, ins.Accounts[0].IsWritable)
	assert.Equal(t, pk(0x04), ins.Accounts[1].Pubkey)
	assert.True(t, ins.Accounts[1].IsSigner)
	assert.Equal(t, coder.FnCreateToken, ins.Data[0])
}

func TestMakeCreateMarketInstruction(t *testing.T) {
	ins, err := MakeCreateMarketInstruction(&CreateMarketParams{
		Program:         pk(0x01),
		EventAccount:    pk(0x02),
		Signer:          pk(0x04),
		UniqueID:        arch.UniqueIDFromString("123e4567-e89b-12d3-a456-426614174000"),
		ExpiryTimestamp: 1_735_689_600,
		NumOutcomes:     2,
	})
	require.NoError(t, err)

	require.Len(t, ins.Accounts, 2)
	assert.Equal(t, pk(0x02), ins.Accounts[0].Pubkey)
	assert.True(t, ins.Accounts[0].IsWritable)
	assert.Equal(t, pk(0x04), ins.Accounts[1].Pubkey)
	assert.True(t, ins.Accounts[1].IsSigner)
	assert.Equal(t, coder.FnCreateMarket, ins.Data[0])
}
