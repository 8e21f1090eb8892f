// Package market exposes the user-facing prediction-market operations: read
// the on-chain event and token state, and submit buy/sell/mint/create
// actions. Each action builds a fresh instruction set, signs once and
// submits once; retry means rebuilding from scratch.
package market

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/iqbalbaharum/predictr-client/internal/arch"
	"github.com/iqbalbaharum/predictr-client/internal/coder"
	"github.com/iqbalbaharum/predictr-client/internal/instructions"
	"github.com/iqbalbaharum/predictr-client/internal/rpc"
	"github.com/iqbalbaharum/predictr-client/internal/tx"
	"github.com/iqbalbaharum/predictr-client/internal/wallet"
)

// Defaults used when creating the platform token, matching the deployed
// program's expectations.
const (
	DefaultTokenSupply   uint64 = 1_000_000
	DefaultTokenTicker          = "PUSD"
	DefaultTokenDecimals uint8  = 10
)

type Service struct {
	client    *rpc.Client
	wallet    wallet.Wallet
	submitter *tx.Submitter

	program      arch.Pubkey
	eventAccount arch.Pubkey
	tokenAccount arch.Pubkey
}

func NewService(client *rpc.Client, w wallet.Wallet, program, eventAccount, tokenAccount arch.Pubkey) *Service {
	return &Service{
		client:       client,
		wallet:       w,
		submitter:    tx.NewSubmitter(client, w),
		program:      program,
		eventAccount: eventAccount,
		tokenAccount: tokenAccount,
	}
}

// FetchEventData reads and decodes the full prediction set. A missing or
// uninitialized account yields an empty set, not an error.
func (s *Service) FetchEventData(ctx context.Context) (*coder.EventAccount, error) {
	info, err := s.client.ReadAccountInfo(ctx, s.eventAccount)
	if err != nil {
		return nil, fmt.Errorf("read event account: %w", err)
	}
	if info == nil {
		return &coder.EventAccount{}, nil
	}
	return coder.DecodeEventAccount(info.Data)
}

// FetchTokenData reads and decodes the token ledger.
func (s *Service) FetchTokenData(ctx context.Context) (*coder.TokenAccount, error) {
	info, err := s.client.ReadAccountInfo(ctx, s.tokenAccount)
	if err != nil {
		return nil, fmt.Errorf("read token account: %w", err)
	}
	if info == nil {
		return &coder.TokenAccount{}, nil
	}
	return coder.DecodeTokenAccount(info.Data)
}

// LatestPrediction returns the most recently created market, nil when none
// exist.
func (s *Service) LatestPrediction(ctx context.Context) (*coder.Prediction, error) {
	event, err := s.FetchEventData(ctx)
	if err != nil {
		return nil, err
	}
	if len(event.Predictions) == 0 {
		return nil, nil
	}
	return &event.Predictions[len(event.Predictions)-1], nil
}

// Balance returns the connected ledger amount for owner.
func (s *Service) Balance(ctx context.Context, owner arch.Pubkey) (uint64, error) {
	token, err := s.FetchTokenData(ctx)
	if err != nil {
		return 0, err
	}
	return token.BalanceOf([32]byte(owner)), nil
}

// BuyOutcome places a buy bet on outcomeID of the market identified by
// eventID and returns the transaction id.
func (s *Service) BuyOutcome(ctx context.Context, eventID string, outcomeID uint8, amount uint64) (string, error) {
	signer, err := s.signerPubkey(ctx)
	if err != nil {
		return "", err
	}

	ins, err := instructions.MakeBuyInstruction(&instructions.TradeParams{
		Program:      s.program,
		EventAccount: s.eventAccount,
		TokenAccount: s.tokenAccount,
		Signer:       signer,
		RandomUID:    arch.UniqueIDFromString(uuid.NewString()),
		UID:          arch.UniqueIDFromString(eventID),
		OutcomeID:    outcomeID,
		Amount:       amount,
	})
	if err != nil {
		return "", err
	}

	return s.submitter.Submit(ctx, arch.NewMessage([]arch.Pubkey{signer}, ins))
}

// SellOutcome places a sell bet on outcomeID of the market identified by
// eventID and returns the transaction id.
func (s *Service) SellOutcome(ctx context.Context, eventID string, outcomeID uint8, amount uint64) (string, error) {
	signer, err := s.signerPubkey(ctx)
	if err != nil {
		return "", err
	}

	ins, err := instructions.MakeSellInstruction(&instructions.TradeParams{
		Program:      s.program,
		EventAccount: s.eventAccount,
		TokenAccount: s.tokenAccount,
		Signer:       signer,
		RandomUID:    arch.UniqueIDFromString(uuid.NewString()),
		UID:          arch.UniqueIDFromString(eventID),
		OutcomeID:    outcomeID,
		Amount:       amount,
	})
	if err != nil {
		return "", err
	}

	return s.submitter.Submit(ctx, arch.NewMessage([]arch.Pubkey{signer}, ins))
}

// MintTokens mints amount onto the platform token ledger.
func (s *Service) MintTokens(ctx context.Context, amount uint64) (string, error) {
	signer, err := s.signerPubkey(ctx)
	if err != nil {
		return "", err
	}

	ins, err := instructions.MakeMintInstruction(&instructions.MintParams{
		Program:      s.program,
		TokenAccount: s.tokenAccount,
		Signer:       signer,
		UID:          arch.UniqueIDFromString(uuid.NewString()),
		Amount:       amount,
	})
	if err != nil {
		return "", err
	}

	return s.submitter.Submit(ctx, arch.NewMessage([]arch.Pubkey{signer}, ins))
}

// CreateToken initializes the platform token with the signer as owner.
func (s *Service) CreateToken(ctx context.Context, supply uint64, ticker string, decimals uint8) (string, error) {
	signer, err := s.signerPubkey(ctx)
	if err != nil {
		return "", err
	}

	// The owner field carries the signer's hex form as UTF-8 bytes,
	// truncated to the 32-byte identifier, mirroring the deployed clients.
	owner := arch.UniqueIDFromString(signer.String())

	ins, err := instructions.MakeCreateTokenInstruction(&instructions.CreateTokenParams{
		Program:      s.program,
		TokenAccount: s.tokenAccount,
		Signer:       signer,
		Owner:        owner,
		Supply:       supply,
		Ticker:       ticker,
		Decimals:     decimals,
	})
	if err != nil {
		return "", err
	}

	return s.submitter.Submit(ctx, arch.NewMessage([]arch.Pubkey{signer}, ins))
}

// CreateMarket registers a new prediction market on chain.
func (s *Service) CreateMarket(ctx context.Context, eventID string, expiryTimestamp uint32, numOutcomes uint8) (string, error) {
	signer, err := s.signerPubkey(ctx)
	if err != nil {
		return "", err
	}

	ins, err := instructions.MakeCreateMarketInstruction(&instructions.CreateMarketParams{
		Program:         s.program,
		EventAccount:    s.eventAccount,
		Signer:          signer,
		UniqueID:        arch.UniqueIDFromString(eventID),
		ExpiryTimestamp: expiryTimestamp,
		NumOutcomes:     numOutcomes,
	})
	if err != nil {
		return "", err
	}

	return s.submitter.Submit(ctx, arch.NewMessage([]arch.Pubkey{signer}, ins))
}

// SignerPubkey resolves the connected wallet's 32-byte wire identity.
func (s *Service) SignerPubkey(ctx context.Context) (arch.Pubkey, error) {
	return s.signerPubkey(ctx)
}

func (s *Service) signerPubkey(ctx context.Context) (arch.Pubkey, error) {
	compressed, err := s.wallet.GetPublicKey(ctx)
	if err != nil {
		return arch.Pubkey{}, fmt.Errorf("get wallet public key: %w", err)
	}

	xonly, err := wallet.XOnly(compressed)
	if err != nil {
		return arch.Pubkey{}, err
	}

	return arch.PubkeyFromHex(xonly)
}

// Address returns the wallet's receive address.
func (s *Service) Address(ctx context.Context) (string, error) {
	return s.wallet.Address(ctx)
}

// AccountAddress asks the node for the address backing an on-chain account.
func (s *Service) AccountAddress(ctx context.Context, pubkey arch.Pubkey) (string, error) {
	return s.client.GetAccountAddress(ctx, pubkey)
}
