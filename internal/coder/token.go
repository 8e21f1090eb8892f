package coder

import "fmt"

// MintStatus mirrors the on-chain token account's mint state byte.
type MintStatus uint8

const (
	MintActive MintStatus = iota
	MintPaused
	MintClosed
)

// TokenAccountSchema is the canonical layout of the fungible-token ledger
// account. Field order is the wire order and must not change.
var TokenAccountSchema = Struct(
	F("owner", FixedBytes(32)),
	F("status", U8),
	F("supply", U64),
	F("circulating_supply", U64),
	F("ticker", Str),
	F("decimals", U8),
	F("token_metadata", Map(Str, FixedBytes(32))),
	F("balances", Map(FixedBytes(32), U64)),
)

type TokenAccount struct {
	Owner             [32]byte
	Status            MintStatus
	Supply            uint64
	CirculatingSupply uint64
	Ticker            string
	Decimals          uint8
	TokenMetadata     []MetadataEntry
	Balances          []BalanceEntry
}

type MetadataEntry struct {
	Key   string
	Value [32]byte
}

type BalanceEntry struct {
	Owner  [32]byte
	Amount uint64
}

// DecodeTokenAccount parses a raw token account snapshot. Inputs shorter than
// four bytes mean the account has not been initialized yet and decode to an
// empty ledger.
func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	if len(data) < 4 {
		return &TokenAccount{}, nil
	}

	raw, err := Decode(data, TokenAccountSchema)
	if err != nil {
		return nil, err
	}

	vals := raw.(Values)
	acc := &TokenAccount{}

	if acc.Owner, err = vals.bytes32("owner"); err != nil {
		return nil, err
	}

	status, err := vals.u8("status")
	if err != nil {
		return nil, err
	}
	if status > uint8(MintClosed) {
		return nil, fmt.Errorf("%w: mint status %d", ErrUnknownEnumTag, status)
	}
	acc.Status = MintStatus(status)

	if acc.Supply, err = vals.u64("supply"); err != nil {
		return nil, err
	}
	if acc.CirculatingSupply, err = vals.u64("circulating_supply"); err != nil {
		return nil, err
	}
	if acc.Ticker, err = vals.str("ticker"); err != nil {
		return nil, err
	}
	if acc.Decimals, err = vals.u8("decimals"); err != nil {
		return nil, err
	}

	metadata, err := vals.entries("token_metadata")
	if err != nil {
		return nil, err
	}
	for _, e := range metadata {
		key, ok := e.Key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: metadata key is not a string", ErrUnsupportedValue)
		}
		var value [32]byte
		b, ok := e.Value.([]byte)
		if !ok || len(b) != 32 {
			return nil, fmt.Errorf("%w: metadata value is not a 32-byte array", ErrUnsupportedValue)
		}
		copy(value[:], b)
		acc.TokenMetadata = append(acc.TokenMetadata, MetadataEntry{Key: key, Value: value})
	}

	balances, err := vals.entries("balances")
	if err != nil {
		return nil, err
	}
	for _, e := range balances {
		var owner [32]byte
		b, ok := e.Key.([]byte)
		if !ok || len(b) != 32 {
			return nil, fmt.Errorf("%w: balance key is not a 32-byte array", ErrUnsupportedValue)
		}
		copy(owner[:], b)
		amount, ok := e.Value.(uint64)
		if !ok {
			return nil, fmt.Errorf("%w: balance amount is not u64", ErrUnsupportedValue)
		}
		acc.Balances = append(acc.Balances, BalanceEntry{Owner: owner, Amount: amount})
	}

	return acc, nil
}

// Encode serializes the ledger back into its canonical byte form.
func (t *TokenAccount) Encode() ([]byte, error) {
	metadata := make([]MapEntry, 0, len(t.TokenMetadata))
	for _, e := range t.TokenMetadata {
		value := e.Value
		metadata = append(metadata, MapEntry{Key: e.Key, Value: value[:]})
	}

	balances := make([]MapEntry, 0, len(t.Balances))
	for _, e := range t.Balances {
		owner := e.Owner
		balances = append(balances, MapEntry{Key: owner[:], Value: e.Amount})
	}

	return Encode(Values{
		"owner":              t.Owner[:],
		"status":             uint8(t.Status),
		"supply":             t.Supply,
		"circulating_supply": t.CirculatingSupply,
		"ticker":             t.Ticker,
		"decimals":           t.Decimals,
		"token_metadata":     metadata,
		"balances":           balances,
	}, TokenAccountSchema)
}

// BalanceOf returns the recorded amount for owner, zero when absent.
func (t *TokenAccount) BalanceOf(owner [32]byte) uint64 {
	for _, e := range t.Balances {
		if e.Owner == owner {
			return e.Amount
		}
	}
	return 0
}
