package coder

// Function numbers understood by the prediction-market program. The function
// number is always the first payload byte and fully determines how the
// remaining bytes are parsed.
const (
	FnCreateMarket uint8 = 1
	FnBuy          uint8 = 3
	FnSell         uint8 = 4
	FnCreateToken  uint8 = 5
	FnMint         uint8 = 6
)

var tradePayloadSchema = Struct(
	F("function_number", U8),
	F("random_uid", FixedBytes(32)),
	F("uid", FixedBytes(32)),
	F("outcome_id", U8),
	F("amount", U64),
)

var createMarketPayloadSchema = Struct(
	F("function_number", U8),
	F("unique_id", FixedBytes(32)),
	F("expiry_timestamp", U32),
	F("num_outcomes", U8),
)

var createTokenPayloadSchema = Struct(
	F("function_number", U8),
	F("owner", FixedBytes(32)),
	F("supply", U64),
	F("ticker", Str),
	F("decimals", U8),
)

var mintPayloadSchema = Struct(
	F("function_number", U8),
	F("uid", FixedBytes(32)),
	F("amount", U64),
)

// BuyPayload places a buy bet on an outcome. RandomUID makes otherwise
// identical bets distinct on the wire.
type BuyPayload struct {
	RandomUID [32]byte
	UID       [32]byte
	OutcomeID uint8
	Amount    uint64
}

func (p BuyPayload) Encode() ([]byte, error) {
	return encodeTrade(FnBuy, p.RandomUID, p.UID, p.OutcomeID, p.Amount)
}

type SellPayload struct {
	RandomUID [32]byte
	UID       [32]byte
	OutcomeID uint8
	Amount    uint64
}

func (p SellPayload) Encode() ([]byte, error) {
	return encodeTrade(FnSell, p.RandomUID, p.UID, p.OutcomeID, p.Amount)
}

func encodeTrade(fn uint8, randomUID, uid [32]byte, outcomeID uint8, amount uint64) ([]byte, error) {
	return Encode(Values{
		"function_number": fn,
		"random_uid":      randomUID[:],
		"uid":             uid[:],
		"outcome_id":      outcomeID,
		"amount":          amount,
	}, tradePayloadSchema)
}

type CreateMarketPayload struct {
	UniqueID        [32]byte
	ExpiryTimestamp uint32
	NumOutcomes     uint8
}

func (p CreateMarketPayload) Encode() ([]byte, error) {
	return Encode(Values{
		"function_number":  FnCreateMarket,
		"unique_id":        p.UniqueID[:],
		"expiry_timestamp": p.ExpiryTimestamp,
		"num_outcomes":     p.NumOutcomes,
	}, createMarketPayloadSchema)
}

type CreateTokenPayload struct {
	Owner    [32]byte
	Supply   uint64
	Ticker   string
	Decimals uint8
}

func (p CreateTokenPayload) Encode() ([]byte, error) {
	return Encode(Values{
		"function_number": FnCreateToken,
		"owner":           p.Owner[:],
		"supply":          p.Supply,
		"ticker":          p.Ticker,
		"decimals":        p.Decimals,
	}, createTokenPayloadSchema)
}

type MintPayload struct {
	UID    [32]byte
	Amount uint64
}

func (p MintPayload) Encode() ([]byte, error) {
	return Encode(Values{
		"function_number": FnMint,
		"uid":             p.UID[:],
		"amount":          p.Amount,
	}, mintPayloadSchema)
}
