package coder

import "fmt"

// EventStatus is a prediction market's lifecycle state byte.
type EventStatus uint8

const (
	EventActive EventStatus = iota
	EventClosed
	EventResolved
	EventCancelled
)

// BetType distinguishes buy and sell positions.
type BetType uint8

const (
	BetSell BetType = iota
	BetBuy
)

var betSchema = Struct(
	F("user", FixedBytes(32)),
	F("event_id", FixedBytes(32)),
	F("outcome_id", U8),
	F("amount", U64),
	F("timestamp", I64),
	F("bet_type", U8),
)

var outcomeSchema = Struct(
	F("id", U8),
	F("total_amount", U64),
	F("bets", Map(FixedBytes(32), Sequence(betSchema))),
)

var predictionSchema = Struct(
	F("unique_id", FixedBytes(32)),
	F("creator", FixedBytes(32)),
	F("expiry_timestamp", U32),
	F("outcomes", Sequence(outcomeSchema)),
	F("total_pool_amount", U64),
	F("status", U8),
	F("winning_outcome", Option(U8)),
)

// EventAccountSchema is the canonical layout of the account holding every
// prediction market. total_predictions and the sequence's own count prefix
// are both present on the wire; the program keeps them in sync.
var EventAccountSchema = Struct(
	F("total_predictions", U32),
	F("predictions", Sequence(predictionSchema)),
)

type EventAccount struct {
	TotalPredictions uint32
	Predictions      []Prediction
}

type Prediction struct {
	UniqueID        [32]byte
	Creator         [32]byte
	ExpiryTimestamp uint32
	Outcomes        []Outcome
	TotalPoolAmount uint64
	Status          EventStatus
	WinningOutcome  *uint8 // set only when Status is EventResolved
}

type Outcome struct {
	ID          uint8
	TotalAmount uint64
	Bets        []OutcomeBets
}

// OutcomeBets groups one user's historical bets on an outcome.
type OutcomeBets struct {
	User [32]byte
	Bets []Bet
}

type Bet struct {
	User      [32]byte
	EventID   [32]byte
	OutcomeID uint8
	Amount    uint64
	Timestamp int64
	BetType   BetType
}

// DecodeEventAccount parses the raw event account snapshot. Inputs shorter
// than four bytes mean the account has not been initialized yet and decode to
// an empty market set.
func DecodeEventAccount(data []byte) (*EventAccount, error) {
	if len(data) < 4 {
		return &EventAccount{}, nil
	}

	raw, err := Decode(data, EventAccountSchema)
	if err != nil {
		return nil, err
	}

	vals := raw.(Values)
	acc := &EventAccount{}

	if acc.TotalPredictions, err = vals.u32("total_predictions"); err != nil {
		return nil, err
	}

	items, err := vals.seq("predictions")
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		pvals, ok := item.(Values)
		if !ok {
			return nil, fmt.Errorf("%w: prediction %d is not a struct", ErrUnsupportedValue, i)
		}
		p, err := predictionFromValues(pvals)
		if err != nil {
			return nil, fmt.Errorf("prediction %d: %w", i, err)
		}
		acc.Predictions = append(acc.Predictions, p)
	}

	return acc, nil
}

func predictionFromValues(vals Values) (Prediction, error) {
	var p Prediction
	var err error

	if p.UniqueID, err = vals.bytes32("unique_id"); err != nil {
		return p, err
	}
	if p.Creator, err = vals.bytes32("creator"); err != nil {
		return p, err
	}
	if p.ExpiryTimestamp, err = vals.u32("expiry_timestamp"); err != nil {
		return p, err
	}
	if p.TotalPoolAmount, err = vals.u64("total_pool_amount"); err != nil {
		return p, err
	}

	status, err := vals.u8("status")
	if err != nil {
		return p, err
	}
	if status > uint8(EventCancelled) {
		return p, fmt.Errorf("%w: event status %d", ErrUnknownEnumTag, status)
	}
	p.Status = EventStatus(status)

	if winner := vals["winning_outcome"]; winner != nil {
		id, ok := winner.(uint8)
		if !ok {
			return p, fmt.Errorf("%w: winning outcome is not u8", ErrUnsupportedValue)
		}
		p.WinningOutcome = &id
	}

	outcomes, err := vals.seq("outcomes")
	if err != nil {
		return p, err
	}
	for i, item := range outcomes {
		ovals, ok := item.(Values)
		if !ok {
			return p, fmt.Errorf("%w: outcome %d is not a struct", ErrUnsupportedValue, i)
		}
		o, err := outcomeFromValues(ovals)
		if err != nil {
			return p, fmt.Errorf("outcome %d: %w", i, err)
		}
		p.Outcomes = append(p.Outcomes, o)
	}

	return p, nil
}

func outcomeFromValues(vals Values) (Outcome, error) {
	var o Outcome
	var err error

	if o.ID, err = vals.u8("id"); err != nil {
		return o, err
	}
	if o.TotalAmount, err = vals.u64("total_amount"); err != nil {
		return o, err
	}

	entries, err := vals.entries("bets")
	if err != nil {
		return o, err
	}

	for _, e := range entries {
		var user [32]byte
		b, ok := e.Key.([]byte)
		if !ok || len(b) != 32 {
			return o, fmt.Errorf("%w: bet key is not a 32-byte array", ErrUnsupportedValue)
		}
		copy(user[:], b)

		items, ok := e.Value.([]any)
		if !ok {
			return o, fmt.Errorf("%w: bet list is not a sequence", ErrUnsupportedValue)
		}

		group := OutcomeBets{User: user}
		for i, item := range items {
			bvals, ok := item.(Values)
			if !ok {
				return o, fmt.Errorf("%w: bet %d is not a struct", ErrUnsupportedValue, i)
			}
			bet, err := betFromValues(bvals)
			if err != nil {
				return o, fmt.Errorf("bet %d: %w", i, err)
			}
			group.Bets = append(group.Bets, bet)
		}
		o.Bets = append(o.Bets, group)
	}

	return o, nil
}

func betFromValues(vals Values) (Bet, error) {
	var b Bet
	var err error

	if b.User, err = vals.bytes32("user"); err != nil {
		return b, err
	}
	if b.EventID, err = vals.bytes32("event_id"); err != nil {
		return b, err
	}
	if b.OutcomeID, err = vals.u8("outcome_id"); err != nil {
		return b, err
	}
	if b.Amount, err = vals.u64("amount"); err != nil {
		return b, err
	}
	if b.Timestamp, err = vals.i64("timestamp"); err != nil {
		return b, err
	}

	betType, err := vals.u8("bet_type")
	if err != nil {
		return b, err
	}
	if betType > uint8(BetBuy) {
		return b, fmt.Errorf("%w: bet type %d", ErrUnknownEnumTag, betType)
	}
	b.BetType = BetType(betType)

	return b, nil
}

// Encode serializes the market set back into its canonical byte form.
func (e *EventAccount) Encode() ([]byte, error) {
	predictions := make([]any, 0, len(e.Predictions))
	for _, p := range e.Predictions {
		predictions = append(predictions, p.toValues())
	}

	return Encode(Values{
		"total_predictions": e.TotalPredictions,
		"predictions":       predictions,
	}, EventAccountSchema)
}

func (p Prediction) toValues() Values {
	outcomes := make([]any, 0, len(p.Outcomes))
	for _, o := range p.Outcomes {
		outcomes = append(outcomes, o.toValues())
	}

	var winner any
	if p.WinningOutcome != nil {
		winner = *p.WinningOutcome
	}

	return Values{
		"unique_id":         p.UniqueID[:],
		"creator":           p.Creator[:],
		"expiry_timestamp":  p.ExpiryTimestamp,
		"outcomes":          outcomes,
		"total_pool_amount": p.TotalPoolAmount,
		"status":            uint8(p.Status),
		"winning_outcome":   winner,
	}
}

func (o Outcome) toValues() Values {
	bets := make([]MapEntry, 0, len(o.Bets))
	for _, group := range o.Bets {
		items := make([]any, 0, len(group.Bets))
		for _, b := range group.Bets {
			items = append(items, Values{
				"user":       b.User[:],
				"event_id":   b.EventID[:],
				"outcome_id": b.OutcomeID,
				"amount":     b.Amount,
				"timestamp":  b.Timestamp,
				"bet_type":   uint8(b.BetType),
			})
		}
		user := group.User
		bets = append(bets, MapEntry{Key: user[:], Value: items})
	}

	return Values{
		"id":           o.ID,
		"total_amount": o.TotalAmount,
		"bets":         bets,
	}
}
