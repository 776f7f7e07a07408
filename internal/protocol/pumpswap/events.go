package pumpswap

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// TradeEvent is a PumpSwap buy or sell against an AMM pool.
type TradeEvent struct {
	Meta event.Meta

	Pool                             solana.PublicKey
	User                             solana.PublicKey
	UserBaseTokenAccount             solana.PublicKey
	UserQuoteTokenAccount            solana.PublicKey
	ProtocolFeeRecipient             solana.PublicKey
	ProtocolFeeRecipientTokenAccount solana.PublicKey
	CoinCreator                      solana.PublicKey

	IsBuy bool

	BaseAmountOut   uint64
	BaseAmountIn    uint64
	QuoteAmountIn   uint64
	QuoteAmountOut  uint64
	MaxQuoteAmountIn uint64
	MinQuoteAmountOut uint64

	UserBaseTokenReserves  uint64
	UserQuoteTokenReserves uint64
	PoolBaseTokenReserves  uint64
	PoolQuoteTokenReserves uint64

	LPFeeBasisPoints       uint64
	LPFee                  uint64
	ProtocolFeeBasisPoints uint64
	ProtocolFee            uint64
	CoinCreatorFeeBasisPoints uint64
	CoinCreatorFee         uint64

	QuoteAmountInWithLPFee uint64
	UserQuoteAmountIn      uint64

	Timestamp int64

	transfers []event.TransferRecord
}

func (e *TradeEvent) ID() string            { return e.Meta.ID }
func (e *TradeEvent) EventKind() event.Kind { return event.KindTrade }
func (e *TradeEvent) Header() *event.Meta   { return &e.Meta }

func (e *TradeEvent) Merge(other event.Event) {
	o, ok := other.(*TradeEvent)
	if !ok {
		return
	}
	if o.Timestamp != 0 {
		e.Timestamp = o.Timestamp
	}
	if o.UserBaseTokenReserves != 0 {
		e.UserBaseTokenReserves = o.UserBaseTokenReserves
	}
	if o.UserQuoteTokenReserves != 0 {
		e.UserQuoteTokenReserves = o.UserQuoteTokenReserves
	}
	if o.PoolBaseTokenReserves != 0 {
		e.PoolBaseTokenReserves = o.PoolBaseTokenReserves
	}
	if o.PoolQuoteTokenReserves != 0 {
		e.PoolQuoteTokenReserves = o.PoolQuoteTokenReserves
	}
	if o.LPFeeBasisPoints != 0 {
		e.LPFeeBasisPoints = o.LPFeeBasisPoints
	}
	if o.LPFee != 0 {
		e.LPFee = o.LPFee
	}
	if o.ProtocolFeeBasisPoints != 0 {
		e.ProtocolFeeBasisPoints = o.ProtocolFeeBasisPoints
	}
	if o.ProtocolFee != 0 {
		e.ProtocolFee = o.ProtocolFee
	}
	if o.QuoteAmountInWithLPFee != 0 {
		e.QuoteAmountInWithLPFee = o.QuoteAmountInWithLPFee
	}
	if o.UserQuoteAmountIn != 0 {
		e.UserQuoteAmountIn = o.UserQuoteAmountIn
	}
	if !o.ProtocolFeeRecipient.IsZero() {
		e.ProtocolFeeRecipient = o.ProtocolFeeRecipient
	}
	if !o.ProtocolFeeRecipientTokenAccount.IsZero() {
		e.ProtocolFeeRecipientTokenAccount = o.ProtocolFeeRecipientTokenAccount
	}
	if !o.CoinCreator.IsZero() {
		e.CoinCreator = o.CoinCreator
	}
	if o.CoinCreatorFeeBasisPoints != 0 {
		e.CoinCreatorFeeBasisPoints = o.CoinCreatorFeeBasisPoints
	}
	if o.CoinCreatorFee != 0 {
		e.CoinCreatorFee = o.CoinCreatorFee
	}
}

func (e *TradeEvent) Initiator() solana.PublicKey          { return e.User }
func (e *TradeEvent) CreatorAddresses() []solana.PublicKey { return nil }
func (e *TradeEvent) Transfers() []event.TransferRecord     { return e.transfers }
func (e *TradeEvent) AttachTransfers(t []event.TransferRecord) {
	e.transfers = append(e.transfers, t...)
}

func (e *TradeEvent) TransferRoleSequence() []event.TransferRole {
	if e.IsBuy {
		return []event.TransferRole{event.RoleQuoteIn, event.RoleBaseOut}
	}
	return []event.TransferRole{event.RoleBaseIn, event.RoleQuoteOut}
}

// PoolCreateEvent marks a new PumpSwap AMM pool.
type PoolCreateEvent struct {
	Meta event.Meta

	Pool         solana.PublicKey
	Creator      solana.PublicKey
	BaseMint     solana.PublicKey
	QuoteMint    solana.PublicKey
	BaseReserve  uint64
	QuoteReserve uint64

	transfers []event.TransferRecord
}

func (e *PoolCreateEvent) ID() string            { return e.Meta.ID }
func (e *PoolCreateEvent) EventKind() event.Kind { return event.KindPoolCreate }
func (e *PoolCreateEvent) Header() *event.Meta   { return &e.Meta }

func (e *PoolCreateEvent) Merge(other event.Event) {
	o, ok := other.(*PoolCreateEvent)
	if !ok {
		return
	}
	if o.BaseReserve != 0 {
		e.BaseReserve = o.BaseReserve
	}
	if o.QuoteReserve != 0 {
		e.QuoteReserve = o.QuoteReserve
	}
}

func (e *PoolCreateEvent) Initiator() solana.PublicKey { return e.Creator }
func (e *PoolCreateEvent) CreatorAddresses() []solana.PublicKey {
	if e.Creator.IsZero() {
		return nil
	}
	return []solana.PublicKey{e.Creator}
}
func (e *PoolCreateEvent) Transfers() []event.TransferRecord { return e.transfers }
func (e *PoolCreateEvent) AttachTransfers(t []event.TransferRecord) {
	e.transfers = append(e.transfers, t...)
}
func (e *PoolCreateEvent) TransferRoleSequence() []event.TransferRole { return nil }

// LiquidityEvent covers both deposit and withdraw: a liquidity provider
// adding or removing base/quote reserves from a pool.
type LiquidityEvent struct {
	Meta event.Meta

	Pool         solana.PublicKey
	User         solana.PublicKey
	BaseAmount   uint64
	QuoteAmount  uint64
	LPTokenAmount uint64

	withdraw bool

	transfers []event.TransferRecord
}

func (e *LiquidityEvent) ID() string { return e.Meta.ID }
func (e *LiquidityEvent) EventKind() event.Kind {
	if e.withdraw {
		return event.KindWithdraw
	}
	return event.KindDeposit
}
func (e *LiquidityEvent) Header() *event.Meta { return &e.Meta }

func (e *LiquidityEvent) Merge(other event.Event) {
	o, ok := other.(*LiquidityEvent)
	if !ok {
		return
	}
	if o.BaseAmount != 0 {
		e.BaseAmount = o.BaseAmount
	}
	if o.QuoteAmount != 0 {
		e.QuoteAmount = o.QuoteAmount
	}
	if o.LPTokenAmount != 0 {
		e.LPTokenAmount = o.LPTokenAmount
	}
}

func (e *LiquidityEvent) Initiator() solana.PublicKey          { return e.User }
func (e *LiquidityEvent) CreatorAddresses() []solana.PublicKey { return nil }
func (e *LiquidityEvent) Transfers() []event.TransferRecord     { return e.transfers }
func (e *LiquidityEvent) AttachTransfers(t []event.TransferRecord) {
	e.transfers = append(e.transfers, t...)
}

func (e *LiquidityEvent) TransferRoleSequence() []event.TransferRole {
	if e.withdraw {
		return []event.TransferRole{event.RoleQuoteOut, event.RoleBaseOut}
	}
	return []event.TransferRole{event.RoleQuoteIn, event.RoleBaseIn}
}
