package bonk

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// TradeEvent is a Bonk bonding-curve buy or sell.
type TradeEvent struct {
	Meta event.Meta

	PoolState solana.PublicKey
	User      solana.PublicKey

	IsBuy bool

	AmountIn      uint64
	AmountOut     uint64
	VirtualBase   uint64
	VirtualQuote  uint64
	RealBase      uint64
	RealQuote     uint64
	TotalBaseSell uint64

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
	if o.VirtualBase != 0 {
		e.VirtualBase = o.VirtualBase
	}
	if o.VirtualQuote != 0 {
		e.VirtualQuote = o.VirtualQuote
	}
	if o.RealBase != 0 {
		e.RealBase = o.RealBase
	}
	if o.RealQuote != 0 {
		e.RealQuote = o.RealQuote
	}
	if o.TotalBaseSell != 0 {
		e.TotalBaseSell = o.TotalBaseSell
	}
	if o.AmountIn != 0 {
		e.AmountIn = o.AmountIn
	}
	if o.AmountOut != 0 {
		e.AmountOut = o.AmountOut
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
