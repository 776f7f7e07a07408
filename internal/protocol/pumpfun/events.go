package pumpfun

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// CreateEvent is PumpFun's token-creation event: a new bonding-curve mint
// with its metadata and curve accounts.
type CreateEvent struct {
	Meta event.Meta

	Name   string
	Symbol string
	URI    string

	Mint                   solana.PublicKey
	MintAuthority          solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	User                   solana.PublicKey
	Creator                solana.PublicKey
	Timestamp              int64

	transfers []event.TransferRecord
}

func (e *CreateEvent) ID() string            { return e.Meta.ID }
func (e *CreateEvent) EventKind() event.Kind { return event.KindTokenCreate }
func (e *CreateEvent) Header() *event.Meta   { return &e.Meta }

func (e *CreateEvent) Merge(other event.Event) {
	o, ok := other.(*CreateEvent)
	if !ok {
		return
	}
	if !o.Mint.IsZero() {
		e.Mint = o.Mint
	}
	if !o.BondingCurve.IsZero() {
		e.BondingCurve = o.BondingCurve
	}
	if !o.Creator.IsZero() {
		e.Creator = o.Creator
	}
	if o.Timestamp != 0 {
		e.Timestamp = o.Timestamp
	}
	if o.Name != "" {
		e.Name = o.Name
	}
	if o.Symbol != "" {
		e.Symbol = o.Symbol
	}
	if o.URI != "" {
		e.URI = o.URI
	}
}

func (e *CreateEvent) Initiator() solana.PublicKey { return e.User }

func (e *CreateEvent) CreatorAddresses() []solana.PublicKey {
	var out []solana.PublicKey
	if !e.User.IsZero() {
		out = append(out, e.User)
	}
	if !e.Creator.IsZero() && !e.Creator.Equals(e.User) {
		out = append(out, e.Creator)
	}
	return out
}

func (e *CreateEvent) Transfers() []event.TransferRecord { return e.transfers }
func (e *CreateEvent) AttachTransfers(t []event.TransferRecord) {
	e.transfers = append(e.transfers, t...)
}
func (e *CreateEvent) TransferRoleSequence() []event.TransferRole { return nil }

// TradeEvent is a PumpFun buy or sell against a bonding curve. Structural
// fields (accounts, amount, cost/output limit) are authoritative from the
// instruction parser; reserve and fee fields are authoritative from the
// "Program data:" log event and are zero until a merge overlays them (the
// hybrid field-overlay pattern).
type TradeEvent struct {
	Meta event.Meta

	Mint                   solana.PublicKey
	User                   solana.PublicKey
	FeeRecipient           solana.PublicKey
	BondingCurve           solana.PublicKey
	AssociatedBondingCurve solana.PublicKey
	AssociatedUser         solana.PublicKey
	CreatorVault           solana.PublicKey
	Creator                solana.PublicKey

	IsBuy bool

	Amount       uint64
	MaxSolCost   uint64
	MinSolOutput uint64

	SolAmount   uint64
	TokenAmount uint64
	Timestamp   int64

	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	RealSolReserves      uint64
	RealTokenReserves    uint64

	FeeBasisPoints        uint64
	Fee                   uint64
	CreatorFeeBasisPoints uint64
	CreatorFee            uint64

	transfers []event.TransferRecord
}

func (e *TradeEvent) ID() string            { return e.Meta.ID }
func (e *TradeEvent) EventKind() event.Kind { return event.KindTrade }
func (e *TradeEvent) Header() *event.Meta   { return &e.Meta }

// Merge overlays other's log-authoritative fields (reserves, fees, amounts,
// timestamp, fee recipient, creator, mint, user) onto this
// instruction-sourced base, per field whenever other's value is non-zero.
func (e *TradeEvent) Merge(other event.Event) {
	o, ok := other.(*TradeEvent)
	if !ok {
		return
	}
	if o.SolAmount != 0 {
		e.SolAmount = o.SolAmount
	}
	if o.TokenAmount != 0 {
		e.TokenAmount = o.TokenAmount
	}
	if o.Timestamp != 0 {
		e.Timestamp = o.Timestamp
	}
	if o.VirtualSolReserves != 0 {
		e.VirtualSolReserves = o.VirtualSolReserves
	}
	if o.VirtualTokenReserves != 0 {
		e.VirtualTokenReserves = o.VirtualTokenReserves
	}
	if o.RealSolReserves != 0 {
		e.RealSolReserves = o.RealSolReserves
	}
	if o.RealTokenReserves != 0 {
		e.RealTokenReserves = o.RealTokenReserves
	}
	if !o.FeeRecipient.IsZero() {
		e.FeeRecipient = o.FeeRecipient
	}
	if o.FeeBasisPoints != 0 {
		e.FeeBasisPoints = o.FeeBasisPoints
	}
	if o.Fee != 0 {
		e.Fee = o.Fee
	}
	if !o.Creator.IsZero() {
		e.Creator = o.Creator
	}
	if o.CreatorFeeBasisPoints != 0 {
		e.CreatorFeeBasisPoints = o.CreatorFeeBasisPoints
	}
	if o.CreatorFee != 0 {
		e.CreatorFee = o.CreatorFee
	}
	if !o.Mint.IsZero() {
		e.Mint = o.Mint
	}
	if !o.User.IsZero() {
		e.User = o.User
	}
}

func (e *TradeEvent) Initiator() solana.PublicKey          { return e.User }
func (e *TradeEvent) CreatorAddresses() []solana.PublicKey { return nil }
func (e *TradeEvent) Transfers() []event.TransferRecord     { return e.transfers }
func (e *TradeEvent) AttachTransfers(t []event.TransferRecord) {
	e.transfers = append(e.transfers, t...)
}

// TransferRoleSequence returns the two-transfer pattern every PumpFun trade
// makes against its bonding curve: SOL first, then the token (buy) or the
// reverse (sell).
func (e *TradeEvent) TransferRoleSequence() []event.TransferRole {
	if e.IsBuy {
		return []event.TransferRole{event.RoleQuoteIn, event.RoleBaseOut}
	}
	return []event.TransferRole{event.RoleBaseIn, event.RoleQuoteOut}
}
