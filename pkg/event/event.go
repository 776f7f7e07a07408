// Package event defines the domain types shared by every stage of the
// decoder pipeline: the event kinds a protocol decoder can produce, the
// metadata header attached to every decoded event, the structured position
// index used for reconciliation, and the Event interface callers type-switch
// on to recover a concrete payload.
package event

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Protocol tags a decoder (and every event it produces) with the on-chain
// program family it understands.
type Protocol string

const (
	ProtocolPumpFun  Protocol = "pumpfun"
	ProtocolPumpSwap Protocol = "pumpswap"
	ProtocolBonk     Protocol = "bonk"
)

// Kind identifies the shape of a decoded event's payload.
type Kind string

const (
	KindTokenCreate Kind = "token_create"
	KindTrade       Kind = "trade"
	KindPoolCreate  Kind = "pool_create"
	KindDeposit     Kind = "deposit"
	KindWithdraw    Kind = "withdraw"
)

// Index is the structured position of an event within a transaction,
// replacing the source's dotted-string position key with direct struct
// comparisons (see the reconciliation rules in internal/reconcile).
type Index struct {
	// Top is the position of the top-level instruction.
	Top uint32
	// Inner is the position of the inner instruction beneath Top, or nil
	// if this index refers to a top-level instruction directly.
	Inner *uint32
	// IsLog marks an index sourced from the log stream rather than any
	// instruction.
	IsLog bool
}

// TopLevel builds the index for a top-level instruction at position top.
func TopLevel(top uint32) Index { return Index{Top: top} }

// InnerAt builds the index for an inner instruction at position inner
// beneath top-level instruction top.
func InnerAt(top, inner uint32) Index { return Index{Top: top, Inner: &inner} }

// Log builds the index for a log-sourced event.
func Log() Index { return Index{IsLog: true} }

// String renders the grammar `T | T.I | log` used in diagnostics and in the
// property tests that check index well-formedness.
func (i Index) String() string {
	if i.IsLog {
		return "log"
	}
	if i.Inner != nil {
		return fmt.Sprintf("%d.%d", i.Top, *i.Inner)
	}
	return fmt.Sprintf("%d", i.Top)
}

// HasDot reports whether this index has an inner component, i.e. it came
// from an inner (CPI) instruction rather than a top-level one.
func (i Index) HasDot() bool { return i.Inner != nil }

// TransferRole classifies a token-transfer sub-instruction relative to the
// event it was attributed to.
type TransferRole string

const (
	RoleQuoteIn    TransferRole = "quote_in"
	RoleQuoteOut   TransferRole = "quote_out"
	RoleBaseIn     TransferRole = "base_in"
	RoleBaseOut    TransferRole = "base_out"
	RoleUnclassified TransferRole = "unclassified"
)

// TransferRecord summarizes a token-movement sub-instruction adjacent to an
// event's instruction in the inner-instruction list.
type TransferRecord struct {
	Source      solana.PublicKey
	Destination solana.PublicKey
	Mint        *solana.PublicKey
	Amount      uint64
	Role        TransferRole
}

// Meta holds the fields attached to every decoded event regardless of kind.
type Meta struct {
	ID                    string
	Kind                  Kind
	Protocol              Protocol
	ProgramID             solana.PublicKey
	Signature             string
	Slot                  *uint64
	BlockTimeUnix         *int64
	ProgramReceivedTimeMs int64
	HandlingLatencyMs     int64
	Index                 Index
	IsDevCreateTokenTrade bool
	IsBot                 bool
}

// Event is implemented by one concrete struct per (protocol, kind) pair. A
// Go type switch on Event recovers the concrete payload, replacing the
// runtime downcast the original implementation relied on.
type Event interface {
	// ID is the deterministic id computed by the parser that produced this
	// event. Two partial records describe the same logical event iff their
	// ids match.
	ID() string

	// EventKind reports this event's kind.
	EventKind() Kind

	// Header returns a pointer to the embedded metadata so shared code can
	// read and mutate it (index, flags, latency) without knowing the
	// concrete type.
	Header() *Meta

	// Merge overlays other's log/inner-sourced fields onto this event's
	// instruction-sourced base, per the kind-specific field-precedence
	// table. other must be the same concrete type.
	Merge(other Event)

	// Initiator returns the account that initiated this event (the trade's
	// user/payer, or the create's user), used by the post-processor's
	// dev/bot flagging.
	Initiator() solana.PublicKey

	// CreatorAddresses returns the dev/creator addresses this event
	// contributes to the per-transaction creator set (empty for events that
	// are not creates).
	CreatorAddresses() []solana.PublicKey

	// Transfers returns the transfer records attached to this event.
	Transfers() []TransferRecord

	// AttachTransfers appends transfer records to this event.
	AttachTransfers(t []TransferRecord)

	// TransferRoleSequence returns, as data rather than per-kind code, the
	// roles the reconciler's transfer-attribution scan assigns to the
	// token-transfer sub-instructions it finds in order after this event's
	// position. A create event with no expected transfers returns nil.
	TransferRoleSequence() []TransferRole
}
