// Package pumpfun decodes PumpFun bonding-curve token-create and buy/sell
// trade events, combining instruction-sourced structural fields with
// log-sourced reserve/fee fields via the hybrid overlay pattern.
package pumpfun

import (
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/protocol/base"
	"github.com/lugondev/go-chain-decoder/internal/registry"
	"github.com/lugondev/go-chain-decoder/pkg/codec"
	"github.com/lugondev/go-chain-decoder/pkg/discriminator"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// ProgramID is the PumpFun bonding-curve program.
var ProgramID = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")

// Instruction discriminators, the first 8 bytes of each instruction's data,
// computed as the Anchor global:<name> sighash.
var (
	createIxDiscriminator = []byte{24, 30, 200, 40, 5, 28, 7, 119}
	buyIxDiscriminator    = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	sellIxDiscriminator   = []byte{51, 230, 133, 164, 1, 127, 131, 173}
)

// Event discriminators: the Anchor event sighash, 8 bytes, as it appears
// prefixed onto every "Program data:" log line. tradeEventDiscriminator is
// the only one compared against a log line directly (parseTradeFromLogs);
// PumpFun's create event has no hand-rolled log scan, only the registry
// inner-instruction path, so createEventDiscriminatorBytes only feeds
// createEventInnerDiscriminator below.
var (
	createEventDiscriminatorBytes = []byte{27, 114, 169, 77, 222, 235, 99, 118}
	tradeEventDiscriminatorBytes  = []byte{189, 219, 127, 211, 78, 230, 97, 238}

	tradeEventDiscriminator = discriminator.KeyFromBytes(tradeEventDiscriminatorBytes, 8)
)

// cpiEventSelector is the fixed 8-byte discriminator of Anchor's self-CPI
// "emit_cpi" instruction, the same across every event this program emits
// that way. An inner/CPI instruction carrying an event is this selector
// followed by the 8-byte event discriminator above, for 16 bytes total —
// distinct from the 8-byte form a "Program data:" log line carries alone.
var cpiEventSelector = []byte{228, 69, 165, 46, 81, 203, 154, 29}

func innerDiscriminatorFor(eventBytes []byte) discriminator.Key {
	return discriminator.KeyFromBytes(append(append([]byte{}, cpiEventSelector...), eventBytes...), discriminator.InnerInstructionLen)
}

// Inner-instruction discriminators: the 16-byte primary form (CPI event
// selector + event discriminator) registry.Config.InnerDiscriminator needs
// to recognize a self-CPI instruction; its secondary (trailing-half) form,
// derived automatically by discriminator.SplitLogDiscriminator, is exactly
// the 8-byte log discriminator above.
var (
	createEventInnerDiscriminator = innerDiscriminatorFor(createEventDiscriminatorBytes)
	tradeEventInnerDiscriminator  = innerDiscriminatorFor(tradeEventDiscriminatorBytes)
)

const logPrefix = "Program data: "

// New builds the PumpFun protocol decoder.
func New() *base.Decoder {
	configs := []registry.Config{
		{
			Kind:                     event.KindTokenCreate,
			InstructionDiscriminator: createIxDiscriminator,
			InnerDiscriminator:       createEventInnerDiscriminator,
			InstructionParserFunc:    parseCreateInstruction,
			InnerInstructionParser:   parseCreateInner,
		},
		{
			Kind:                     event.KindTrade,
			InstructionDiscriminator: buyIxDiscriminator,
			InnerDiscriminator:       tradeEventInnerDiscriminator,
			InstructionParserFunc:    parseBuyInstructionHybrid,
			InnerInstructionParser:   parseTradeInner,
		},
		{
			Kind:                     event.KindTrade,
			InstructionDiscriminator: sellIxDiscriminator,
			InnerDiscriminator:       tradeEventInnerDiscriminator,
			InstructionParserFunc:    parseSellInstructionHybrid,
			InnerInstructionParser:   parseTradeInner,
		},
	}
	return base.New(ProgramID, event.ProtocolPumpFun, configs)
}

func parseCreateInstruction(data []byte, accounts []solana.PublicKey, meta event.Meta, _ []string) (event.Event, bool) {
	if len(data) < 16 || len(accounts) < 8 {
		return nil, false
	}
	body := data[8:]

	name, rest, err := codec.ReadString(body)
	if err != nil {
		return nil, false
	}
	symbol, rest, err := codec.ReadString(rest)
	if err != nil {
		return nil, false
	}
	uri, rest, err := codec.ReadString(rest)
	if err != nil {
		return nil, false
	}
	var creator solana.PublicKey
	if len(rest) >= 32 {
		creator, _ = codec.ReadPubkey(rest)
	}

	meta.Kind = event.KindTokenCreate
	meta.ID = meta.Signature + "-" + name + "-" + symbol + "-" + accounts[0].String()

	return &CreateEvent{
		Meta:                   meta,
		Name:                   name,
		Symbol:                 symbol,
		URI:                    uri,
		Creator:                creator,
		Mint:                   accounts[0],
		MintAuthority:          accounts[1],
		BondingCurve:           accounts[2],
		AssociatedBondingCurve: accounts[3],
		User:                   accounts[7],
	}, true
}

func parseCreateInner(data []byte, meta event.Meta, _ []string) (event.Event, bool) {
	var ev createEventPayload
	if err := bin.NewBorshDecoder(data).Decode(&ev); err != nil {
		return nil, false
	}

	meta.Kind = event.KindTokenCreate
	meta.ID = meta.Signature + "-" + ev.Name + "-" + ev.Symbol + "-" + ev.Mint.String()

	return &CreateEvent{
		Meta:         meta,
		Name:         ev.Name,
		Symbol:       ev.Symbol,
		URI:          ev.URI,
		Mint:         ev.Mint,
		BondingCurve: ev.BondingCurve,
		User:         ev.User,
		Creator:      ev.Creator,
		Timestamp:    ev.Timestamp,
	}, true
}

type createEventPayload struct {
	Name         string
	Symbol       string
	URI          string
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	User         solana.PublicKey
	Creator      solana.PublicKey
	Timestamp    int64
}

// parseTradeFromLogs scans log lines for a "Program data:" entry carrying
// the trade-event discriminator and borsh-decodes it, independent of which
// instruction (buy or sell) is currently being parsed.
func parseTradeFromLogs(meta event.Meta, logLines []string) (*TradeEvent, bool) {
	for _, line := range logLines {
		data, ok := strings.CutPrefix(line, logPrefix)
		if !ok {
			continue
		}
		decoded, err := codec.DecodeBase64(data)
		if err != nil || len(decoded) < 8 {
			continue
		}
		if discriminator.KeyFromBytes(decoded, 8) != tradeEventDiscriminator {
			continue
		}

		var payload tradeEventPayload
		if err := bin.NewBorshDecoder(decoded[8:]).Decode(&payload); err != nil {
			continue
		}

		m := meta
		m.Kind = event.KindTrade
		m.ID = m.Signature + "-" + payload.Mint.String() + "-" + payload.User.String() + "-" + boolString(payload.IsBuy)

		return &TradeEvent{
			Meta:                  m,
			Mint:                  payload.Mint,
			User:                  payload.User,
			IsBuy:                 payload.IsBuy,
			SolAmount:             payload.SolAmount,
			TokenAmount:           payload.TokenAmount,
			Timestamp:             payload.Timestamp,
			VirtualSolReserves:    payload.VirtualSolReserves,
			VirtualTokenReserves:  payload.VirtualTokenReserves,
			RealSolReserves:       payload.RealSolReserves,
			RealTokenReserves:     payload.RealTokenReserves,
			FeeRecipient:          payload.FeeRecipient,
			FeeBasisPoints:        payload.FeeBasisPoints,
			Fee:                   payload.Fee,
			Creator:               payload.Creator,
			CreatorFeeBasisPoints: payload.CreatorFeeBasisPoints,
			CreatorFee:            payload.CreatorFee,
		}, true
	}
	return nil, false
}

type tradeEventPayload struct {
	Mint                  solana.PublicKey
	SolAmount             uint64
	TokenAmount           uint64
	IsBuy                 bool
	User                  solana.PublicKey
	Timestamp             int64
	VirtualSolReserves    uint64
	VirtualTokenReserves  uint64
	RealSolReserves       uint64
	RealTokenReserves     uint64
	FeeRecipient          solana.PublicKey
	FeeBasisPoints        uint64
	Fee                   uint64
	Creator               solana.PublicKey
	CreatorFeeBasisPoints uint64
	CreatorFee            uint64
}

func parseTradeInner(data []byte, meta event.Meta, logLines []string) (event.Event, bool) {
	if ev, ok := parseTradeFromLogs(meta, logLines); ok {
		return ev, true
	}

	var payload tradeEventPayload
	if err := bin.NewBorshDecoder(data).Decode(&payload); err != nil {
		return nil, false
	}
	meta.Kind = event.KindTrade
	meta.ID = meta.Signature + "-" + payload.Mint.String() + "-" + payload.User.String() + "-" + boolString(payload.IsBuy)
	return &TradeEvent{
		Meta:        meta,
		Mint:        payload.Mint,
		User:        payload.User,
		IsBuy:       payload.IsBuy,
		SolAmount:   payload.SolAmount,
		TokenAmount: payload.TokenAmount,
		Timestamp:   payload.Timestamp,
	}, true
}

// parseBuyInstructionHybrid tries the log-sourced event first (it carries
// full reserve/fee data), then fills the structural fields the log event's
// #[borsh(skip)] equivalent leaves empty from the instruction's own
// accounts and data. If no log event is present it falls back to an
// instruction-only event with reserve/fee fields left zero for a later
// merge to overlay.
func parseBuyInstructionHybrid(data []byte, accounts []solana.PublicKey, meta event.Meta, logLines []string) (event.Event, bool) {
	if ev, ok := parseTradeFromLogs(meta, logLines); ok {
		overlayBuyStructuralFields(ev, data, accounts)
		return ev, true
	}
	return parseBuyInstructionFallback(data, accounts, meta)
}

func parseSellInstructionHybrid(data []byte, accounts []solana.PublicKey, meta event.Meta, logLines []string) (event.Event, bool) {
	if ev, ok := parseTradeFromLogs(meta, logLines); ok {
		overlaySellStructuralFields(ev, data, accounts)
		return ev, true
	}
	return parseSellInstructionFallback(data, accounts, meta)
}

func overlayBuyStructuralFields(ev *TradeEvent, data []byte, accounts []solana.PublicKey) {
	if len(data) < 16 || len(accounts) < 11 {
		return
	}
	amount, _ := codec.ReadU64LE(data[0:8])
	maxSolCost, _ := codec.ReadU64LE(data[8:16])
	ev.BondingCurve = accounts[3]
	ev.AssociatedBondingCurve = accounts[4]
	ev.AssociatedUser = accounts[5]
	ev.CreatorVault = accounts[8]
	ev.Amount = amount
	ev.MaxSolCost = maxSolCost
	ev.IsBuy = true
}

func overlaySellStructuralFields(ev *TradeEvent, data []byte, accounts []solana.PublicKey) {
	if len(data) < 16 || len(accounts) < 11 {
		return
	}
	amount, _ := codec.ReadU64LE(data[0:8])
	minSolOutput, _ := codec.ReadU64LE(data[8:16])
	ev.BondingCurve = accounts[3]
	ev.AssociatedBondingCurve = accounts[4]
	ev.AssociatedUser = accounts[5]
	ev.CreatorVault = accounts[8]
	ev.Amount = amount
	ev.MinSolOutput = minSolOutput
	ev.IsBuy = false
}

func parseBuyInstructionFallback(data []byte, accounts []solana.PublicKey, meta event.Meta) (event.Event, bool) {
	if len(data) < 16 || len(accounts) < 11 {
		return nil, false
	}
	amount, _ := codec.ReadU64LE(data[0:8])
	maxSolCost, _ := codec.ReadU64LE(data[8:16])

	meta.Kind = event.KindTrade
	meta.ID = meta.Signature + "-" + accounts[2].String() + "-" + accounts[6].String() + "-true"

	return &TradeEvent{
		Meta:                   meta,
		FeeRecipient:           accounts[1],
		Mint:                   accounts[2],
		BondingCurve:           accounts[3],
		AssociatedBondingCurve: accounts[4],
		AssociatedUser:         accounts[5],
		User:                   accounts[6],
		CreatorVault:           accounts[8],
		MaxSolCost:             maxSolCost,
		Amount:                 amount,
		IsBuy:                  true,
	}, true
}

func parseSellInstructionFallback(data []byte, accounts []solana.PublicKey, meta event.Meta) (event.Event, bool) {
	if len(data) < 16 || len(accounts) < 11 {
		return nil, false
	}
	amount, _ := codec.ReadU64LE(data[0:8])
	minSolOutput, _ := codec.ReadU64LE(data[8:16])

	meta.Kind = event.KindTrade
	meta.ID = meta.Signature + "-" + accounts[2].String() + "-" + accounts[6].String() + "-false"

	return &TradeEvent{
		Meta:                   meta,
		FeeRecipient:           accounts[1],
		Mint:                   accounts[2],
		BondingCurve:           accounts[3],
		AssociatedBondingCurve: accounts[4],
		AssociatedUser:         accounts[5],
		User:                   accounts[6],
		CreatorVault:           accounts[8],
		MinSolOutput:           minSolOutput,
		Amount:                 amount,
		IsBuy:                  false,
	}, true
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
