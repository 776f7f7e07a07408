// Package bonk decodes Bonk bonding-curve buy/sell trade events.
package bonk

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

// ProgramID is the Bonk (letsbonk.fun) launch program.
var ProgramID = solana.MustPublicKeyFromBase58("LanMV9sAd7wArD4vJFi2qDdfnVhFxYSUg6eADduJ3uj")

var (
	buyIxDiscriminator  = []byte{250, 234, 13, 123, 213, 156, 19, 236}
	sellIxDiscriminator = []byte{149, 39, 222, 155, 211, 124, 152, 26}
)

var tradeEventDiscriminatorBytes = []byte{189, 219, 127, 211, 78, 230, 97, 238}

// tradeEventDiscriminator is the 8-byte event discriminator as it appears
// prefixed onto a "Program data:" log line — the only form
// parseTradeFromLogs compares against directly.
var tradeEventDiscriminator = discriminator.KeyFromBytes(tradeEventDiscriminatorBytes, 8)

// cpiEventSelector is the fixed 8-byte discriminator of Anchor's self-CPI
// "emit_cpi" instruction. An inner/CPI instruction carrying an event is
// this selector followed by the 8-byte event discriminator, 16 bytes
// total — distinct from the 8-byte log-only form above.
var cpiEventSelector = []byte{228, 69, 165, 46, 81, 203, 154, 29}

// tradeEventInnerDiscriminator is the 16-byte primary inner-instruction
// discriminator registry.Config.InnerDiscriminator needs; its secondary
// (trailing-half) form, derived automatically by
// discriminator.SplitLogDiscriminator, is exactly tradeEventDiscriminator.
var tradeEventInnerDiscriminator = discriminator.KeyFromBytes(append(append([]byte{}, cpiEventSelector...), tradeEventDiscriminatorBytes...), discriminator.InnerInstructionLen)

const logPrefix = "Program data: "

// New builds the Bonk protocol decoder.
func New() *base.Decoder {
	configs := []registry.Config{
		{
			Kind:                     event.KindTrade,
			InstructionDiscriminator: buyIxDiscriminator,
			InnerDiscriminator:       tradeEventInnerDiscriminator,
			InstructionParserFunc:    instructionParser(true),
			InnerInstructionParser:   innerTradeParser,
		},
		{
			Kind:                     event.KindTrade,
			InstructionDiscriminator: sellIxDiscriminator,
			InnerDiscriminator:       tradeEventInnerDiscriminator,
			InstructionParserFunc:    instructionParser(false),
			InnerInstructionParser:   innerTradeParser,
		},
	}
	return base.New(ProgramID, event.ProtocolBonk, configs)
}

type tradeEventPayload struct {
	PoolState     solana.PublicKey
	User          solana.PublicKey
	IsBuy         bool
	AmountIn      uint64
	AmountOut     uint64
	VirtualBase   uint64
	VirtualQuote  uint64
	RealBase      uint64
	RealQuote     uint64
	TotalBaseSell uint64
}

func tradeID(sig string, poolState, user solana.PublicKey, isBuy bool) string {
	return sig + "-" + poolState.String() + "-" + user.String() + "-" + boolString(isBuy)
}

func toTradeEvent(meta event.Meta, p tradeEventPayload) *TradeEvent {
	meta.Kind = event.KindTrade
	meta.ID = tradeID(meta.Signature, p.PoolState, p.User, p.IsBuy)
	return &TradeEvent{
		Meta:          meta,
		PoolState:     p.PoolState,
		User:          p.User,
		IsBuy:         p.IsBuy,
		AmountIn:      p.AmountIn,
		AmountOut:     p.AmountOut,
		VirtualBase:   p.VirtualBase,
		VirtualQuote:  p.VirtualQuote,
		RealBase:      p.RealBase,
		RealQuote:     p.RealQuote,
		TotalBaseSell: p.TotalBaseSell,
	}
}

func innerTradeParser(data []byte, meta event.Meta, _ []string) (event.Event, bool) {
	var p tradeEventPayload
	if err := bin.NewBorshDecoder(data).Decode(&p); err != nil {
		return nil, false
	}
	return toTradeEvent(meta, p), true
}

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
		var p tradeEventPayload
		if err := bin.NewBorshDecoder(decoded[8:]).Decode(&p); err != nil {
			continue
		}
		return toTradeEvent(meta, p), true
	}
	return nil, false
}

// instructionParser prefers the log-sourced event (full virtual/real reserve
// data) and overlays instruction-sourced structural fields, matching the
// same hybrid pattern PumpFun and PumpSwap use.
func instructionParser(isBuy bool) func([]byte, []solana.PublicKey, event.Meta, []string) (event.Event, bool) {
	return func(data []byte, accounts []solana.PublicKey, meta event.Meta, logLines []string) (event.Event, bool) {
		if ev, ok := parseTradeFromLogs(meta, logLines); ok {
			overlayStructuralFields(ev, data, accounts, isBuy)
			return ev, true
		}
		return parseTradeInstructionFallback(data, accounts, meta, isBuy)
	}
}

func overlayStructuralFields(ev *TradeEvent, data []byte, accounts []solana.PublicKey, isBuy bool) {
	if len(data) < 16 || len(accounts) < 2 {
		return
	}
	amountIn, _ := codec.ReadU64LE(data[0:8])
	amountOut, _ := codec.ReadU64LE(data[8:16])
	ev.PoolState = accounts[0]
	ev.User = accounts[1]
	ev.AmountIn = amountIn
	ev.AmountOut = amountOut
	ev.IsBuy = isBuy
}

func parseTradeInstructionFallback(data []byte, accounts []solana.PublicKey, meta event.Meta, isBuy bool) (event.Event, bool) {
	if len(data) < 16 || len(accounts) < 2 {
		return nil, false
	}
	amountIn, _ := codec.ReadU64LE(data[0:8])
	amountOut, _ := codec.ReadU64LE(data[8:16])

	meta.Kind = event.KindTrade
	meta.ID = tradeID(meta.Signature, accounts[0], accounts[1], isBuy)

	return &TradeEvent{
		Meta:      meta,
		PoolState: accounts[0],
		User:      accounts[1],
		IsBuy:     isBuy,
		AmountIn:  amountIn,
		AmountOut: amountOut,
	}, true
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
