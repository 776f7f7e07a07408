// Package pumpswap decodes PumpSwap AMM pool events: buy/sell trades,
// pool creation, and deposit/withdraw liquidity changes.
package pumpswap

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

// ProgramID is the PumpSwap AMM program.
var ProgramID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")

var (
	buyIxDiscriminator        = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	sellIxDiscriminator       = []byte{51, 230, 133, 164, 1, 127, 131, 173}
	createPoolIxDiscriminator = []byte{233, 146, 209, 142, 207, 104, 64, 188}
	depositIxDiscriminator    = []byte{242, 35, 198, 137, 82, 225, 242, 182}
	withdrawIxDiscriminator   = []byte{183, 18, 70, 156, 148, 109, 161, 34}
)

// Event discriminators: the 8-byte Anchor event sighash as it appears
// prefixed onto a "Program data:" log line. Only buy/sell have a
// hand-rolled log scan (parseTradeFromLogs) that compares against one of
// these directly; pool-create and deposit/withdraw have no such hybrid
// path (see DESIGN.md), so their bytes only feed the inner-instruction
// discriminators below.
var (
	buyEventDiscriminatorBytes        = []byte{103, 244, 82, 31, 44, 245, 119, 119}
	sellEventDiscriminatorBytes       = []byte{62, 47, 55, 10, 165, 3, 220, 42}
	createPoolEventDiscriminatorBytes = []byte{177, 49, 12, 210, 160, 118, 167, 116}
	depositEventDiscriminatorBytes    = []byte{120, 248, 61, 83, 31, 142, 107, 144}
	withdrawEventDiscriminatorBytes   = []byte{22, 9, 133, 26, 160, 44, 71, 192}

	buyEventDiscriminator  = discriminator.KeyFromBytes(buyEventDiscriminatorBytes, 8)
	sellEventDiscriminator = discriminator.KeyFromBytes(sellEventDiscriminatorBytes, 8)
)

// cpiEventSelector is the fixed 8-byte discriminator of Anchor's self-CPI
// "emit_cpi" instruction. An inner/CPI instruction carrying an event is
// this selector followed by the event's own 8-byte discriminator, 16
// bytes total — distinct from the 8-byte log-only forms above.
var cpiEventSelector = []byte{228, 69, 165, 46, 81, 203, 154, 29}

func innerDiscriminatorFor(eventBytes []byte) discriminator.Key {
	return discriminator.KeyFromBytes(append(append([]byte{}, cpiEventSelector...), eventBytes...), discriminator.InnerInstructionLen)
}

// Inner-instruction discriminators: the 16-byte primary form
// registry.Config.InnerDiscriminator needs to recognize a self-CPI
// instruction; each one's secondary (trailing-half) form, derived
// automatically by discriminator.SplitLogDiscriminator, is exactly the
// corresponding 8-byte log discriminator above.
var (
	buyEventInnerDiscriminator        = innerDiscriminatorFor(buyEventDiscriminatorBytes)
	sellEventInnerDiscriminator       = innerDiscriminatorFor(sellEventDiscriminatorBytes)
	createPoolEventInnerDiscriminator = innerDiscriminatorFor(createPoolEventDiscriminatorBytes)
	depositEventInnerDiscriminator    = innerDiscriminatorFor(depositEventDiscriminatorBytes)
	withdrawEventInnerDiscriminator   = innerDiscriminatorFor(withdrawEventDiscriminatorBytes)
)

const logPrefix = "Program data: "

// New builds the PumpSwap protocol decoder.
func New() *base.Decoder {
	configs := []registry.Config{
		{
			Kind:                     event.KindTrade,
			InstructionDiscriminator: buyIxDiscriminator,
			InnerDiscriminator:       buyEventInnerDiscriminator,
			InstructionParserFunc:    instructionParser(true),
			InnerInstructionParser:   innerTradeParser(true),
		},
		{
			Kind:                     event.KindTrade,
			InstructionDiscriminator: sellIxDiscriminator,
			InnerDiscriminator:       sellEventInnerDiscriminator,
			InstructionParserFunc:    instructionParser(false),
			InnerInstructionParser:   innerTradeParser(false),
		},
		{
			Kind:                     event.KindPoolCreate,
			InstructionDiscriminator: createPoolIxDiscriminator,
			InnerDiscriminator:       createPoolEventInnerDiscriminator,
			InstructionParserFunc:    parsePoolCreateInstruction,
			InnerInstructionParser:   parsePoolCreateInner,
		},
		{
			Kind:                     event.KindDeposit,
			InstructionDiscriminator: depositIxDiscriminator,
			InnerDiscriminator:       depositEventInnerDiscriminator,
			InstructionParserFunc:    liquidityInstructionParser(false),
			InnerInstructionParser:   liquidityInnerParser(false),
		},
		{
			Kind:                     event.KindWithdraw,
			InstructionDiscriminator: withdrawIxDiscriminator,
			InnerDiscriminator:       withdrawEventInnerDiscriminator,
			InstructionParserFunc:    liquidityInstructionParser(true),
			InnerInstructionParser:   liquidityInnerParser(true),
		},
	}
	return base.New(ProgramID, event.ProtocolPumpSwap, configs)
}

type tradeEventPayload struct {
	Timestamp                int64
	BaseAmountOut            uint64
	MaxQuoteAmountIn         uint64
	UserBaseTokenReserves    uint64
	UserQuoteTokenReserves   uint64
	PoolBaseTokenReserves    uint64
	PoolQuoteTokenReserves   uint64
	QuoteAmountIn            uint64
	LPFeeBasisPoints         uint64
	LPFee                    uint64
	ProtocolFeeBasisPoints   uint64
	ProtocolFee              uint64
	QuoteAmountInWithLPFee   uint64
	UserQuoteAmountIn        uint64
	Pool                     solana.PublicKey
	User                     solana.PublicKey
	UserBaseTokenAccount     solana.PublicKey
	UserQuoteTokenAccount    solana.PublicKey
	ProtocolFeeRecipient     solana.PublicKey
	ProtocolFeeRecipientTokenAccount solana.PublicKey
	CoinCreator              solana.PublicKey
	CoinCreatorFeeBasisPoints uint64
	CoinCreatorFee           uint64
}

func tradeID(sig string, pool, user solana.PublicKey, isBuy bool) string {
	return sig + "-" + pool.String() + "-" + user.String() + "-" + boolString(isBuy)
}

func toTradeEvent(meta event.Meta, p tradeEventPayload, isBuy bool) *TradeEvent {
	meta.Kind = event.KindTrade
	meta.ID = tradeID(meta.Signature, p.Pool, p.User, isBuy)
	ev := &TradeEvent{
		Meta:                             meta,
		Pool:                             p.Pool,
		User:                             p.User,
		UserBaseTokenAccount:             p.UserBaseTokenAccount,
		UserQuoteTokenAccount:            p.UserQuoteTokenAccount,
		ProtocolFeeRecipient:             p.ProtocolFeeRecipient,
		ProtocolFeeRecipientTokenAccount: p.ProtocolFeeRecipientTokenAccount,
		CoinCreator:                      p.CoinCreator,
		IsBuy:                            isBuy,
		QuoteAmountIn:                    p.QuoteAmountIn,
		MaxQuoteAmountIn:                 p.MaxQuoteAmountIn,
		UserBaseTokenReserves:            p.UserBaseTokenReserves,
		UserQuoteTokenReserves:           p.UserQuoteTokenReserves,
		PoolBaseTokenReserves:            p.PoolBaseTokenReserves,
		PoolQuoteTokenReserves:           p.PoolQuoteTokenReserves,
		LPFeeBasisPoints:                 p.LPFeeBasisPoints,
		LPFee:                            p.LPFee,
		ProtocolFeeBasisPoints:           p.ProtocolFeeBasisPoints,
		ProtocolFee:                      p.ProtocolFee,
		QuoteAmountInWithLPFee:           p.QuoteAmountInWithLPFee,
		UserQuoteAmountIn:                p.UserQuoteAmountIn,
		CoinCreatorFeeBasisPoints:        p.CoinCreatorFeeBasisPoints,
		CoinCreatorFee:                   p.CoinCreatorFee,
		Timestamp:                        p.Timestamp,
	}
	if isBuy {
		ev.BaseAmountOut = p.BaseAmountOut
	} else {
		ev.BaseAmountIn = p.BaseAmountOut
	}
	return ev
}

func parseTradeFromLogs(meta event.Meta, logLines []string, isBuy bool, want discriminator.Key) (*TradeEvent, bool) {
	for _, line := range logLines {
		data, ok := strings.CutPrefix(line, logPrefix)
		if !ok {
			continue
		}
		decoded, err := codec.DecodeBase64(data)
		if err != nil || len(decoded) < 8 {
			continue
		}
		if discriminator.KeyFromBytes(decoded, 8) != want {
			continue
		}
		var payload tradeEventPayload
		if err := bin.NewBorshDecoder(decoded[8:]).Decode(&payload); err != nil {
			continue
		}
		return toTradeEvent(meta, payload, isBuy), true
	}
	return nil, false
}

func innerTradeParser(isBuy bool) func([]byte, event.Meta, []string) (event.Event, bool) {
	return func(data []byte, meta event.Meta, _ []string) (event.Event, bool) {
		var payload tradeEventPayload
		if err := bin.NewBorshDecoder(data).Decode(&payload); err != nil {
			return nil, false
		}
		return toTradeEvent(meta, payload, isBuy), true
	}
}

// instructionParser returns the top-level-instruction parser for buy or
// sell, preferring the log-sourced event (full reserve/fee data) and
// overlaying instruction-sourced structural fields, exactly as PumpFun's
// hybrid pattern does.
func instructionParser(isBuy bool) func([]byte, []solana.PublicKey, event.Meta, []string) (event.Event, bool) {
	want := sellEventDiscriminator
	if isBuy {
		want = buyEventDiscriminator
	}
	return func(data []byte, accounts []solana.PublicKey, meta event.Meta, logLines []string) (event.Event, bool) {
		if ev, ok := parseTradeFromLogs(meta, logLines, isBuy, want); ok {
			overlayTradeStructuralFields(ev, data, accounts, isBuy)
			return ev, true
		}
		return parseTradeInstructionFallback(data, accounts, meta, isBuy)
	}
}

func overlayTradeStructuralFields(ev *TradeEvent, data []byte, accounts []solana.PublicKey, isBuy bool) {
	if len(data) < 16 || len(accounts) < 3 {
		return
	}
	amount, _ := codec.ReadU64LE(data[0:8])
	limit, _ := codec.ReadU64LE(data[8:16])
	ev.Pool = accounts[0]
	ev.User = accounts[1]
	if isBuy {
		ev.BaseAmountOut = amount
		ev.MaxQuoteAmountIn = limit
	} else {
		ev.BaseAmountIn = amount
		ev.MinQuoteAmountOut = limit
	}
}

func parseTradeInstructionFallback(data []byte, accounts []solana.PublicKey, meta event.Meta, isBuy bool) (event.Event, bool) {
	if len(data) < 16 || len(accounts) < 3 {
		return nil, false
	}
	amount, _ := codec.ReadU64LE(data[0:8])
	limit, _ := codec.ReadU64LE(data[8:16])

	meta.Kind = event.KindTrade
	meta.ID = tradeID(meta.Signature, accounts[0], accounts[1], isBuy)

	ev := &TradeEvent{
		Meta:  meta,
		Pool:  accounts[0],
		User:  accounts[1],
		IsBuy: isBuy,
	}
	if isBuy {
		ev.BaseAmountOut = amount
		ev.MaxQuoteAmountIn = limit
	} else {
		ev.BaseAmountIn = amount
		ev.MinQuoteAmountOut = limit
	}
	return ev, true
}

type poolCreatePayload struct {
	Pool         solana.PublicKey
	Creator      solana.PublicKey
	BaseMint     solana.PublicKey
	QuoteMint    solana.PublicKey
	BaseReserve  uint64
	QuoteReserve uint64
}

func parsePoolCreateInstruction(data []byte, accounts []solana.PublicKey, meta event.Meta, _ []string) (event.Event, bool) {
	if len(accounts) < 4 {
		return nil, false
	}
	meta.Kind = event.KindPoolCreate
	meta.ID = meta.Signature + "-" + accounts[0].String()
	return &PoolCreateEvent{
		Meta:      meta,
		Pool:      accounts[0],
		Creator:   accounts[1],
		BaseMint:  accounts[2],
		QuoteMint: accounts[3],
	}, true
}

func parsePoolCreateInner(data []byte, meta event.Meta, _ []string) (event.Event, bool) {
	var p poolCreatePayload
	if err := bin.NewBorshDecoder(data).Decode(&p); err != nil {
		return nil, false
	}
	meta.Kind = event.KindPoolCreate
	meta.ID = meta.Signature + "-" + p.Pool.String()
	return &PoolCreateEvent{
		Meta:         meta,
		Pool:         p.Pool,
		Creator:      p.Creator,
		BaseMint:     p.BaseMint,
		QuoteMint:    p.QuoteMint,
		BaseReserve:  p.BaseReserve,
		QuoteReserve: p.QuoteReserve,
	}, true
}

type liquidityPayload struct {
	Pool          solana.PublicKey
	User          solana.PublicKey
	BaseAmount    uint64
	QuoteAmount   uint64
	LPTokenAmount uint64
}

func liquidityID(sig string, pool, user solana.PublicKey, withdraw bool) string {
	return sig + "-" + pool.String() + "-" + user.String() + "-" + boolString(withdraw)
}

func liquidityInstructionParser(withdraw bool) func([]byte, []solana.PublicKey, event.Meta, []string) (event.Event, bool) {
	return func(data []byte, accounts []solana.PublicKey, meta event.Meta, _ []string) (event.Event, bool) {
		if len(data) < 24 || len(accounts) < 2 {
			return nil, false
		}
		lpAmount, _ := codec.ReadU64LE(data[0:8])
		baseAmount, _ := codec.ReadU64LE(data[8:16])
		quoteAmount, _ := codec.ReadU64LE(data[16:24])

		meta.Kind = kindFor(withdraw)
		meta.ID = liquidityID(meta.Signature, accounts[0], accounts[1], withdraw)

		return &LiquidityEvent{
			Meta:          meta,
			Pool:          accounts[0],
			User:          accounts[1],
			BaseAmount:    baseAmount,
			QuoteAmount:   quoteAmount,
			LPTokenAmount: lpAmount,
			withdraw:      withdraw,
		}, true
	}
}

func liquidityInnerParser(withdraw bool) func([]byte, event.Meta, []string) (event.Event, bool) {
	return func(data []byte, meta event.Meta, _ []string) (event.Event, bool) {
		var p liquidityPayload
		if err := bin.NewBorshDecoder(data).Decode(&p); err != nil {
			return nil, false
		}
		meta.Kind = kindFor(withdraw)
		meta.ID = liquidityID(meta.Signature, p.Pool, p.User, withdraw)
		return &LiquidityEvent{
			Meta:          meta,
			Pool:          p.Pool,
			User:          p.User,
			BaseAmount:    p.BaseAmount,
			QuoteAmount:   p.QuoteAmount,
			LPTokenAmount: p.LPTokenAmount,
			withdraw:      withdraw,
		}, true
	}
}

func kindFor(withdraw bool) event.Kind {
	if withdraw {
		return event.KindWithdraw
	}
	return event.KindDeposit
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
