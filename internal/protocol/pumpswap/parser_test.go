package pumpswap

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

func makeAccounts(n int) []solana.PublicKey {
	accounts := make([]solana.PublicKey, n)
	for i := range accounts {
		accounts[i] = solana.NewWallet().PublicKey()
	}
	return accounts
}

func TestParseTradeInstructionFallbackBuy(t *testing.T) {
	accounts := makeAccounts(3)
	data := make([]byte, 16)
	binary.LittleEndian.PutUint64(data[0:8], 7000)
	binary.LittleEndian.PutUint64(data[8:16], 9000)

	meta := event.Meta{Signature: "sig1"}
	ev, ok := parseTradeInstructionFallback(data, accounts, meta, true)
	if !ok {
		t.Fatalf("expected event")
	}
	trade := ev.(*TradeEvent)
	if trade.BaseAmountOut != 7000 || trade.MaxQuoteAmountIn != 9000 {
		t.Fatalf("unexpected amounts: %+v", trade)
	}
	if trade.Pool != accounts[0] || trade.User != accounts[1] {
		t.Fatalf("unexpected account wiring")
	}
}

func TestParseTradeInstructionFallbackSell(t *testing.T) {
	accounts := makeAccounts(3)
	data := make([]byte, 16)
	binary.LittleEndian.PutUint64(data[0:8], 1200)
	binary.LittleEndian.PutUint64(data[8:16], 800)

	meta := event.Meta{Signature: "sig2"}
	ev, ok := parseTradeInstructionFallback(data, accounts, meta, false)
	if !ok {
		t.Fatalf("expected event")
	}
	trade := ev.(*TradeEvent)
	if trade.BaseAmountIn != 1200 || trade.MinQuoteAmountOut != 800 {
		t.Fatalf("unexpected amounts: %+v", trade)
	}
}

func TestTradeEventMergeOverlaysNonZeroOnly(t *testing.T) {
	base := &TradeEvent{LPFee: 0, ProtocolFee: 100}
	incoming := &TradeEvent{LPFee: 50, ProtocolFee: 0}
	base.Merge(incoming)
	if base.LPFee != 50 {
		t.Fatalf("expected incoming non-zero LPFee to overlay, got %d", base.LPFee)
	}
	if base.ProtocolFee != 100 {
		t.Fatalf("expected zero-valued incoming field to not clobber base, got %d", base.ProtocolFee)
	}
}

func TestTradeTransferRoleSequenceByDirection(t *testing.T) {
	buy := &TradeEvent{IsBuy: true}
	roles := buy.TransferRoleSequence()
	if len(roles) != 2 || roles[0] != event.RoleQuoteIn || roles[1] != event.RoleBaseOut {
		t.Fatalf("unexpected buy roles: %v", roles)
	}

	sell := &TradeEvent{IsBuy: false}
	roles = sell.TransferRoleSequence()
	if len(roles) != 2 || roles[0] != event.RoleBaseIn || roles[1] != event.RoleQuoteOut {
		t.Fatalf("unexpected sell roles: %v", roles)
	}
}

func TestLiquidityEventKindAndRoles(t *testing.T) {
	deposit := &LiquidityEvent{withdraw: false}
	if deposit.EventKind() != event.KindDeposit {
		t.Fatalf("expected deposit kind, got %v", deposit.EventKind())
	}
	roles := deposit.TransferRoleSequence()
	if len(roles) != 2 || roles[0] != event.RoleQuoteIn || roles[1] != event.RoleBaseIn {
		t.Fatalf("unexpected deposit roles: %v", roles)
	}

	withdraw := &LiquidityEvent{withdraw: true}
	if withdraw.EventKind() != event.KindWithdraw {
		t.Fatalf("expected withdraw kind, got %v", withdraw.EventKind())
	}
	roles = withdraw.TransferRoleSequence()
	if len(roles) != 2 || roles[0] != event.RoleQuoteOut || roles[1] != event.RoleBaseOut {
		t.Fatalf("unexpected withdraw roles: %v", roles)
	}
}

func TestPoolCreateInstructionParser(t *testing.T) {
	accounts := makeAccounts(4)
	meta := event.Meta{Signature: "sig3"}
	ev, ok := parsePoolCreateInstruction(nil, accounts, meta, nil)
	if !ok {
		t.Fatalf("expected event")
	}
	pool := ev.(*PoolCreateEvent)
	if pool.Pool != accounts[0] || pool.Creator != accounts[1] || pool.BaseMint != accounts[2] || pool.QuoteMint != accounts[3] {
		t.Fatalf("unexpected account wiring: %+v", pool)
	}
	addrs := pool.CreatorAddresses()
	if len(addrs) != 1 || addrs[0] != accounts[1] {
		t.Fatalf("expected creator in CreatorAddresses, got %v", addrs)
	}
}
