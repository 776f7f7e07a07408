package bonk

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
	accounts := makeAccounts(2)
	data := make([]byte, 16)
	binary.LittleEndian.PutUint64(data[0:8], 3000)
	binary.LittleEndian.PutUint64(data[8:16], 4500)

	meta := event.Meta{Signature: "sig1"}
	ev, ok := parseTradeInstructionFallback(data, accounts, meta, true)
	if !ok {
		t.Fatalf("expected event")
	}
	trade := ev.(*TradeEvent)
	if trade.AmountIn != 3000 || trade.AmountOut != 4500 {
		t.Fatalf("unexpected amounts: %+v", trade)
	}
	if !trade.IsBuy {
		t.Fatalf("expected buy")
	}
	if trade.PoolState != accounts[0] || trade.User != accounts[1] {
		t.Fatalf("unexpected account wiring")
	}
}

func TestTradeEventMergeOverlaysNonZeroOnly(t *testing.T) {
	base := &TradeEvent{VirtualBase: 0, RealQuote: 10}
	incoming := &TradeEvent{VirtualBase: 200, RealQuote: 0}
	base.Merge(incoming)
	if base.VirtualBase != 200 {
		t.Fatalf("expected incoming non-zero VirtualBase to overlay, got %d", base.VirtualBase)
	}
	if base.RealQuote != 10 {
		t.Fatalf("expected zero-valued incoming field to not clobber base, got %d", base.RealQuote)
	}
}

func TestTransferRoleSequenceByDirection(t *testing.T) {
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

func TestTradeEventCreatorAddressesEmpty(t *testing.T) {
	ev := &TradeEvent{User: solana.NewWallet().PublicKey()}
	if addrs := ev.CreatorAddresses(); addrs != nil {
		t.Fatalf("expected no creator addresses for a trade, got %v", addrs)
	}
}
