package postprocess

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

type fakeEvent struct {
	meta      event.Meta
	initiator solana.PublicKey
	creators  []solana.PublicKey
}

func (f *fakeEvent) ID() string                              { return f.meta.ID }
func (f *fakeEvent) EventKind() event.Kind                    { return f.meta.Kind }
func (f *fakeEvent) Header() *event.Meta                      { return &f.meta }
func (f *fakeEvent) Merge(other event.Event)                  {}
func (f *fakeEvent) Initiator() solana.PublicKey              { return f.initiator }
func (f *fakeEvent) CreatorAddresses() []solana.PublicKey     { return f.creators }
func (f *fakeEvent) Transfers() []event.TransferRecord        { return nil }
func (f *fakeEvent) AttachTransfers(t []event.TransferRecord) {}
func (f *fakeEvent) TransferRoleSequence() []event.TransferRole { return nil }

func TestRunFlagsDevTradeAfterCreate(t *testing.T) {
	dev := solana.NewWallet().PublicKey()
	create := &fakeEvent{meta: event.Meta{ID: "1", Kind: event.KindTokenCreate}, initiator: dev, creators: []solana.PublicKey{dev}}
	trade := &fakeEvent{meta: event.Meta{ID: "2", Kind: event.KindTrade}, initiator: dev}

	Run([]event.Event{create, trade}, nil, 1000)

	if !trade.meta.IsDevCreateTokenTrade {
		t.Fatalf("expected trade by the creator to be flagged as dev trade")
	}
}

func TestRunDoesNotFlagTradeBeforeCreate(t *testing.T) {
	dev := solana.NewWallet().PublicKey()
	trade := &fakeEvent{meta: event.Meta{ID: "1", Kind: event.KindTrade}, initiator: dev}
	create := &fakeEvent{meta: event.Meta{ID: "2", Kind: event.KindTokenCreate}, initiator: dev, creators: []solana.PublicKey{dev}}

	Run([]event.Event{trade, create}, nil, 1000)

	if trade.meta.IsDevCreateTokenTrade {
		t.Fatalf("expected trade preceding the create to not be flagged")
	}
}

func TestRunFlagsBotWallet(t *testing.T) {
	bot := solana.NewWallet().PublicKey()
	trade := &fakeEvent{meta: event.Meta{ID: "1", Kind: event.KindTrade}, initiator: bot}

	Run([]event.Event{trade}, &bot, 1000)

	if !trade.meta.IsBot {
		t.Fatalf("expected trade by bot wallet to be flagged IsBot")
	}
	if trade.meta.IsDevCreateTokenTrade {
		t.Fatalf("did not expect dev flag for a non-creator bot trade")
	}
}

func TestRunStampsHandlingLatency(t *testing.T) {
	trade := &fakeEvent{meta: event.Meta{ID: "1", Kind: event.KindTrade, ProgramReceivedTimeMs: 100}}
	Run([]event.Event{trade}, nil, 250)
	if trade.meta.HandlingLatencyMs != 150 {
		t.Fatalf("expected latency 150, got %d", trade.meta.HandlingLatencyMs)
	}
}

func TestRunIgnoresZeroCreatorAddress(t *testing.T) {
	trade := &fakeEvent{meta: event.Meta{ID: "1", Kind: event.KindTrade}, initiator: solana.PublicKey{}}
	create := &fakeEvent{meta: event.Meta{ID: "2", Kind: event.KindTokenCreate}, creators: []solana.PublicKey{{}}}

	Run([]event.Event{create, trade}, nil, 1000)

	if trade.meta.IsDevCreateTokenTrade {
		t.Fatalf("expected zero-valued creator address to never match an initiator")
	}
}

// TestRunDoesNotFlagCreateEventItself guards against a create event whose
// own creator address equals its own initiator self-flagging: the flag only
// ever applies to KindTrade events, so a create event's own Header() must
// stay false regardless of what CreatorAddresses() returns for itself.
func TestRunDoesNotFlagCreateEventItself(t *testing.T) {
	dev := solana.NewWallet().PublicKey()
	create := &fakeEvent{meta: event.Meta{ID: "1", Kind: event.KindTokenCreate}, initiator: dev, creators: []solana.PublicKey{dev}}

	Run([]event.Event{create}, nil, 1000)

	if create.meta.IsDevCreateTokenTrade {
		t.Fatalf("expected a create event to never flag its own IsDevCreateTokenTrade")
	}
}

// TestRunFlagsPoolCreateCreatorOnLaterTrade mirrors the token-create case
// for a pumpswap-style pool-create event, confirming the creator set is
// accumulated regardless of which create-like kind produced it.
func TestRunFlagsPoolCreateCreatorOnLaterTrade(t *testing.T) {
	dev := solana.NewWallet().PublicKey()
	poolCreate := &fakeEvent{meta: event.Meta{ID: "1", Kind: event.KindPoolCreate}, initiator: dev, creators: []solana.PublicKey{dev}}
	trade := &fakeEvent{meta: event.Meta{ID: "2", Kind: event.KindTrade}, initiator: dev}

	Run([]event.Event{poolCreate, trade}, nil, 1000)

	if !trade.meta.IsDevCreateTokenTrade {
		t.Fatalf("expected trade by the pool creator to be flagged as dev trade")
	}
	if poolCreate.meta.IsDevCreateTokenTrade {
		t.Fatalf("expected the pool-create event itself to never be flagged")
	}
}
