package walker

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/protocol/bonk"
	"github.com/lugondev/go-chain-decoder/internal/protocol/pumpfun"
	"github.com/lugondev/go-chain-decoder/pkg/event"
	"github.com/lugondev/go-chain-decoder/pkg/types"
)

var buyIxDiscriminator = []byte{102, 6, 61, 18, 1, 218, 235, 234}

func buyInstructionData(amount, maxSolCost uint64) []byte {
	data := make([]byte, 24)
	copy(data[0:8], buyIxDiscriminator)
	binary.LittleEndian.PutUint64(data[8:16], amount)
	binary.LittleEndian.PutUint64(data[16:24], maxSolCost)
	return data
}

func TestWalkTopLevelBuyInstruction(t *testing.T) {
	accounts := make([]solana.PublicKey, 11)
	for i := range accounts {
		accounts[i] = solana.NewWallet().PublicKey()
	}
	accounts = append(accounts, pumpfun.ProgramID)
	programIdx := uint8(len(accounts) - 1)

	tx := &types.RawTransaction{
		AccountKeys: accounts,
		Instructions: []types.CompiledInstruction{
			{
				ProgramIDIndex: programIdx,
				AccountIndexes: []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
				Data:           buyInstructionData(1000, 2000),
			},
		},
	}

	decoder := pumpfun.New()
	meta := event.Meta{Signature: "sig1"}
	res := Walk(tx, decoder, meta)

	if len(res.InstructionEvents) != 1 {
		t.Fatalf("expected one instruction event, got %d", len(res.InstructionEvents))
	}
	ev := res.InstructionEvents[0]
	if ev.Header().Index.Top != 0 || ev.Header().Index.HasDot() {
		t.Fatalf("expected top-level index 0, got %v", ev.Header().Index)
	}
}

func TestWalkSkipsInstructionsFromOtherPrograms(t *testing.T) {
	accounts := []solana.PublicKey{solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()}
	tx := &types.RawTransaction{
		AccountKeys: accounts,
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: 0, AccountIndexes: []uint8{1}, Data: buyInstructionData(1, 2)},
		},
	}

	decoder := pumpfun.New()
	res := Walk(tx, decoder, event.Meta{Signature: "sig2"})
	if len(res.InstructionEvents) != 0 {
		t.Fatalf("expected no events for an unrelated program, got %d", len(res.InstructionEvents))
	}
}

func TestWalkSkipsInnerAndLogPassesOnFailedTransaction(t *testing.T) {
	accounts := make([]solana.PublicKey, 11)
	for i := range accounts {
		accounts[i] = solana.NewWallet().PublicKey()
	}
	accounts = append(accounts, pumpfun.ProgramID)
	programIdx := uint8(len(accounts) - 1)

	tx := &types.RawTransaction{
		AccountKeys: accounts,
		Instructions: []types.CompiledInstruction{
			{
				ProgramIDIndex: programIdx,
				AccountIndexes: []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
				Data:           buyInstructionData(1000, 2000),
			},
		},
		InnerInstructions: []types.InnerInstructions{
			{Index: 0, Instructions: []types.InnerInstruction{
				{Instruction: types.CompiledInstruction{ProgramIDIndex: programIdx, Data: buyInstructionData(1, 1)}},
			}},
		},
		Err: errFailed{},
	}

	decoder := pumpfun.New()
	res := Walk(tx, decoder, event.Meta{Signature: "sig3"})
	// Pass B still runs (top-level instructions always decode), but C and D
	// are skipped once the transaction is marked failed.
	if len(res.InstructionEvents) != 1 {
		t.Fatalf("expected the top-level pass to still run, got %d events", len(res.InstructionEvents))
	}
}

type errFailed struct{}

func (errFailed) Error() string { return "simulated failure" }

func TestWalkZeroPadsAccountVectorForHighIndex(t *testing.T) {
	// AccountIndexes referencing slot 11 with only the program account
	// present; the walker must zero-pad rather than skip, since the padding
	// required (well under maxAccountPadding) is within bounds.
	accounts := []solana.PublicKey{pumpfun.ProgramID}
	tx := &types.RawTransaction{
		AccountKeys: accounts,
		Instructions: []types.CompiledInstruction{
			{
				ProgramIDIndex: 0,
				AccountIndexes: []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
				Data:           buyInstructionData(1, 2),
			},
		},
	}

	decoder := pumpfun.New()
	res := Walk(tx, decoder, event.Meta{Signature: "sig4"})
	if len(res.InstructionEvents) != 1 {
		t.Fatalf("expected zero-padding to allow decoding, got %d events", len(res.InstructionEvents))
	}
}

func bonkTradePayload(poolState, user solana.PublicKey, isBuy bool) []byte {
	body := make([]byte, 0, 121)
	body = append(body, poolState[:]...)
	body = append(body, user[:]...)
	if isBuy {
		body = append(body, 1)
	} else {
		body = append(body, 0)
	}
	for i := 0; i < 7; i++ {
		field := make([]byte, 8)
		binary.LittleEndian.PutUint64(field, uint64(1000*(i+1)))
		body = append(body, field...)
	}
	return body
}

// TestWalkMatchesInnerInstructionViaRegistryDiscriminator drives a Bonk
// self-CPI inner instruction through Pass C's MatchInner call using the
// registry's own registered InnerDiscriminator, rather than an instruction
// discriminator. It would produce zero inner events if InnerDiscriminator
// ever regressed to an 8-byte value, since SplitLogDiscriminator's primary
// branch only matches a genuine 16-byte key.
func TestWalkMatchesInnerInstructionViaRegistryDiscriminator(t *testing.T) {
	decoder := bonk.New()
	cfg := decoder.Registry.Configs()[0]

	primary, err := hex.DecodeString(string(cfg.InnerDiscriminator))
	if err != nil || len(primary) != 16 {
		t.Fatalf("expected a decodable 16-byte primary inner discriminator, got %d bytes (err=%v)", len(primary), err)
	}

	poolState := solana.NewWallet().PublicKey()
	user := solana.NewWallet().PublicKey()
	data := append(append([]byte{}, primary...), bonkTradePayload(poolState, user, true)...)

	tx := &types.RawTransaction{
		AccountKeys: []solana.PublicKey{bonk.ProgramID},
		InnerInstructions: []types.InnerInstructions{
			{Index: 0, Instructions: []types.InnerInstruction{
				{Instruction: types.CompiledInstruction{ProgramIDIndex: 0, Data: data}},
			}},
		},
	}

	res := Walk(tx, decoder, event.Meta{Signature: "sig-inner"})
	if len(res.InnerEvents) == 0 {
		t.Fatalf("expected MatchInner to surface at least one inner event from a real 16-byte primary discriminator, got 0")
	}

	trade, ok := res.InnerEvents[0].(*bonk.TradeEvent)
	if !ok {
		t.Fatalf("expected a *bonk.TradeEvent, got %T", res.InnerEvents[0])
	}
	if trade.PoolState != poolState || trade.User != user {
		t.Fatalf("unexpected decoded accounts: %+v", trade)
	}
	if !trade.IsBuy {
		t.Fatalf("expected the decoded trade to be a buy")
	}
}
