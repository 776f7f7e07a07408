package decoder

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/protocol/pumpfun"
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

func buyTransaction() *types.RawTransaction {
	accounts := make([]solana.PublicKey, 11)
	for i := range accounts {
		accounts[i] = solana.NewWallet().PublicKey()
	}
	accounts = append(accounts, pumpfun.ProgramID)
	programIdx := uint8(len(accounts) - 1)

	return &types.RawTransaction{
		AccountKeys: accounts,
		Instructions: []types.CompiledInstruction{
			{
				ProgramIDIndex: programIdx,
				AccountIndexes: []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
				Data:           buyInstructionData(1000, 2000),
			},
		},
	}
}

func TestSingleParseTransactionReturnsEvent(t *testing.T) {
	d := New(pumpfun.New())
	events, err := d.ParseTransaction(buyTransaction(), "sig1", 500, Configuration{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
}

func TestSingleParseTransactionNilTransaction(t *testing.T) {
	d := New(pumpfun.New())
	_, err := d.ParseTransaction(nil, "sig1", 500, Configuration{})
	if err != ErrNilTransaction {
		t.Fatalf("expected ErrNilTransaction, got %v", err)
	}
}

func TestMultiParseTransactionDispatchesByProgram(t *testing.T) {
	d := NewMulti([]Protocol{pumpfun.New()})
	events, err := d.ParseTransaction(buyTransaction(), "sig2", 500, Configuration{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one event from the matching protocol, got %d", len(events))
	}
}

func TestShouldHandleDelegatesToProtocol(t *testing.T) {
	d := New(pumpfun.New())
	if !d.ShouldHandle(pumpfun.ProgramID) {
		t.Fatalf("expected ShouldHandle to recognize the wrapped protocol's program id")
	}
	if d.ShouldHandle(solana.NewWallet().PublicKey()) {
		t.Fatalf("expected ShouldHandle to reject an unrelated program id")
	}
}
