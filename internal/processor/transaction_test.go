package processor

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/metrics"
	"github.com/lugondev/go-chain-decoder/internal/protocol/pumpfun"
	"github.com/lugondev/go-chain-decoder/pkg/decoder"
	"github.com/lugondev/go-chain-decoder/pkg/event"
	"github.com/lugondev/go-chain-decoder/pkg/types"
)

var buyIxDiscriminator = []byte{102, 6, 61, 18, 1, 218, 235, 234}

func buyTransaction() *types.RawTransaction {
	accounts := make([]solana.PublicKey, 11)
	for i := range accounts {
		accounts[i] = solana.NewWallet().PublicKey()
	}
	accounts = append(accounts, pumpfun.ProgramID)
	programIdx := uint8(len(accounts) - 1)

	data := make([]byte, 24)
	copy(data[0:8], buyIxDiscriminator)
	binary.LittleEndian.PutUint64(data[8:16], 1000)
	binary.LittleEndian.PutUint64(data[16:24], 2000)

	return &types.RawTransaction{
		AccountKeys: accounts,
		Instructions: []types.CompiledInstruction{
			{ProgramIDIndex: programIdx, AccountIndexes: []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, Data: data},
		},
	}
}

func TestTransactionProcessorCallsSinkWithDecodedEvents(t *testing.T) {
	var captured []event.Event
	p := NewTransactionProcessor(decoder.New(pumpfun.New()), func(events []event.Event) {
		captured = events
	})

	m := metrics.NewCollection()
	in := TransactionInput{Tx: buyTransaction(), Signature: "sig1", ProgramReceivedTimeMs: 1}

	if err := p.Process(context.Background(), in, m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(captured) != 1 {
		t.Fatalf("expected sink to receive one event, got %d", len(captured))
	}
}

func TestTransactionProcessorPropagatesNilTransactionError(t *testing.T) {
	p := NewTransactionProcessor(decoder.New(pumpfun.New()), nil)
	err := p.Process(context.Background(), TransactionInput{}, metrics.NewCollection())
	if err != decoder.ErrNilTransaction {
		t.Fatalf("expected ErrNilTransaction, got %v", err)
	}
}
