package processor

import (
	"context"
	"log/slog"

	"github.com/lugondev/go-chain-decoder/internal/common"
	"github.com/lugondev/go-chain-decoder/internal/metrics"
	"github.com/lugondev/go-chain-decoder/pkg/decoder"
	"github.com/lugondev/go-chain-decoder/pkg/event"
	"github.com/lugondev/go-chain-decoder/pkg/types"
)

// TransactionInput is one transaction handed to a TransactionProcessor.
type TransactionInput struct {
	Tx                    *types.RawTransaction
	Signature             string
	ProgramReceivedTimeMs int64
	Config                decoder.Configuration
}

// TransactionProcessor adapts a decoder.Decoder into a Processor[TransactionInput],
// handing the decoded events to Sink and routing the metrics.Collection it
// receives into the decode call so events_decoded/merged/discarded land on
// whatever the caller wired up.
type TransactionProcessor struct {
	common.LoggerMixin

	Decoder decoder.Decoder
	Sink    func(events []event.Event)
}

// NewTransactionProcessor builds a TransactionProcessor around d, calling
// sink with every transaction's reconciled event list.
func NewTransactionProcessor(d decoder.Decoder, sink func([]event.Event)) *TransactionProcessor {
	return &TransactionProcessor{
		LoggerMixin: common.NewLoggerMixin(),
		Decoder:     d,
		Sink:        sink,
	}
}

// WithLogger implements common.WithLoggerBuilder[*TransactionProcessor].
func (p *TransactionProcessor) WithLogger(logger *slog.Logger) *TransactionProcessor {
	p.SetLogger(logger)
	return p
}

// Process implements Processor[TransactionInput].
func (p *TransactionProcessor) Process(ctx context.Context, in TransactionInput, m *metrics.Collection) error {
	cfg := in.Config
	cfg.Metrics = m
	events, err := p.Decoder.ParseTransaction(in.Tx, in.Signature, in.ProgramReceivedTimeMs, cfg)
	if err != nil {
		p.GetLogger().Error("transaction decode failed", "signature", in.Signature, "error", err)
		return err
	}
	p.GetLogger().Debug("transaction decoded", "signature", in.Signature, "events", len(events))
	if p.Sink != nil {
		p.Sink(events)
	}
	return nil
}

var _ common.Loggable = (*TransactionProcessor)(nil)
var _ common.WithLoggerBuilder[*TransactionProcessor] = (*TransactionProcessor)(nil)
