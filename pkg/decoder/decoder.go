// Package decoder defines the public decoding contract every protocol
// decoder (pumpfun, pumpswap, bonk) implements, and the orchestration that
// runs a raw transaction through the walker, reconciliation engine, and
// post-processor in sequence.
package decoder

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/metrics"
	"github.com/lugondev/go-chain-decoder/internal/postprocess"
	"github.com/lugondev/go-chain-decoder/internal/reconcile"
	"github.com/lugondev/go-chain-decoder/internal/registry"
	"github.com/lugondev/go-chain-decoder/internal/walker"
	"github.com/lugondev/go-chain-decoder/pkg/event"
	"github.com/lugondev/go-chain-decoder/pkg/types"
)

// ErrNilTransaction is returned when ParseTransaction is given a nil
// *types.RawTransaction.
var ErrNilTransaction = errors.New("decoder: raw transaction is nil")

// Config is a protocol discriminator configuration. It is an alias of the
// internal registry's configuration type so callers can populate
// Configuration.ExtraConfigurations without importing an internal package.
type Config = registry.Config

// Configuration customizes a Decoder run: the wallet address flagged as a
// bot for IsBot, and any extra discriminator configurations appended on
// top of a protocol's built-in set (e.g. to recognize an event the built-in
// set lacks). Extras match only inside the protocol's own program id.
type Configuration struct {
	BotWallet           *solana.PublicKey
	ExtraConfigurations []Config

	// Metrics, if set, receives events_decoded/events_merged/events_discarded
	// counters for each ParseTransaction call.
	Metrics *metrics.Collection
}

// Decoder turns one raw transaction into its ordered, reconciled event
// list.
type Decoder interface {
	ShouldHandle(programID solana.PublicKey) bool
	ParseTransaction(tx *types.RawTransaction, signature string, programReceivedTimeMs int64, cfg Configuration) ([]event.Event, error)
}

// Protocol is satisfied by a concrete protocol decoder (internal/protocol/base.Decoder
// wraps every one of pumpfun, pumpswap, bonk). It is the seam New and
// NewMulti build a Decoder from.
type Protocol interface {
	ShouldHandle(programID solana.PublicKey) bool
	MatchInstruction(data []byte) []registry.Config
	MatchInner(data []byte) []registry.InnerMatch
	Configs() []registry.Config
	ProtocolTag() event.Protocol
}

// New wraps a single protocol decoder as a Decoder.
func New(p Protocol) Decoder {
	return &single{protocol: p}
}

// NewMulti wraps several protocol decoders as one Decoder that dispatches
// each instruction to whichever protocol claims its program id, then
// reconciles and post-processes the combined event list as one
// transaction.
func NewMulti(protocols []Protocol) Decoder {
	return &multi{protocols: protocols}
}

type single struct {
	protocol Protocol
}

func (s *single) ShouldHandle(programID solana.PublicKey) bool {
	return s.protocol.ShouldHandle(programID)
}

func (s *single) ParseTransaction(tx *types.RawTransaction, signature string, programReceivedTimeMs int64, cfg Configuration) ([]event.Event, error) {
	if tx == nil {
		return nil, ErrNilTransaction
	}

	meta := baseMeta(s.protocol.ProtocolTag(), signature, programReceivedTimeMs, tx)
	res := walker.Walk(tx, handlerFor(s.protocol, cfg.ExtraConfigurations), meta)

	merged := reconcile.Merge(res.InstructionEvents, res.InnerEvents)
	postprocess.Run(merged, cfg.BotWallet, nowMs())
	recordMetrics(cfg.Metrics, res, merged)
	return merged, nil
}

type multi struct {
	protocols []Protocol
}

func (m *multi) ShouldHandle(programID solana.PublicKey) bool {
	for _, p := range m.protocols {
		if p.ShouldHandle(programID) {
			return true
		}
	}
	return false
}

func (m *multi) ParseTransaction(tx *types.RawTransaction, signature string, programReceivedTimeMs int64, cfg Configuration) ([]event.Event, error) {
	if tx == nil {
		return nil, ErrNilTransaction
	}

	var instrEvents, innerEvents []event.Event
	for _, p := range m.protocols {
		meta := baseMeta(p.ProtocolTag(), signature, programReceivedTimeMs, tx)
		res := walker.Walk(tx, handlerFor(p, cfg.ExtraConfigurations), meta)
		instrEvents = append(instrEvents, res.InstructionEvents...)
		innerEvents = append(innerEvents, res.InnerEvents...)
	}

	merged := reconcile.Merge(instrEvents, innerEvents)
	postprocess.Run(merged, cfg.BotWallet, nowMs())
	recordMetrics(cfg.Metrics, walker.Result{InstructionEvents: instrEvents, InnerEvents: innerEvents}, merged)
	return merged, nil
}

// recordMetrics reports decode/merge/discard counts for one transaction.
// decoded counts every event the walker produced across all three sources;
// merged counts inner/log events that Merge absorbed into an instruction event;
// discarded counts inner events that found no instruction-level counterpart
// and so passed through Merge unconsumed.
func recordMetrics(m *metrics.Collection, res walker.Result, merged []event.Event) {
	if m == nil {
		return
	}
	ctx := context.Background()
	decoded := uint64(len(res.InstructionEvents) + len(res.InnerEvents))
	_ = m.IncrementCounter(ctx, metrics.MetricEventsDecoded, decoded)

	// Merge appends every unconsumed inner event after the instruction
	// events in order, so the tail of merged beyond len(InstructionEvents)
	// is exactly the discarded (unmatched) inner events.
	discarded := uint64(len(merged) - len(res.InstructionEvents))
	_ = m.IncrementCounter(ctx, metrics.MetricEventsDiscarded, discarded)

	mergedCount := decoded - discarded - uint64(len(res.InstructionEvents))
	_ = m.IncrementCounter(ctx, metrics.MetricEventsMerged, mergedCount)
}

func baseMeta(protocol event.Protocol, signature string, programReceivedTimeMs int64, tx *types.RawTransaction) event.Meta {
	meta := event.Meta{
		Protocol:              protocol,
		Signature:             signature,
		Slot:                  tx.Slot,
		ProgramReceivedTimeMs: programReceivedTimeMs,
	}
	if tx.BlockTime != nil {
		t := tx.BlockTime.Unix()
		meta.BlockTimeUnix = &t
	}
	return meta
}

// compositeHandler merges a protocol's built-in configurations with any
// caller-supplied extras, while keeping the protocol's own ShouldHandle.
type compositeHandler struct {
	protocol Protocol
	registry *registry.Registry
}

func handlerFor(p Protocol, extra []registry.Config) walker.Handler {
	if len(extra) == 0 {
		return p
	}
	return &compositeHandler{
		protocol: p,
		registry: registry.New(append(p.Configs(), extra...)),
	}
}

func (c *compositeHandler) ShouldHandle(programID solana.PublicKey) bool {
	return c.protocol.ShouldHandle(programID)
}

func (c *compositeHandler) MatchInstruction(data []byte) []registry.Config {
	return c.registry.MatchInstruction(data)
}

func (c *compositeHandler) MatchInner(data []byte) []registry.InnerMatch {
	return c.registry.MatchInner(data)
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}
