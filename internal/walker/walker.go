// Package walker implements the transaction walker (C4): the four-pass
// traversal of a raw transaction's instruction tree and log stream that
// produces the two intermediate event lists the reconciliation engine
// merges (instruction events; inner and log events together).
package walker

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/reconcile"
	"github.com/lugondev/go-chain-decoder/internal/registry"
	"github.com/lugondev/go-chain-decoder/pkg/event"
	"github.com/lugondev/go-chain-decoder/pkg/log"
	"github.com/lugondev/go-chain-decoder/pkg/types"
	"github.com/lugondev/go-chain-decoder/pkg/view"
)

// maxAccountPadding bounds the walker's zero-padding of the account vector
// (the "unbounded zero-padding" design note). A transaction whose
// instruction claims an account index past this bound is treated as
// index-out-of-range for that instruction rather than padded further.
const maxAccountPadding = 256

// Handler is the subset of a protocol decoder (C3) the walker needs:
// whether it claims a program id, and how to look up configurations for
// instruction and inner-instruction/log bytes.
type Handler interface {
	ShouldHandle(programID solana.PublicKey) bool
	MatchInstruction(data []byte) []registry.Config
	MatchInner(data []byte) []registry.InnerMatch
}

// Result holds the two intermediate event lists, handed straight to the
// reconciliation engine: InstructionEvents from instruction parsers, and
// InnerEvents from inner-instruction parsers and log lines together.
type Result struct {
	InstructionEvents []event.Event
	InnerEvents       []event.Event
}

// Walk runs the four passes over tx using handler to dispatch instruction
// and log bytes, and attributes transfer sub-instructions as it goes.
// metaTemplate carries the fields common to every event this walk produces
// (protocol, program id, signature, slot, block time, program-received
// time); the walker fills in Index per event and leaves ID/Kind/payload to
// the parser functions.
func Walk(tx *types.RawTransaction, handler Handler, metaTemplate event.Meta) Result {
	var result Result

	accounts := tx.ResolvedAccountKeys()
	padded := 0

	innerByParent := make(map[uint32]types.InnerInstructions)
	for _, g := range tx.InnerInstructions {
		innerByParent[uint32(g.Index)] = g
	}

	// Pass B — top-level instructions.
	for t, ix := range tx.Instructions {
		top := uint32(t)
		programID := programIDFor(accounts, ix.ProgramIDIndex)
		if !handler.ShouldHandle(programID) {
			continue
		}

		maxIdx := maxAccountIndex(ix.AccountIndexes)
		if maxIdx >= len(accounts) {
			need := maxIdx + 1 - len(accounts)
			if padded+need > maxAccountPadding {
				continue // index-out-of-range: unrecoverable for this instruction
			}
			accounts = append(accounts, make([]solana.PublicKey, need)...)
			padded += need
		}

		resolved, ok := resolveAccounts(accounts, ix.AccountIndexes)
		if !ok {
			continue
		}

		meta := metaTemplate
		meta.ProgramID = programID
		meta.Index = event.TopLevel(top)

		for _, cfg := range handler.MatchInstruction(ix.Data) {
			ev, found := cfg.InstructionParserFunc(ix.Data, resolved, meta, tx.LogMessages)
			if !found {
				continue
			}
			ev.Header().Index = event.TopLevel(top)
			result.InstructionEvents = append(result.InstructionEvents, ev)

			if group, ok := innerByParent[top]; ok {
				transfers := reconcile.AttributeTransfers(accounts, group, -1, ev.TransferRoleSequence())
				ev.AttachTransfers(transfers)
			}
		}
	}

	if tx.Failed() {
		return result
	}

	// Pass C — inner instructions.
	for _, group := range tx.InnerInstructions {
		top := uint32(group.Index)

		for i, inner := range group.Instructions {
			idx := uint32(i)
			raw := inner.Instruction.Data

			progID := programIDFor(accounts, inner.Instruction.ProgramIDIndex)
			if !handler.ShouldHandle(progID) {
				continue
			}

			resolved, ok := resolveAccounts(accounts, inner.Instruction.AccountIndexes)
			if !ok {
				continue
			}

			meta := metaTemplate
			meta.ProgramID = progID
			meta.Index = event.InnerAt(top, idx)

			for _, cfg := range handler.MatchInstruction(raw) {
				ev, found := cfg.InstructionParserFunc(raw, resolved, meta, tx.LogMessages)
				if !found {
					continue
				}
				ev.Header().Index = event.InnerAt(top, idx)
				result.InstructionEvents = append(result.InstructionEvents, ev)
				transfers := reconcile.AttributeTransfers(accounts, group, i, ev.TransferRoleSequence())
				ev.AttachTransfers(transfers)
			}

			for _, m := range handler.MatchInner(raw) {
				payload := raw[m.Skip:]
				ev, found := m.Config.InnerInstructionParser(payload, meta, tx.LogMessages)
				if !found {
					continue
				}
				ev.Header().Index = event.InnerAt(top, idx)
				result.InnerEvents = append(result.InnerEvents, ev)
				transfers := reconcile.AttributeTransfers(accounts, group, i, ev.TransferRoleSequence())
				ev.AttachTransfers(transfers)
			}
		}
	}

	// Pass D — log-sourced events.
	logParser := log.NewParser()
	for _, payload := range logParser.ExtractProgramData(tx.LogMessages) {
		peek, err := view.NewEventView(payload)
		if err != nil {
			continue
		}
		if _, ok := peek.Discriminator16(); !ok {
			continue
		}

		meta := metaTemplate
		meta.Index = event.Log()

		for _, m := range handler.MatchInner(payload) {
			data := payload[m.Skip:]
			ev, found := m.Config.InnerInstructionParser(data, meta, tx.LogMessages)
			if !found {
				continue
			}
			ev.Header().Index = event.Log()
			result.InnerEvents = append(result.InnerEvents, ev)
		}
	}

	return result
}

func programIDFor(accounts []solana.PublicKey, idx uint8) solana.PublicKey {
	if int(idx) >= len(accounts) {
		return solana.PublicKey{}
	}
	return accounts[idx]
}

func maxAccountIndex(indices []uint8) int {
	max := -1
	for _, i := range indices {
		if int(i) > max {
			max = int(i)
		}
	}
	return max
}

func resolveAccounts(accounts []solana.PublicKey, indices []uint8) ([]solana.PublicKey, bool) {
	resolved := make([]solana.PublicKey, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(accounts) {
			return nil, false
		}
		resolved[i] = accounts[idx]
	}
	return resolved, true
}
