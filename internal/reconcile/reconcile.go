// Package reconcile implements the reconciliation engine (C5): merging the
// walker's two intermediate event lists into one ordered list, and
// attributing token-transfer sub-instructions to the event they belong to.
package reconcile

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/protocol/spltoken"
	"github.com/lugondev/go-chain-decoder/pkg/event"
	"github.com/lugondev/go-chain-decoder/pkg/types"
)

// AttributeTransfers scans group starting at max(fromIndex+1, 0) for
// contiguous token-program Transfer/TransferChecked instructions, stopping
// at the first instruction that is not one, and classifies each by
// position against roles (the event's TransferRoleSequence()). Positions
// past the end of roles are RoleUnclassified rather than dropped, so a
// protocol's role table need not enumerate every possible transfer.
func AttributeTransfers(accounts []solana.PublicKey, group types.InnerInstructions, fromIndex int, roles []event.TransferRole) []event.TransferRecord {
	start := fromIndex + 1
	if start < 0 {
		start = 0
	}

	var out []event.TransferRecord
	for i := start; i < len(group.Instructions); i++ {
		ix := group.Instructions[i].Instruction
		programID := resolve(accounts, ix.ProgramIDIndex)
		if !spltoken.IsTokenProgram(programID) || !spltoken.IsTransferInstruction(ix.Data) {
			break
		}

		amount, _ := spltoken.Amount(ix.Data)
		rec := event.TransferRecord{
			Amount: amount,
			Role:   event.RoleUnclassified,
		}
		if len(ix.AccountIndexes) > 0 {
			rec.Source = resolve(accounts, ix.AccountIndexes[0])
		}
		if len(ix.AccountIndexes) > 1 {
			rec.Destination = resolve(accounts, ix.AccountIndexes[1])
		}
		pos := i - start
		if pos < len(roles) {
			rec.Role = roles[pos]
		}
		out = append(out, rec)
	}
	return out
}

func resolve(accounts []solana.PublicKey, idx uint8) solana.PublicKey {
	if int(idx) >= len(accounts) {
		return solana.PublicKey{}
	}
	return accounts[idx]
}

// Merge combines instructionEvents and innerEvents into one ordered list,
// per the three index-relation rules: an unconditional log merge, a
// top-level-absorbs-its-own-inner merge, and an inner-absorbs-a-later-inner
// merge within the same top-level instruction. Events that never find a
// merge partner pass through unmodified. Order follows instructionEvents,
// the authoritative top-level/inner-instruction source; unmatched inner
// events (e.g. a log-only protocol with no instruction counterpart) are
// appended after, in their original order.
func Merge(instructionEvents, innerEvents []event.Event) []event.Event {
	consumed := make([]bool, len(innerEvents))

	for _, e1 := range instructionEvents {
		idx1 := e1.Header().Index
		nonLogMerged := false
		for j, e2 := range innerEvents {
			if consumed[j] || e2.ID() != e1.ID() {
				continue
			}
			idx2 := e2.Header().Index

			switch {
			case idx2.IsLog:
				e1.Merge(e2)
				consumed[j] = true
			case nonLogMerged:
				// already absorbed one inner/top match; rules 2 and 3 stop
				// scanning for further non-log partners.
			case idx1.Inner == nil && idx2.Inner != nil && idx2.Top == idx1.Top:
				e1.Merge(e2)
				consumed[j] = true
				nonLogMerged = true
			case idx1.Inner != nil && idx2.Inner != nil && idx1.Top == idx2.Top && *idx2.Inner > *idx1.Inner:
				e1.Merge(e2)
				consumed[j] = true
				nonLogMerged = true
			}
		}
	}

	out := make([]event.Event, 0, len(instructionEvents)+len(innerEvents))
	out = append(out, instructionEvents...)
	for j, e2 := range innerEvents {
		if !consumed[j] {
			out = append(out, e2)
		}
	}
	return out
}
