// Package postprocess implements the post-processor (C6): a single forward
// pass over the reconciled event list that stamps cross-event dev/bot flags
// and handling latency.
package postprocess

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// Run mutates events in place, in order:
//   - accumulates a per-transaction set of creator/dev addresses from every
//     event's CreatorAddresses() (token-create and pool-create events are
//     the only kinds that ever return a non-empty set),
//   - for each subsequent trade event, sets IsDevCreateTokenTrade if its
//     initiator is already in that set, else sets IsBot if its initiator
//     equals botWallet,
//   - stamps HandlingLatencyMs as nowMs - ProgramReceivedTimeMs.
//
// The set grows monotonically as the pass proceeds, so a create always
// gates the trades that follow it within the same transaction, never ones
// that precede it, and never itself: the flag is only ever evaluated on
// KindTrade events, so a create event's own creator address never flags
// that same event.
func Run(events []event.Event, botWallet *solana.PublicKey, nowMs int64) {
	devAddresses := make(map[solana.PublicKey]struct{})

	for _, ev := range events {
		header := ev.Header()

		for _, addr := range ev.CreatorAddresses() {
			if !addr.IsZero() {
				devAddresses[addr] = struct{}{}
			}
		}

		header.IsDevCreateTokenTrade = false
		header.IsBot = false
		if header.Kind == event.KindTrade {
			if _, ok := devAddresses[ev.Initiator()]; ok {
				header.IsDevCreateTokenTrade = true
			} else if botWallet != nil && ev.Initiator().Equals(*botWallet) {
				header.IsBot = true
			}
		}

		header.HandlingLatencyMs = nowMs - header.ProgramReceivedTimeMs
	}
}
