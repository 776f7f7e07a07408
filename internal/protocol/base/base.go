// Package base provides the generic protocol-decoder implementation (C3):
// the two dispatch entry points every protocol decoder needs are
// implemented once here by iterating a registry.Registry, so
// internal/protocol/{pumpfun,pumpswap,bonk} only need to build a
// configuration set.
package base

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/internal/registry"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// Decoder is a protocol decoder: a program id, a protocol tag, and the
// configuration set that drives both dispatch entry points.
type Decoder struct {
	ProgramID solana.PublicKey
	Protocol  event.Protocol
	Registry  *registry.Registry
}

// New builds a Decoder for programID/protocol from configs.
func New(programID solana.PublicKey, protocol event.Protocol, configs []registry.Config) *Decoder {
	return &Decoder{
		ProgramID: programID,
		Protocol:  protocol,
		Registry:  registry.New(configs),
	}
}

// ShouldHandle reports whether programID is this decoder's program.
func (d *Decoder) ShouldHandle(programID solana.PublicKey) bool {
	return programID.Equals(d.ProgramID)
}

// MatchInstruction returns the configurations whose instruction
// discriminator is a byte prefix of data.
func (d *Decoder) MatchInstruction(data []byte) []registry.Config {
	return d.Registry.MatchInstruction(data)
}

// MatchInner returns the configurations whose inner/log discriminator
// matches data, paired with the header length to skip.
func (d *Decoder) MatchInner(data []byte) []registry.InnerMatch {
	return d.Registry.MatchInner(data)
}

// Configs returns this decoder's full configuration set, for callers
// building a composite registry with extra configurations.
func (d *Decoder) Configs() []registry.Config {
	return d.Registry.Configs()
}

// ProtocolTag reports this decoder's protocol.
func (d *Decoder) ProtocolTag() event.Protocol {
	return d.Protocol
}
