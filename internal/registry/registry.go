// Package registry implements the discriminator registry (C2): a static
// per-protocol table mapping byte prefixes to an event kind and a pair of
// parser functions, one for top-level instruction bytes and one for
// inner-instruction/log bytes.
package registry

import (
	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/discriminator"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// InnerParser decodes an inner-instruction or log-sourced payload (header
// bytes already stripped) into an event.
type InnerParser func(data []byte, meta event.Meta, logLines []string) (event.Event, bool)

// InstructionParser decodes a top-level or synthetic-inner instruction's
// data and resolved accounts into an event.
type InstructionParser func(data []byte, accounts []solana.PublicKey, meta event.Meta, logLines []string) (event.Event, bool)

// Config is the 5-tuple a protocol contributes per event kind: the
// inner-instruction discriminator (hex-prefixed string), the instruction
// discriminator (raw byte prefix), the event kind, and the two parser
// functions.
type Config struct {
	Kind                     event.Kind
	InnerDiscriminator       discriminator.Key
	InstructionDiscriminator []byte
	InnerInstructionParser   InnerParser
	InstructionParserFunc    InstructionParser
}

// Registry indexes a protocol's configurations by both discriminator forms.
// Collisions are allowed: multiple configs may share a discriminator, and
// every matching parser runs.
type Registry struct {
	configs []Config
}

// New builds a Registry from the given configurations.
func New(configs []Config) *Registry {
	return &Registry{configs: append([]Config(nil), configs...)}
}

// Configs returns all configurations registered, for pkg/decoder's
// "extra-configurations" append point (§6) and for tests.
func (r *Registry) Configs() []Config {
	return append([]Config(nil), r.configs...)
}

// MatchInstruction returns every configuration whose instruction
// discriminator is an exact byte prefix of data.
func (r *Registry) MatchInstruction(data []byte) []Config {
	var out []Config
	for _, c := range r.configs {
		if len(c.InstructionDiscriminator) == 0 {
			continue
		}
		if discriminator.MatchesBytePrefix(data, c.InstructionDiscriminator) {
			out = append(out, c)
		}
	}
	return out
}

// InnerMatch pairs a matched configuration with the number of header bytes
// to skip before handing data to its inner-instruction parser.
type InnerMatch struct {
	Config Config
	Skip   int
}

// MatchInner returns every configuration whose inner-instruction
// discriminator matches data, either via the full 16-byte primary form or
// the 8-byte secondary (trailing-half, log-only) form.
func (r *Registry) MatchInner(data []byte) []InnerMatch {
	var out []InnerMatch
	for _, c := range r.configs {
		if c.InnerDiscriminator == "" {
			continue
		}
		if skip, ok := discriminator.SplitLogDiscriminator(data, c.InnerDiscriminator); ok {
			out = append(out, InnerMatch{Config: c, Skip: skip})
		}
	}
	return out
}
