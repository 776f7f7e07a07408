// Package factory implements the parser factory (C7): constructing a
// decoder.Decoder for one protocol or several by name, the entry point
// most callers use instead of wiring internal/protocol/* directly.
package factory

import (
	"fmt"

	"github.com/lugondev/go-chain-decoder/internal/protocol/bonk"
	"github.com/lugondev/go-chain-decoder/internal/protocol/pumpfun"
	"github.com/lugondev/go-chain-decoder/internal/protocol/pumpswap"
	"github.com/lugondev/go-chain-decoder/pkg/decoder"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

// CreateParser builds a Decoder for a single protocol.
func CreateParser(protocol event.Protocol) (decoder.Decoder, error) {
	p, err := newProtocol(protocol)
	if err != nil {
		return nil, err
	}
	return decoder.New(p), nil
}

// CreateMulti builds a Decoder that dispatches across several protocols,
// reconciling and post-processing their combined event lists as one
// transaction.
func CreateMulti(protocols []event.Protocol) (decoder.Decoder, error) {
	built := make([]decoder.Protocol, 0, len(protocols))
	for _, protocol := range protocols {
		p, err := newProtocol(protocol)
		if err != nil {
			return nil, err
		}
		built = append(built, p)
	}
	return decoder.NewMulti(built), nil
}

func newProtocol(protocol event.Protocol) (decoder.Protocol, error) {
	switch protocol {
	case event.ProtocolPumpFun:
		return pumpfun.New(), nil
	case event.ProtocolPumpSwap:
		return pumpswap.New(), nil
	case event.ProtocolBonk:
		return bonk.New(), nil
	default:
		return nil, fmt.Errorf("factory: unknown protocol %q", protocol)
	}
}
