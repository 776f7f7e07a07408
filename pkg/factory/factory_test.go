package factory

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/lugondev/go-chain-decoder/pkg/event"
)

func TestCreateParserKnownProtocol(t *testing.T) {
	d, err := CreateParser(event.ProtocolPumpFun)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil {
		t.Fatalf("expected a non-nil decoder")
	}
}

func TestCreateParserUnknownProtocol(t *testing.T) {
	_, err := CreateParser(event.Protocol("unknown"))
	if err == nil {
		t.Fatalf("expected an error for an unknown protocol")
	}
}

func TestCreateMultiBuildsDispatchAcrossAllProtocols(t *testing.T) {
	d, err := CreateMulti([]event.Protocol{event.ProtocolPumpFun, event.ProtocolPumpSwap, event.ProtocolBonk})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.ShouldHandle(pumpfunProgramID()) {
		t.Fatalf("expected multi decoder to recognize pumpfun's program id")
	}
}

func pumpfunProgramID() solana.PublicKey {
	return solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
}

func TestCreateMultiPropagatesUnknownProtocolError(t *testing.T) {
	_, err := CreateMulti([]event.Protocol{event.ProtocolPumpFun, event.Protocol("unknown")})
	if err == nil {
		t.Fatalf("expected an error when one protocol is unknown")
	}
}
