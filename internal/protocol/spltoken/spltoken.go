// Package spltoken supplies the SPL Token / Token-2022 program-id constants
// and instruction-tag classifier the reconciliation engine's
// transfer-attribution scan uses to recognize token-movement
// sub-instructions without re-deriving the constants per protocol.
package spltoken

import "github.com/gagliardetto/solana-go"

// TokenProgramID is the classic SPL Token program.
var TokenProgramID = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

// Token2022ProgramID is the Token-2022 program.
var Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

// Instruction tags for the subset of SPL Token instructions the transfer
// scan needs to recognize.
const (
	TagTransfer        = 3
	TagTransferChecked = 12
)

// IsTokenProgram reports whether programID is one of the two token program
// ids the transfer-attribution scan treats as transfer-capable.
func IsTokenProgram(programID solana.PublicKey) bool {
	return programID.Equals(TokenProgramID) || programID.Equals(Token2022ProgramID)
}

// IsTransferInstruction reports whether data's leading instruction tag is a
// Transfer or TransferChecked instruction.
func IsTransferInstruction(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	switch data[0] {
	case TagTransfer, TagTransferChecked:
		return true
	default:
		return false
	}
}

// Amount extracts the little-endian u64 amount field that both Transfer and
// TransferChecked encode immediately after the instruction tag.
func Amount(data []byte) (uint64, bool) {
	if len(data) < 9 {
		return 0, false
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(data[1+i]) << (8 * i)
	}
	return v, true
}
