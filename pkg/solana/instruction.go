package solana

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"strings"

	"github.com/mr-tron/base58/base58"
)

// AccountMeta is one entry of an instruction's ordered account list.
type AccountMeta struct {
	PublicKey  ed25519.PublicKey
	IsSigner   bool
	IsWritable bool
	isPayer    bool
	isProgram  bool
}

// NewAccountMeta creates a writable AccountMeta.
func NewAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey:  pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a readonly AccountMeta.
func NewReadonlyAccountMeta(pub ed25519.PublicKey, isSigner bool) AccountMeta {
	return AccountMeta{
		PublicKey: pub,
		IsSigner:  isSigner,
	}
}

func (m AccountMeta) String() string {
	var flags []string
	if m.IsSigner {
		flags = append(flags, "signer")
	}
	if m.IsWritable {
		flags = append(flags, "writable")
	}
	return fmt.Sprintf("%s[%s]", base58.Encode(m.PublicKey), strings.Join(flags, ","))
}

// SortableAccountMeta orders account metas the way the runtime expects them
// in a message: payer, then signers, then writable, then programs last.
//
// Reference: https://docs.solana.com/transaction#account-addresses-format
type SortableAccountMeta []AccountMeta

func (s SortableAccountMeta) Len() int {
	return len(s)
}

func (s SortableAccountMeta) Less(i int, j int) bool {
	if s[i].isPayer != s[j].isPayer {
		return s[i].isPayer
	}
	if s[i].isProgram != s[j].isProgram {
		return !s[i].isProgram
	}
	if s[i].IsSigner != s[j].IsSigner {
		return s[i].IsSigner
	}
	if s[i].IsWritable != s[j].IsWritable {
		return s[i].IsWritable
	}
	return bytes.Compare(s[i].PublicKey, s[j].PublicKey) < 0
}

func (s SortableAccountMeta) Swap(i int, j int) {
	s[i], s[j] = s[j], s[i]
}

// Instruction is a single unsigned program invocation.
type Instruction struct {
	Program  ed25519.PublicKey
	Accounts []AccountMeta
	Data     []byte
}

// NewInstruction creates a new instruction.
func NewInstruction(program ed25519.PublicKey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		Program:  program,
		Data:     data,
		Accounts: accounts,
	}
}

// Signers returns the keys that must sign any transaction carrying the
// instruction.
func (i Instruction) Signers() []ed25519.PublicKey {
	var signers []ed25519.PublicKey
	for _, account := range i.Accounts {
		if account.IsSigner {
			signers = append(signers, account.PublicKey)
		}
	}
	return signers
}

func (i Instruction) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Program: %s\n", base58.Encode(i.Program))
	for idx, account := range i.Accounts {
		fmt.Fprintf(&sb, "  %d: %s\n", idx, account.String())
	}
	fmt.Fprintf(&sb, "Data: %x", i.Data)
	return sb.String()
}

// CompiledInstruction references accounts by their index in the message.
type CompiledInstruction struct {
	ProgramIndex byte
	Accounts     []byte
	Data         []byte
}
