package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize is the packet limit enforced by validators.
	//
	// Reference: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

type Signature [ed25519.SignatureSize]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

type Blockhash [sha256.Size]byte

func (b Blockhash) String() string {
	return base58.Encode(b[:])
}

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is a legacy (unversioned) transaction message.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into a legacy transaction paid for
// by payer. The blockhash is left empty and must be set before signing.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}
	for _, ix := range instructions {
		accounts = append(accounts, AccountMeta{PublicKey: ix.Program, isProgram: true})
		accounts = append(accounts, ix.Accounts...)
	}

	accounts = filterUnique(accounts)
	sort.Sort(SortableAccountMeta(accounts))

	var m Message
	for _, account := range accounts {
		m.Accounts = append(m.Accounts, account.PublicKey)

		if account.IsSigner {
			m.Header.NumSignatures++
			if !account.IsWritable {
				m.Header.NumReadonlySigned++
			}
		} else if !account.IsWritable {
			m.Header.NumReadOnly++
		}
	}

	for _, ix := range instructions {
		compiled := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, ix.Program)),
			Data:         ix.Data,
		}
		for _, account := range ix.Accounts {
			compiled.Accounts = append(compiled.Accounts, byte(indexOf(m.Accounts, account.PublicKey)))
		}
		m.Instructions = append(m.Instructions, compiled)
	}

	for i := range m.Accounts {
		if len(m.Accounts[i]) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// Payer is the first static account, which always pays the fee.
func (t *Transaction) Payer() ed25519.PublicKey {
	if len(t.Message.Accounts) == 0 {
		return nil
	}
	return t.Message.Accounts[0]
}

func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

// RequiredSigners returns the accounts whose signatures the message expects,
// in signature order.
func (t *Transaction) RequiredSigners() []ed25519.PublicKey {
	return t.Message.Accounts[:t.Message.Header.NumSignatures]
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		fmt.Fprintf(&sb, "  %d: %s\n", i, s.String())
	}
	sb.WriteString("Message:\n")
	sb.WriteString("  Header:\n")
	fmt.Fprintf(&sb, "    NumSignatures: %d\n", t.Message.Header.NumSignatures)
	fmt.Fprintf(&sb, "    NumReadOnly: %d\n", t.Message.Header.NumReadOnly)
	fmt.Fprintf(&sb, "    NumReadOnlySigned: %d\n", t.Message.Header.NumReadonlySigned)
	fmt.Fprintf(&sb, "  RecentBlockhash: %s\n", t.Message.RecentBlockhash.String())
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		fmt.Fprintf(&sb, "    %d: %s\n", i, base58.Encode(a))
	}
	sb.WriteString("  Instructions:\n")
	for i, ix := range t.Message.Instructions {
		fmt.Fprintf(&sb, "    %d:\n", i)
		fmt.Fprintf(&sb, "      ProgramIndex: %d\n", ix.ProgramIndex)
		fmt.Fprintf(&sb, "      Accounts: %v\n", ix.Accounts)
		fmt.Fprintf(&sb, "      Data: %x\n", ix.Data)
	}
	return sb.String()
}

// filterUnique collapses duplicate keys, promoting the strongest permissions
// seen for each.
func filterUnique(accounts []AccountMeta) []AccountMeta {
	filtered := make([]AccountMeta, 0, len(accounts))

outer:
	for _, account := range accounts {
		for j := range filtered {
			if !bytes.Equal(account.PublicKey, filtered[j].PublicKey) {
				continue
			}

			filtered[j].IsSigner = filtered[j].IsSigner || account.IsSigner
			filtered[j].IsWritable = filtered[j].IsWritable || account.IsWritable
			filtered[j].isPayer = filtered[j].isPayer || account.isPayer
			continue outer
		}

		filtered = append(filtered, account)
	}

	return filtered
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}
	return -1
}
