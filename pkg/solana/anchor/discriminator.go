// Package anchor holds the encoding conventions shared by Anchor programs:
// 8 byte discriminators and Borsh serialized arguments and accounts.
package anchor

import (
	"crypto/sha256"
)

const DiscriminatorSize = 8

// InstructionDiscriminator is the prefix Anchor dispatches instructions on,
// sha256("global:<name>")[:8]. The name is the snake_case Rust handler name.
func InstructionDiscriminator(name string) []byte {
	return discriminator("global", name)
}

// AccountDiscriminator is the prefix Anchor writes at the start of every
// account it owns, sha256("account:<Name>")[:8]. The name is the Rust struct
// name.
func AccountDiscriminator(name string) []byte {
	return discriminator("account", name)
}

func discriminator(namespace, name string) []byte {
	h := sha256.Sum256([]byte(namespace + ":" + name))
	return h[:DiscriminatorSize]
}
