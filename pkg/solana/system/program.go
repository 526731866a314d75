package system

import (
	"crypto/ed25519"
)

// ProgramKey is the system program, which owns every wallet and creates new
// program accounts.
//
// Current key: 11111111111111111111111111111111
var ProgramKey = make(ed25519.PublicKey, ed25519.PublicKeySize)
