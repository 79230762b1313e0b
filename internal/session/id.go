package session

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ID is an opaque 8-digit decimal session identifier (spec §3: "opaque
// 8-digit decimal string (10^7..10^8)"). Equality is exact byte equality,
// which Go string comparison already gives for free.
type ID string

const (
	idMin = 10000000
	idMax = 99999999
)

var idRange = big.NewInt(idMax - idMin + 1)

// newID generates a uniformly random 8-digit decimal ID. Grounded on
// gortsplib's server_session.go session-id generation (crypto/rand, retried
// by the caller on collision).
func newID() (ID, error) {
	n, err := rand.Int(rand.Reader, idRange)
	if err != nil {
		return "", err
	}
	return ID(fmt.Sprintf("%d", idMin+n.Int64())), nil
}
