// Package publicid mints public identifiers for assets stored in the
// external engine. The generator is an interface so tests can swap the
// random default for a deterministic counter.
package publicid

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync/atomic"
)

const (
	UploadNamespace      = "PhotoShare"
	TransformedNamespace = "PhotoShare(transformed)"
)

type Generator interface {
	// New returns "{namespace}/{email}_{suffix}".
	New(namespace, email string) string
}

// Random suffixes with 1..1000000, matching the layout the storage
// engine already holds assets under.
type Random struct{}

func (Random) New(namespace, email string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%s/%s_%d", namespace, email, n.Int64()+1)
}

// Sequential is a monotonic counter generator for tests.
type Sequential struct {
	n atomic.Int64
}

func (s *Sequential) New(namespace, email string) string {
	return fmt.Sprintf("%s/%s_%d", namespace, email, s.n.Add(1))
}
