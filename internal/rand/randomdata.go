// Package rand generates random payloads and names for tests. A single
// seeded source is shared behind a mutex so parallel tests may call in
// concurrently.
package rand

import (
	"math/rand"
	"sync"
	"time"
)

var (
	mu   sync.Mutex
	rgen = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec
)

// Bytes returns n random bytes.
func Bytes(n int) []byte {
	buf := make([]byte, n)
	mu.Lock()
	_, _ = rgen.Read(buf)
	mu.Unlock()
	return buf
}

const letters = "abcdefghijklmnopqrstuvwxyz0123456789"

// LetterString returns a random string of length n picked from
// [a-z0-9], safe for file and resource names.
func LetterString(n int) string {
	buf := Bytes(n)
	for i, b := range buf {
		buf[i] = letters[int(b)%len(letters)]
	}
	return string(buf)
}
