package session

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const (
	suffixLength = 9
	base36       = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var (
	nowFunc   = time.Now
	base36Max = big.NewInt(int64(len(base36)))
)

// Generate returns a new session identifier: the current unix-millisecond
// timestamp followed by a 9 character lowercase base36 random suffix.
func Generate() (string, error) {
	suffix := make([]byte, suffixLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, base36Max)
		if err != nil {
			return "", err
		}
		suffix[i] = base36[n.Int64()]
	}
	return strconv.FormatInt(nowFunc().UnixMilli(), 10) + string(suffix), nil
}

// Valid reports whether id has the shape produced by Generate.
func Valid(id string) bool {
	if len(id) <= suffixLength {
		return false
	}
	stamp, suffix := id[:len(id)-suffixLength], id[len(id)-suffixLength:]
	if _, err := strconv.ParseInt(stamp, 10, 64); err != nil {
		return false
	}
	for i := 0; i < len(suffix); i++ {
		c := suffix[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
