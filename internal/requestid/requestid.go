package requestid

import (
	crand "crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

const HeaderKey = "X-Request-Id"

// Gen generates a request id: UTC timestamp plus 6 random bytes, hex encoded.
// Example: 20260831142233-9f1c04ab2d77
func Gen() string {
	return time.Now().UTC().Format("20060102150405") + "-" + randomHex(6)
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := crand.Read(b); err != nil {
		// best effort fallback
		return strings.Repeat("0", n*2)
	}
	return hex.EncodeToString(b)
}
