package license

import (
	"crypto/rand"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var segments = []int{8, 4, 4, 4, 12}

// NewKey generates a license key of the form XXXXXXXX-XXXX-XXXX-XXXX-XXXXXXXXXXXX.
func NewKey() string {
	var total int
	for _, n := range segments {
		total += n
	}

	buf := make([]byte, total)
	_, _ = rand.Read(buf)

	var b strings.Builder
	pos := 0
	for i, n := range segments {
		if i > 0 {
			b.WriteByte('-')
		}
		for j := 0; j < n; j++ {
			b.WriteByte(alphabet[int(buf[pos])%len(alphabet)])
			pos++
		}
	}
	return b.String()
}
