package tracking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/skip2/go-qrcode"
)

const (
	Prefix       = "FLS-SAP"
	suffixLength = 8
	alphabet     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Label PNG edge length bounds, in pixels.
	MinLabelSize     = 64
	MaxLabelSize     = 1024
	DefaultLabelSize = 256
)

// Generator returns a new tracking number. Uniqueness is enforced by the
// shipments.tracking_number constraint, callers retry on conflict.
type Generator func() string

// Generate returns Prefix followed by an upper-case base-36 suffix.
func Generate() string {
	var sb strings.Builder
	sb.Grow(len(Prefix) + suffixLength)
	sb.WriteString(Prefix)

	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < suffixLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(fmt.Sprintf("tracking: read random: %v", err))
		}
		sb.WriteByte(alphabet[n.Int64()])
	}
	return sb.String()
}

// IsWellFormed reports whether s looks like a generated tracking number.
func IsWellFormed(s string) bool {
	if len(s) != len(Prefix)+suffixLength || !strings.HasPrefix(s, Prefix) {
		return false
	}
	for _, r := range s[len(Prefix):] {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}

// Normalize upper-cases and trims user input before lookup.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// LabelSize clamps a requested label edge to [MinLabelSize, MaxLabelSize].
// Zero or negative picks DefaultLabelSize.
func LabelSize(size int) int {
	switch {
	case size <= 0:
		return DefaultLabelSize
	case size < MinLabelSize:
		return MinLabelSize
	case size > MaxLabelSize:
		return MaxLabelSize
	default:
		return size
	}
}

// LabelQR renders a PNG QR code pointing at the public tracking lookup.
func LabelQR(publicURL, trackingNumber string, size int) ([]byte, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("tracking number is required")
	}
	size = LabelSize(size)
	target := strings.TrimRight(publicURL, "/") + "/api/tracking?trackingNumber=" + trackingNumber
	return qrcode.Encode(target, qrcode.Medium, size)
}
