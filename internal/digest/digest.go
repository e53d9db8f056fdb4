package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Domain prefixes. The version suffix allows changing the encoding later
// without mixing old and new digests.
const (
	DomainText       = "decor/text/v1"
	DomainMarkup     = "decor/markup/v1"
	DomainDecorators = "decor/decorators/v1"
)

// Sum returns the hex BLAKE3 digest of v's canonical JSON under domain.
func Sum(domain string, v any) (string, error) {
	data, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", domain, err)
	}
	return hashWithDomain(domain, data), nil
}

// Text digests a string. Strings always serialize, so it cannot fail.
func Text(domain, s string) string {
	data, _ := MarshalCanonical(s)
	return hashWithDomain(domain, data)
}

// hashWithDomain computes BLAKE3(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := blake3.New()
	_, _ = h.Write([]byte(domain))
	_, _ = h.Write([]byte{0x00})
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
