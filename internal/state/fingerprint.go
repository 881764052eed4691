package state

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// fingerprintLen is the hex prefix length kept from the full digest. 64 bits
// of hash is far beyond collision risk for a corpus of news items.
const fingerprintLen = 16

// Fingerprint derives the dedup key for an item from its title and URL.
// Titles are NFC-normalized first so composed and decomposed accents hash
// identically across feed encodings.
func Fingerprint(title, url string) string {
	base := norm.NFC.String(title) + "|" + norm.NFC.String(url)
	sum := sha256.Sum256([]byte(base))

	return hex.EncodeToString(sum[:])[:fingerprintLen]
}
