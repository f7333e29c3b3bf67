package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashIP produces the opaque submitter identifier stored with comments and
// audit entries. One-way: the raw address must never be persisted or logged.
// The salt is deployment-wide config; changing it breaks correlation with
// prior hashes, which is acceptable and occasionally desirable.
func HashIP(ip, salt string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(salt + "|" + ip))
	return hex.EncodeToString(sum[:])
}
