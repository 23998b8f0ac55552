package output

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint hashes a source document together with the generation
// settings. When neither changed since the last run the component can be
// skipped.
func Fingerprint(markup []byte, settings string) string {
	return composite(hashBytes(markup), hashBytes([]byte(settings)))
}

func hashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func composite(sourceHash, settingsHash string) string {
	h := sha256.Sum256([]byte(sourceHash + "|" + settingsHash))
	return hex.EncodeToString(h[:])
}
