package codec

import (
	"crypto/sha1"
	"encoding/hex"

	"github.com/ravenfield/argus-deepval/deepval"
)

// Fingerprint returns the SHA-1 of v's encoded form. It identifies the
// representation, not the equivalence class: mapping key order and set
// element order feed the hash, so two deep-equal values built in different
// orders may fingerprint differently. Equal fingerprints do imply
// deep-equal values.
func Fingerprint(v deepval.Value) ([sha1.Size]byte, error) {
	data, err := Encode(v)
	if err != nil {
		return [sha1.Size]byte{}, err
	}
	return sha1.Sum(data), nil
}

// FingerprintHex is Fingerprint rendered as a hex string.
func FingerprintHex(v deepval.Value) (string, error) {
	sum, err := Fingerprint(v)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum[:]), nil
}
