package ir

import (
	"encoding/hex"
	"fmt"

	"github.com/minio/highwayhash"
)

// hashKey is a fixed 32-byte highwayhash key, matching the teacher's
// inspector/graph package's convention of a constant key so that hashes are
// reproducible across invocations rather than salted per-run.
var hashKey = []byte("ir-compiler-target-hash-key-32b!")

// TargetID computes the deterministic 12-hex-character target id (spec §6:
// "12-hex-character lowercase truncation of a 64-bit stable hash") over the
// tuple (page, name, strategy, locatorValue).
func TargetID(page, name, strategy, locatorValue string) (string, error) {
	data := []byte(fmt.Sprintf("%s\x00%s\x00%s\x00%s", page, name, strategy, locatorValue))
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return "", err
	}
	if _, err := hash.Write(data); err != nil {
		return "", err
	}
	sum := hash.Sum64()
	full := hex.EncodeToString([]byte{
		byte(sum >> 56), byte(sum >> 48), byte(sum >> 40), byte(sum >> 32),
		byte(sum >> 24), byte(sum >> 16), byte(sum >> 8), byte(sum),
	})
	return full[:12], nil
}
