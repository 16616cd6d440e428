package storage

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matsen/notiongraph/internal/record"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a BLAKE2b-256 digest of the records' JSON form in
// order. Equal record lists always yield equal fingerprints.
func Fingerprint(records []record.Record) (string, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("creating hash: %w", err)
	}
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("encoding record %d: %w", i, err)
		}
		h.Write(data)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
