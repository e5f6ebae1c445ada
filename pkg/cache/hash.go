package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "<kind>:<digest>" where the digest covers the JSON encoding
// of parts. Key option structs encode their fields in declaration order, so
// equal options always give equal keys.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts) // strings and option structs only
	return kind + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data. The runner hashes process
// JSON, prior layouts and serialized layouts with it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
