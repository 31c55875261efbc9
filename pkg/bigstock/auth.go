package bigstock

import (
	"crypto/sha1" //nolint:gosec // the API defines its auth key as SHA-1
	"encoding/hex"
)

// GenerateAuthKey computes the API auth key: SHA-1 of secret+account, with id
// appended when it is non-empty. It is recomputed on every call.
func (c *Client) GenerateAuthKey(id string) string {
	h := sha1.New() //nolint:gosec
	h.Write([]byte(c.secretKey))
	h.Write([]byte(c.accountID))
	if id != "" {
		h.Write([]byte(id))
	}
	return hex.EncodeToString(h.Sum(nil))
}
