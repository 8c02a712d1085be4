package cashfree

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Hmac256Base64 is a function to generate a base64 HMAC-SHA256 hash.
func Hmac256Base64(body, key []byte) string {
	hash := hmac.New(sha256.New, key)
	hash.Write(body)
	return base64.StdEncoding.EncodeToString(hash.Sum(nil))
}

func hmacEqual(expected, received string) bool {
	return hmac.Equal([]byte(expected), []byte(received))
}
