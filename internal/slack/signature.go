package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// verifySignature checks the request signature against every configured
// secret; any match passes. Each secret is base64 decoded before keying the
// HMAC over the raw request body, and the digest is compared in base64
// form. Secrets that are not valid base64 are skipped.
func verifySignature(body []byte, secrets []string, signature string) bool {
	if signature == "" {
		return false
	}
	for _, secret := range secrets {
		key, err := base64.StdEncoding.DecodeString(secret)
		if err != nil {
			continue
		}
		mac := hmac.New(sha256.New, key)
		mac.Write(body)
		expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
		if hmac.Equal([]byte(expected), []byte(signature)) {
			return true
		}
	}
	return false
}
