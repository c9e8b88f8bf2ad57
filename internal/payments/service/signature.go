package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer computes and checks gateway payment signatures:
// hex(HMAC_SHA256(secret, orderID + "|" + paymentID)).
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) Sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Signer) Verify(orderID, paymentID, signature string) bool {
	return hmac.Equal([]byte(s.Sign(orderID, paymentID)), []byte(signature))
}
