package shared

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

const (
	// CSRFSessionKey is the key used to persist the per-session nonce.
	CSRFSessionKey = "csrf_nonce"
	// CSRFFormField is the form field name carrying the CSRF token.
	CSRFFormField = "csrf_token"
	// CSRFHeader carries the token for JSON requests.
	CSRFHeader = "X-CSRF-Token"
)

// CSRFManager issues and verifies CSRF tokens bound to a session.
type CSRFManager struct {
	secret []byte
}

// NewCSRFManager returns a CSRFManager using the provided secret key.
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret)}
}

// EnsureToken returns the token for the session, creating its nonce on first use.
// Tokens are nonce.mac where mac signs the session id and nonce.
func (m *CSRFManager) EnsureToken(sess *Session) (string, error) {
	if sess == nil {
		return "", ErrSessionMissing
	}
	nonce := sess.Get(CSRFSessionKey)
	if nonce == "" {
		buf := make([]byte, 18)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		nonce = base64.RawURLEncoding.EncodeToString(buf)
		sess.Set(CSRFSessionKey, nonce)
	}
	return nonce + "." + m.sign(sess.ID, nonce), nil
}

// VerifyToken checks the supplied token against the session.
func (m *CSRFManager) VerifyToken(sess *Session, token string) error {
	if sess == nil || token == "" {
		return ErrCSRFTokenMissing
	}
	nonce := sess.Get(CSRFSessionKey)
	if nonce == "" {
		return ErrCSRFTokenMissing
	}
	gotNonce, gotMAC, ok := strings.Cut(token, ".")
	if !ok || gotNonce != nonce {
		return ErrCSRFTokenMismatch
	}
	if !hmac.Equal([]byte(gotMAC), []byte(m.sign(sess.ID, nonce))) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

func (m *CSRFManager) sign(sessionID, nonce string) string {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(sessionID))
	_, _ = mac.Write([]byte{'|'})
	_, _ = mac.Write([]byte(nonce))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
