package user

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	emailConfirmSalt = []byte("email-confirm")
	NowFunc          = time.Now // mockable

	// errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	tsEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// tokenGenerator signs email addresses into time-limited verification tokens:
// `<base64(email)>.<base32(unix seconds)>.<base64(signature)>`.
type tokenGenerator struct {
	key    [32]byte
	maxAge time.Duration
}

func newTokenGenerator(secretKey string, maxAge time.Duration) *tokenGenerator {
	return &tokenGenerator{
		key:    sha256.Sum256(append(append([]byte{}, emailConfirmSalt...), secretKey...)),
		maxAge: maxAge,
	}
}

// makeToken generates an email verification token for the given email.
func (tg *tokenGenerator) makeToken(email string) string {
	return tg.makeTokenWithTimestamp(email, NowFunc().Unix())
}

// verifyToken checks an email verification token and returns the email it was issued for.
func (tg *tokenGenerator) verifyToken(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", ErrInvalidToken
	}

	emailBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalidToken
	}
	tsBytes, err := tsEncoding.DecodeString(parts[1])
	if err != nil {
		return "", ErrInvalidToken
	}
	ts, err := strconv.ParseInt(string(tsBytes), 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}

	// check that token has not been tampered with
	email := string(emailBytes)
	if subtle.ConstantTimeCompare([]byte(tg.makeTokenWithTimestamp(email, ts)), []byte(token)) == 0 {
		return "", ErrInvalidToken
	}

	// check that the timestamp is within limit
	if NowFunc().Sub(time.Unix(ts, 0)) > tg.maxAge {
		return "", ErrTokenExpired
	}
	return email, nil
}

func (tg *tokenGenerator) makeTokenWithTimestamp(email string, ts int64) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(email)) + "." +
		tsEncoding.EncodeToString([]byte(strconv.FormatInt(ts, 10)))
	return payload + "." + tg.sign(payload)
}

func (tg *tokenGenerator) sign(val string) string {
	h := hmac.New(sha256.New, tg.key[:])
	_, _ = h.Write([]byte(val))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
