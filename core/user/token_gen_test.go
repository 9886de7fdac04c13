package user

import (
	"strings"
	"testing"
	"time"
)

func TestMakeVerifyToken(t *testing.T) {
	maxAge := time.Hour
	tg := newTokenGenerator("secret", maxAge)
	email := "user@example.com"

	validToken := tg.makeToken(email)

	// generate an expired token
	NowFunc = func() time.Time { return time.Now().Add(-(maxAge + time.Minute)) }
	expiredToken := tg.makeToken(email)
	NowFunc = time.Now // reset

	otherKeyToken := newTokenGenerator("other secret", maxAge).makeToken(email)
	parts := strings.Split(validToken, ".")
	tamperedToken := "b3RoZXJAZXhhbXBsZS5jb20." + parts[1] + "." + parts[2] // other@example.com

	tests := []struct {
		name      string
		token     string
		wantEmail string
		wantErr   error
	}{
		{name: "no token", wantErr: ErrInvalidToken},
		{name: "invalid parts len", token: "lmaooolol", wantErr: ErrInvalidToken},
		{name: "invalid base64", token: "!!!.GEZDG.sig", wantErr: ErrInvalidToken},
		{name: "invalid base32", token: "dXNlcg.hahaha.sig", wantErr: ErrInvalidToken},
		{name: "invalid timestamp", token: "dXNlcg.NRXWY.sig", wantErr: ErrInvalidToken},
		{name: "invalid signature", token: parts[0] + "." + parts[1] + ".sigsig", wantErr: ErrInvalidToken},
		{name: "tampered email", token: tamperedToken, wantErr: ErrInvalidToken},
		{name: "signed with another key", token: otherKeyToken, wantErr: ErrInvalidToken},
		{name: "expired token", token: expiredToken, wantErr: ErrTokenExpired},
		{name: "valid token", token: validToken, wantEmail: email},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotEmail, err := tg.verifyToken(tt.token)
			if err != tt.wantErr {
				t.Errorf("verifyToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if gotEmail != tt.wantEmail {
				t.Errorf("verifyToken() email = %q, want %q", gotEmail, tt.wantEmail)
			}
		})
	}
}
