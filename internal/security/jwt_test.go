package security

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, errGenerate := GenerateToken("secret", 7, "alice", "superadmin", time.Hour)
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}

	claims, errParse := ParseToken("secret", token)
	if errParse != nil {
		t.Fatalf("parse: %v", errParse)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != "superadmin" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, errGenerate := GenerateToken("secret", 7, "alice", "user", time.Hour)
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}

	if _, errParse := ParseToken("other", token); !errors.Is(errParse, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", errParse)
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, errGenerate := GenerateToken("secret", 7, "alice", "user", -time.Minute)
	if errGenerate != nil {
		t.Fatalf("generate: %v", errGenerate)
	}

	if _, errParse := ParseToken("secret", token); !errors.Is(errParse, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", errParse)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, errHash := HashPassword("s3cret")
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	if !CheckPassword(hash, "s3cret") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
}
