package jwt

import (
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"campus-timetable/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "campus-auth",
		AccessTokenTTL: 15 * time.Minute,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(Identity{UserID: "user-1", Role: RoleTeacher, StaffID: "T1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.Role != RoleTeacher {
		t.Errorf("期望 Role=teacher，实际=%s", claims.Role)
	}
	if claims.StaffID != "T1" {
		t.Errorf("期望 StaffID=T1，实际=%s", claims.StaffID)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 TokenType=access，实际=%s", claims.TokenType)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	token, _ := m.GenerateAccessToken(Identity{UserID: "u", Role: RoleAdmin})

	other := NewManager(&config.AuthConfig{JWTSecret: "another-secret-key-000000", Issuer: "campus-auth"})
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	m := newTestManager()
	token, _ := m.GenerateAccessToken(Identity{UserID: "u", Role: RoleAdmin})

	other := NewManager(&config.AuthConfig{JWTSecret: "test-secret-key-for-unit-testing-2026", Issuer: "someone-else"})
	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		Issuer:         "campus-auth",
		AccessTokenTTL: -time.Minute,
	})
	token, _ := m.GenerateAccessToken(Identity{UserID: "u", Role: RoleAdmin})

	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_RejectsNoneAlgorithm(t *testing.T) {
	m := newTestManager()
	claims := Claims{UserID: "u", Role: RoleAdmin, TokenType: "access",
		RegisteredClaims: jwtv5.RegisteredClaims{Issuer: "campus-auth"}}
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims)
	s, err := token.SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("构造 none token 失败: %v", err)
	}

	if _, err := m.ParseToken(s); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager()
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
