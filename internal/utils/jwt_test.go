package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-for-testing"

func init() {
	SetJWTSecret(testSecret)
}

func TestParseToken_CarriesActorClaims(t *testing.T) {
	token, err := GenerateToken(42, "ursula", "manager", 24)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "ursula" || claims.Role != "manager" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "taskhub" {
		t.Errorf("Issuer = %q, expected taskhub", claims.Issuer)
	}
	if claims.NotBefore == nil || claims.IssuedAt == nil {
		t.Error("expected iat and nbf to be set")
	}
}

func TestGenerateToken_ExpiresAfterConfiguredHours(t *testing.T) {
	token, _ := GenerateToken(1, "ursula", "member", 3)
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}

	diff := claims.ExpiresAt.Time.Sub(time.Now().Add(3 * time.Hour))
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry off by %v", diff)
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(7, "late", "member", -1)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("ParseToken should reject an expired token")
	}
}

func TestParseToken_RotatedSecret(t *testing.T) {
	SetJWTSecret("before-rotation")
	token, _ := GenerateToken(1, "ursula", "admin", 24)
	SetJWTSecret("after-rotation")
	_, err := ParseToken(token)
	SetJWTSecret(testSecret)

	if err == nil {
		t.Error("tokens signed before a secret rotation should be rejected")
	}
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(hs512); err == nil {
		t.Error("ParseToken should only accept HS256")
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(none); err == nil {
		t.Error("ParseToken should reject unsigned tokens")
	}
}

func TestParseToken_Malformed(t *testing.T) {
	for _, token := range []string{"", "invalid", "not.a.token", "Bearer abc"} {
		if _, err := ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q) should return error", token)
		}
	}
}
