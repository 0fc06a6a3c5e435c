package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"medhasmind/internal/domain/profile"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("test-secret", 30*time.Minute)
	s.now = func() time.Time { return now }
	return s
}

func TestHMACService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	in := Claims{UserID: uuid.New(), Email: "a@x.com", Role: profile.RoleStudent}
	tok, err := s.Generate(in, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	out, err := s.Validate(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.UserID != in.UserID {
		t.Fatalf("user id changed: %s != %s", out.UserID, in.UserID)
	}
	if out.Email != in.Email {
		t.Fatalf("email changed: %s != %s", out.Email, in.Email)
	}
	if out.Role != in.Role {
		t.Fatalf("role changed: %s != %s", out.Role, in.Role)
	}
	if out.ID == "" {
		t.Fatalf("expected a token id")
	}
}

func TestHMACService_ExpiredToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	tok, err := s.Generate(Claims{UserID: uuid.New(), Email: "a@x.com", Role: profile.RoleStudent}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	s.now = func() time.Time { return now.Add(time.Minute) }
	if _, err := s.Validate(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired at the expiry instant, got %v", err)
	}

	s.now = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := s.Validate(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_TamperedSignature(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	tok, err := s.Generate(Claims{UserID: uuid.New(), Email: "a@x.com", Role: profile.RoleAdmin}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected a three-part token, got %d parts", len(parts))
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := s.Validate(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)

	tok, err := s.Generate(Claims{UserID: uuid.New(), Email: "a@x.com", Role: profile.RolePartner}, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	other := NewHMACService("other-secret", 30*time.Minute)
	other.now = s.now
	if _, err := other.Validate(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_GenerateRejectsIncompleteClaims(t *testing.T) {
	s := newTestService(time.Now())

	if _, err := s.Generate(Claims{Email: "a@x.com"}, 0); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without subject, got %v", err)
	}
	if _, err := s.Generate(Claims{UserID: uuid.New()}, 0); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid without email, got %v", err)
	}
}

func TestHMACService_DefaultTTL(t *testing.T) {
	s := NewHMACService("secret", 0)
	if s.TTL() != DefaultTTL {
		t.Fatalf("expected default ttl %s, got %s", DefaultTTL, s.TTL())
	}
}
