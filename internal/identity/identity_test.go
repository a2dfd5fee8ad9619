package identity

import (
	"errors"
	"testing"
	"time"
)

func TestAnonymous(t *testing.T) {
	if _, ok := (Anonymous{}).CurrentUser(); ok {
		t.Error("Anonymous should never report a player")
	}
}

func TestStatic(t *testing.T) {
	who := Identity{ID: "u1", DisplayName: "Seal", EmailVerified: true}
	got, ok := NewStatic(who).CurrentUser()
	if !ok || got != who {
		t.Errorf("CurrentUser() = %+v, %v; expected %+v, true", got, ok, who)
	}

	if _, ok := NewStatic(Identity{DisplayName: "nobody"}).CurrentUser(); ok {
		t.Error("Static with empty ID should report no player")
	}
}

func TestIssueAndVerify(t *testing.T) {
	secret := []byte("test-secret")
	issuer, err := NewIssuer(secret, time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer() failed: %v", err)
	}
	verifier, err := NewVerifier(secret)
	if err != nil {
		t.Fatalf("NewVerifier() failed: %v", err)
	}

	who := Identity{ID: "u42", DisplayName: "Walrus", EmailVerified: true}
	token, err := issuer.Issue(who)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	got, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if got != who {
		t.Errorf("Verify() = %+v, expected %+v", got, who)
	}
}

func TestVerifyRejects(t *testing.T) {
	issuer, _ := NewIssuer([]byte("right"), time.Minute)
	token, err := issuer.Issue(Identity{ID: "u1"})
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	wrong, _ := NewVerifier([]byte("wrong"))
	if _, err := wrong.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: Verify() = %v, expected ErrInvalidToken", err)
	}

	right, _ := NewVerifier([]byte("right"))
	right.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := right.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired: Verify() = %v, expected ErrInvalidToken", err)
	}

	if _, err := right.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage: Verify() = %v, expected ErrInvalidToken", err)
	}
}

func TestVerifyDefaultsDisplayName(t *testing.T) {
	issuer, _ := NewIssuer([]byte("s"), 0)
	token, _ := issuer.Issue(Identity{ID: "sub-only"})
	verifier, _ := NewVerifier([]byte("s"))

	got, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if got.DisplayName != "sub-only" || got.EmailVerified {
		t.Errorf("Verify() = %+v, expected name from subject and unverified", got)
	}
}

func TestNoSecret(t *testing.T) {
	if _, err := NewIssuer(nil, 0); !errors.Is(err, ErrNoSecret) {
		t.Errorf("NewIssuer(nil) = %v, expected ErrNoSecret", err)
	}
	if _, err := NewVerifier([]byte{}); !errors.Is(err, ErrNoSecret) {
		t.Errorf("NewVerifier(empty) = %v, expected ErrNoSecret", err)
	}
}

func TestTokenProvider(t *testing.T) {
	issuer, _ := NewIssuer([]byte("s"), time.Hour)
	verifier, _ := NewVerifier([]byte("s"))
	token, _ := issuer.Issue(Identity{ID: "u7", DisplayName: "Otter"})

	who, ok := NewTokenProvider(verifier, token).CurrentUser()
	if !ok || who.ID != "u7" {
		t.Errorf("CurrentUser() = %+v, %v; expected u7", who, ok)
	}

	if _, ok := NewTokenProvider(verifier, "").CurrentUser(); ok {
		t.Error("empty token should mean nobody is signed in")
	}
	if _, ok := NewTokenProvider(verifier, "garbage").CurrentUser(); ok {
		t.Error("invalid token should mean nobody is signed in")
	}
}
