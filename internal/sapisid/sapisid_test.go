package sapisid_test

import (
	"strings"
	"testing"
	"time"

	"recorderctl/internal/sapisid"
)

func TestTokenKnownValue(t *testing.T) {
	at := time.Unix(1700000000, 0)
	got := sapisid.Token("sapisid-secret", "https://recorder.google.com", at)
	want := "1700000000_8833cfa028023110a6721aaa439b4bd165810ae3"
	if got != want {
		t.Fatalf("token mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestTokenChangesWithClock(t *testing.T) {
	first := sapisid.Token("s", "o", time.Unix(100, 0))
	second := sapisid.Token("s", "o", time.Unix(101, 0))
	if first == second {
		t.Fatal("tokens for different timestamps must differ")
	}
}

func TestTokenIgnoresSubSecondPrecision(t *testing.T) {
	base := time.Unix(1700000000, 0)
	if sapisid.Token("s", "o", base) != sapisid.Token("s", "o", base.Add(500*time.Millisecond)) {
		t.Fatal("tokens within the same second must match")
	}
}

func TestAuthorizationScheme(t *testing.T) {
	value := sapisid.Authorization("s", "o", time.Unix(1, 0))
	if !strings.HasPrefix(value, "SAPISIDHASH 1_") {
		t.Fatalf("unexpected header value %q", value)
	}
}
