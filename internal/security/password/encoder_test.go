package password

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestPlainEncoder_Passthrough(t *testing.T) {
	out, err := PlainEncoder{}.Encode("s3cret!")
	if err != nil {
		t.Fatal(err)
	}
	if out != "s3cret!" {
		t.Fatalf("plain encoder must store as provided, got %q", out)
	}
	if _, err := (PlainEncoder{}).Encode(""); err == nil {
		t.Fatal("empty password should be rejected")
	}
}

func TestArgon2Encoder_Roundtrip(t *testing.T) {
	phc, err := Argon2Encoder{}.Encode("CorrectHorse1!")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(phc, "$argon2id$v=19$") {
		t.Fatalf("unexpected PHC format: %q", phc)
	}
	if !Verify("CorrectHorse1!", phc) {
		t.Fatal("verify should accept the original password")
	}
	if Verify("wrong", phc) {
		t.Fatal("verify should reject a different password")
	}
}

func TestForName(t *testing.T) {
	if ForName("argon2id").Name() != "argon2id" {
		t.Fatal("argon2id should resolve to the argon2 encoder")
	}
	for _, n := range []string{"", "plain", "unknown"} {
		if ForName(n).Name() != "plain" {
			t.Fatalf("%q should fall back to the plain encoder", n)
		}
	}
}

func TestGenerateSecret(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		s, err := GenerateSecret()
		if err != nil {
			t.Fatal(err)
		}
		if len(s) != 16 {
			t.Fatalf("expected 16 hex chars, got %d (%q)", len(s), s)
		}
		if _, err := hex.DecodeString(s); err != nil {
			t.Fatalf("not hex: %q", s)
		}
		if seen[s] {
			t.Fatalf("duplicate secret generated: %q", s)
		}
		seen[s] = true
	}
}
