package util

import "testing"

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"admin@acme.com":  "a…@a….com",
		"a@b.co":          "a@b.co",
		"":                "",
		"noatsign":        "n…n",
		"ab":              "***",
		"Admin@ACME.com":  "a…@a….com",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret(""); got != "" {
		t.Fatalf("empty secret: %q", got)
	}
	if got := MaskSecret("short"); got != "****" {
		t.Fatalf("short secret: %q", got)
	}
	if got := MaskSecret("cf-token-abcdef123456"); got[:4] != "cf-t" || len(got) != len("cf-token-abcdef123456") {
		t.Fatalf("long secret: %q", got)
	}
}
