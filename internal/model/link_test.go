package model

import "testing"

func TestDeriveKind(t *testing.T) {
	cases := []struct {
		code string
		want LinkKind
	}{
		{"abc123", KindLink},
		{"c-notes", KindSnippet},
		{"f-report", KindFile},
		{"b-alice", KindBio},
		{"", KindLink},
		{"c-", KindSnippet},
		// Only the hyphenated prefix carries meaning.
		{"cabbage", KindLink},
		{"files", KindLink},
		{"bc-x", KindLink},
	}
	for _, tc := range cases {
		if got := DeriveKind(tc.code); got != tc.want {
			t.Errorf("DeriveKind(%q): got %q want %q", tc.code, got, tc.want)
		}
	}
}

func TestKindPrefix(t *testing.T) {
	cases := []struct {
		kind LinkKind
		want string
	}{
		{KindLink, ""},
		{KindSnippet, "c-"},
		{KindFile, "f-"},
		{KindBio, "b-"},
	}
	for _, tc := range cases {
		if got := KindPrefix(tc.kind); got != tc.want {
			t.Errorf("KindPrefix(%q): got %q want %q", tc.kind, got, tc.want)
		}
	}
}
