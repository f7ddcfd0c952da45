package core

import "testing"

func TestParseAccountRef(t *testing.T) {
	cases := []struct {
		in   string
		kind AccountKind
		id   string
		nil_ bool
		err  bool
	}{
		{"asset:a1", KindAsset, "a1", false, false},
		{"card:c9", KindCard, "c9", false, false},
		{"liab:l2", KindLiability, "l2", false, false},
		{"", "", "", true, false},
		{"  ", "", "", true, false},
		{"asset:", "", "", false, true},
		{"noseparator", "", "", false, true},
		{"bank:a1", "", "", false, true},
	}
	for i, tc := range cases {
		ref, err := ParseAccountRef(tc.in)
		if tc.err {
			if err == nil {
				t.Fatalf("case %d: expected error for %q", i, tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if tc.nil_ {
			if ref != nil {
				t.Fatalf("case %d: expected nil ref, got %v", i, ref)
			}
			continue
		}
		if ref.Kind != tc.kind || ref.ID != tc.id {
			t.Fatalf("case %d: got %v", i, ref)
		}
	}
}

func TestAccountRefString(t *testing.T) {
	ref := AccountRef{Kind: KindLiability, ID: "x7"}
	if got := ref.String(); got != "liab:x7" {
		t.Fatalf("String() = %q", got)
	}
	parsed, err := ParseAccountRef(ref.String())
	if err != nil || parsed == nil || *parsed != ref {
		t.Fatalf("round trip failed: %v %v", parsed, err)
	}
}

// An id containing a colon keeps everything after the first separator.
func TestAccountRefColonInID(t *testing.T) {
	ref, err := ParseAccountRef("asset:a:b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.ID != "a:b" {
		t.Fatalf("id = %q, want a:b", ref.ID)
	}
}
