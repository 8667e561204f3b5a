package taxid

import "testing"

func TestValidCPF(t *testing.T) {
	cases := []struct {
		digits string
		want   bool
	}{
		{"24945952078", true},
		{"67752134414", true},
		{"12345678901", false},
		{"11111111111", false},
		{"00000000000", false},
		{"24945952079", false},
		{"2494595207", false},
	}
	for _, tc := range cases {
		if got := validCPF(tc.digits); got != tc.want {
			t.Errorf("validCPF(%q) = %v, want %v", tc.digits, got, tc.want)
		}
	}
}

func TestStripNonDigits(t *testing.T) {
	if got := stripNonDigits("249.459.520-78"); got != "24945952078" {
		t.Fatalf("stripNonDigits = %q", got)
	}
	if got := stripNonDigits("abc"); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
