package speech

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no_quotes", "A red chair near a window.", "A red chair near a window."},
		{"double_quotes", `A sign that says "open".`, "A sign that says open."},
		{"single_quotes", "It's a dog's toy", "Its a dogs toy"},
		{"mixed", `She said "it's here"`, "She said its here"},
		{"empty", "", ""},
		{"only_quotes", `"'"'`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.in); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
