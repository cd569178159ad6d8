package primitive

import "testing"

func TestIsKebabCase(t *testing.T) {
	cases := map[string]bool{
		"bash-validator":  true,
		"a":               true,
		"a-b-c":           true,
		"":                false,
		"Bash-Validator":  false,
		"-leading":        false,
		"trailing-":       false,
		"double--hyphen":  false,
		"has_underscore":  false,
		"1starts-digit":   false,
		"has space":       false,
	}
	for in, want := range cases {
		if got := IsKebabCase(in); got != want {
			t.Errorf("IsKebabCase(%q) = %v, want %v", in, got, want)
		}
	}
}
