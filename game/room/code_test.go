package room

import (
	"strings"
	"testing"
)

func TestNewCode_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewCode()
		if len(code) != CodeLength {
			t.Fatalf("Expected %d characters, got %q", CodeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("Code %q contains character %q outside the alphabet", code, c)
			}
		}
		if code != strings.ToUpper(code) {
			t.Errorf("Code %q is not uppercase", code)
		}
	}
}

func TestNewCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewCode()] = true
	}
	// 36^6 possibilities; 50 draws colliding down to a handful would mean
	// the generator is broken, not unlucky.
	if len(seen) < 45 {
		t.Errorf("Expected ~50 distinct codes, got %d", len(seen))
	}
}
