package license

import (
	"regexp"
	"testing"
)

var keyFormat = regexp.MustCompile(`^[A-Z0-9]{8}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{12}$`)

func TestNewKeyFormat(t *testing.T) {
	key := NewKey()
	if !keyFormat.MatchString(key) {
		t.Fatalf("unexpected key format: %q", key)
	}
}

func TestNewKeyUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key := NewKey()
		if seen[key] {
			t.Fatalf("duplicate key generated: %q", key)
		}
		seen[key] = true
	}
}
