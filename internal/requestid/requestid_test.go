package requestid

import (
	"regexp"
	"testing"
)

var idRE = regexp.MustCompile(`^\d{14}-[0-9a-f]{12}$`)

func TestGenFormat(t *testing.T) {
	id := Gen()
	if !idRE.MatchString(id) {
		t.Fatalf("id=%q does not match expected format", id)
	}
}

func TestGenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := Gen()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
