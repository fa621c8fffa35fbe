//go:build !prod

package buildmode

import "testing"

func TestDefaultWithoutTags(t *testing.T) {
	if Default() != Development {
		t.Fatalf("expected untagged build to default to development, got %s", Default())
	}
	if Default().IsProduction() {
		t.Fatalf("development mode must not report production")
	}
}
