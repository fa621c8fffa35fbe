package orderstatus

import (
	"errors"
	"slices"
	"testing"

	"golang.org/x/text/language"
)

func TestAllIsClosedSetOfSix(t *testing.T) {
	want := []Status{Pending, Confirmed, Preparing, Ready, Served, Cancelled}
	if got := All(); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestEveryStatusHasOneLabelPerLocale(t *testing.T) {
	seen := map[string]Status{}
	for _, s := range All() {
		labels := s.Labels()
		if !labels.Complete() {
			t.Fatalf("status %s is missing a label", s)
		}
		en := labels.In(language.English)
		if other, dup := seen[en]; dup {
			t.Fatalf("statuses %s and %s share label %q", s, other, en)
		}
		seen[en] = s
	}
}

func TestCodesAreWireValues(t *testing.T) {
	for _, s := range All() {
		if string(s) != s.String() {
			t.Fatalf("String mismatch for %s", s)
		}
	}
	if Served.Label(language.English) != "Delivered" {
		t.Fatalf("unexpected label %s", Served.Label(language.English))
	}
	if Pending.Label(language.Vietnamese) != "Chờ xác nhận" {
		t.Fatalf("unexpected label %s", Pending.Label(language.Vietnamese))
	}
}

func TestParse(t *testing.T) {
	got, err := Parse("PREPARING")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got != Preparing {
		t.Fatalf("expected preparing, got %s", got)
	}
	if _, err := Parse("shipped"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
	if Status("shipped").Labels() != nil {
		t.Fatalf("expected no labels for unknown status")
	}
	if Status("shipped").Label(language.English) != "shipped" {
		t.Fatalf("unknown status should fall back to its code")
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range All() {
		want := s == Served || s == Cancelled
		if s.Terminal() != want {
			t.Fatalf("Terminal(%s) = %v, want %v", s, s.Terminal(), want)
		}
	}
}
