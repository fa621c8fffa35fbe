package storagekeys

import (
	"errors"
	"testing"
)

func TestDefaultKeysAreDistinct(t *testing.T) {
	set := Default()
	if err := set.Validate(); err != nil {
		t.Fatalf("default key set invalid: %v", err)
	}

	all := set.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 keys, got %d", len(all))
	}
	for i := range all {
		for j := i + 1; j < len(all); j++ {
			if all[i] == all[j] {
				t.Fatalf("keys %d and %d collide: %s", i, j, all[i])
			}
		}
	}
}

func TestDefaultKeysAreStable(t *testing.T) {
	set := Default()
	want := map[Key]string{
		set.AccessToken: "access_token",
		set.UserData:    "user_data",
		set.GuestToken:  "guest_token",
		set.TableToken:  "table_token",
	}
	for k, literal := range want {
		if string(k) != literal {
			t.Fatalf("expected %s, got %s", literal, k)
		}
	}
}

func TestContains(t *testing.T) {
	set := Default()
	if !set.Contains(GuestToken) {
		t.Fatalf("expected guest token to be part of the set")
	}
	if set.Contains(Key("refresh_token")) {
		t.Fatalf("unexpected key reported as member")
	}
}

func TestValidateRejectsBrokenSets(t *testing.T) {
	dup := Default()
	dup.TableToken = dup.GuestToken
	if err := dup.Validate(); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	empty := Default()
	empty.UserData = " "
	if err := empty.Validate(); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}
