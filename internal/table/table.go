package table

import (
	"errors"
	"fmt"

	"github.com/bigboy/appconfig/internal/buildmode"
	"github.com/bigboy/appconfig/internal/endpoint"
	"github.com/bigboy/appconfig/internal/membership"
	"github.com/bigboy/appconfig/internal/orderstatus"
	"github.com/bigboy/appconfig/internal/palette"
	"github.com/bigboy/appconfig/internal/storagekeys"
)

const (
	tierCount   = 4
	statusCount = 6
	roleCount   = 11
)

// ErrIncompleteTable indicates a dictionary does not hold its full code set.
var ErrIncompleteTable = errors.New("configuration table is incomplete")

// Table is the read-only client configuration. The zero value is not usable;
// build one with New.
type Table struct {
	mode        buildmode.Mode
	endpoint    endpoint.Endpoint
	storageKeys storagekeys.Set
	palette     palette.Palette
}

// New builds a table for mode served from ep and validates it.
func New(mode buildmode.Mode, ep endpoint.Endpoint) (Table, error) {
	t := Table{
		mode:        mode,
		endpoint:    ep,
		storageKeys: storagekeys.Default(),
		palette:     palette.Default(),
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Mode returns the build mode the table was resolved for.
func (t Table) Mode() buildmode.Mode { return t.mode }

// Endpoint returns the active API endpoint.
func (t Table) Endpoint() endpoint.Endpoint { return t.endpoint }

// StorageKeys returns the persisted key names.
func (t Table) StorageKeys() storagekeys.Set { return t.storageKeys }

// Palette returns the colour palette.
func (t Table) Palette() palette.Palette { return t.palette }

// MembershipTiers returns the tier codes from lowest to highest.
func (t Table) MembershipTiers() []membership.Tier { return membership.All() }

// OrderStatuses returns the status codes in lifecycle order.
func (t Table) OrderStatuses() []orderstatus.Status { return orderstatus.All() }

// Validate checks the table invariants.
func (t Table) Validate() error {
	if _, err := buildmode.Parse(string(t.mode)); err != nil {
		return err
	}
	if err := t.endpoint.Validate(); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}
	if err := t.storageKeys.Validate(); err != nil {
		return fmt.Errorf("storage keys: %w", err)
	}
	if err := t.palette.Validate(); err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	tiers := t.MembershipTiers()
	if len(tiers) != tierCount {
		return fmt.Errorf("%w: %d membership tiers, want %d", ErrIncompleteTable, len(tiers), tierCount)
	}
	for _, tier := range tiers {
		info, err := membership.Describe(tier)
		if err != nil {
			return err
		}
		if !info.Label.Complete() {
			return fmt.Errorf("%w: tier %s lacks a label", ErrIncompleteTable, tier)
		}
	}

	statuses := t.OrderStatuses()
	if len(statuses) != statusCount {
		return fmt.Errorf("%w: %d order statuses, want %d", ErrIncompleteTable, len(statuses), statusCount)
	}
	for _, s := range statuses {
		if !s.Labels().Complete() {
			return fmt.Errorf("%w: status %s lacks a label", ErrIncompleteTable, s)
		}
	}

	if n := len(palette.Roles()); n != roleCount {
		return fmt.Errorf("%w: %d colour roles, want %d", ErrIncompleteTable, n, roleCount)
	}
	return nil
}
