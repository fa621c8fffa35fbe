package table

import (
	"golang.org/x/text/language"

	"github.com/bigboy/appconfig/internal/membership"
	"github.com/bigboy/appconfig/internal/orderstatus"
	"github.com/bigboy/appconfig/internal/palette"
	"github.com/bigboy/appconfig/internal/storagekeys"
)

// Snapshot is the serialisable form of a Table rendered for one language.
type Snapshot struct {
	BuildMode       string            `json:"buildMode" yaml:"build_mode"`
	Locale          string            `json:"locale" yaml:"locale"`
	Endpoint        EndpointView      `json:"endpoint" yaml:"endpoint"`
	StorageKeys     storagekeys.Set   `json:"storageKeys" yaml:"storage_keys"`
	MembershipTiers []TierView        `json:"membershipTiers" yaml:"membership_tiers"`
	OrderStatuses   []StatusView      `json:"orderStatuses" yaml:"order_statuses"`
	Colors          map[string]string `json:"colors" yaml:"colors"`
}

// EndpointView exposes the endpoint together with its joined prefix.
type EndpointView struct {
	BaseURL    string `json:"baseUrl" yaml:"base_url"`
	APIVersion string `json:"apiVersion" yaml:"api_version"`
	Prefix     string `json:"prefix" yaml:"prefix"`
}

// TierView is a membership tier rendered for display.
type TierView struct {
	Code        string   `json:"code" yaml:"code"`
	Label       string   `json:"label" yaml:"label"`
	MinSpending int64    `json:"minSpending" yaml:"min_spending"`
	Benefits    []string `json:"benefits" yaml:"benefits"`
}

// StatusView is an order status rendered for display.
type StatusView struct {
	Code     string `json:"code" yaml:"code"`
	Label    string `json:"label" yaml:"label"`
	Terminal bool   `json:"terminal" yaml:"terminal"`
}

// Snapshot renders the table with labels in lang.
func (t Table) Snapshot(lang language.Tag) Snapshot {
	ep := t.endpoint
	return Snapshot{
		BuildMode: t.mode.String(),
		Locale:    lang.String(),
		Endpoint: EndpointView{
			BaseURL:    ep.BaseURL,
			APIVersion: ep.APIVersion,
			Prefix:     ep.Prefix(),
		},
		StorageKeys:     t.storageKeys,
		MembershipTiers: t.TierViews(lang),
		OrderStatuses:   t.StatusViews(lang),
		Colors:          t.ColorMap(),
	}
}

// TierViews renders every membership tier in lang.
func (t Table) TierViews(lang language.Tag) []TierView {
	tiers := t.MembershipTiers()
	out := make([]TierView, 0, len(tiers))
	for _, tier := range tiers {
		view, err := TierViewOf(tier, lang)
		if err != nil {
			continue
		}
		out = append(out, view)
	}
	return out
}

// TierViewOf renders a single tier in lang.
func TierViewOf(tier membership.Tier, lang language.Tag) (TierView, error) {
	info, err := membership.Describe(tier)
	if err != nil {
		return TierView{}, err
	}
	benefits := make([]string, len(info.Benefits))
	for i, b := range info.Benefits {
		benefits[i] = b.In(lang)
	}
	return TierView{
		Code:        info.Tier.String(),
		Label:       info.Label.In(lang),
		MinSpending: info.MinSpending,
		Benefits:    benefits,
	}, nil
}

// StatusViews renders every order status in lang.
func (t Table) StatusViews(lang language.Tag) []StatusView {
	statuses := t.OrderStatuses()
	out := make([]StatusView, len(statuses))
	for i, s := range statuses {
		out[i] = StatusViewOf(s, lang)
	}
	return out
}

// StatusViewOf renders a single status in lang.
func StatusViewOf(s orderstatus.Status, lang language.Tag) StatusView {
	return StatusView{
		Code:     s.String(),
		Label:    s.Label(lang),
		Terminal: s.Terminal(),
	}
}

// ColorMap returns the palette keyed by role name.
func (t Table) ColorMap() map[string]string {
	out := make(map[string]string, len(palette.Roles()))
	for role, c := range t.palette.Map() {
		out[string(role)] = string(c)
	}
	return out
}
