// Package membership defines the customer loyalty tiers, their display labels
// and the cumulative spending needed to reach each of them.
package membership

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/bigboy/appconfig/internal/locale"
)

// Tier is the stable code of a loyalty level.
type Tier string

const (
	Iron    Tier = "IRON"
	Silver  Tier = "SILVER"
	Gold    Tier = "GOLD"
	Diamond Tier = "DIAMOND"
)

// ErrUnknownTier is returned for codes outside the tier set.
var ErrUnknownTier = errors.New("unknown membership tier")

// Info describes a tier for display.
type Info struct {
	Tier        Tier
	Label       locale.Text
	MinSpending int64
	Benefits    []locale.Text
}

// tiers is ordered by ascending MinSpending.
var tiers = []Info{
	{
		Tier:        Iron,
		Label:       locale.Text{language.Vietnamese: "Sắt", language.English: "Iron"},
		MinSpending: 0,
		Benefits: []locale.Text{
			{language.Vietnamese: "Tích điểm 1%", language.English: "1% points back"},
			{language.Vietnamese: "Ưu đãi cơ bản", language.English: "Basic offers"},
		},
	},
	{
		Tier:        Silver,
		Label:       locale.Text{language.Vietnamese: "Bạc", language.English: "Silver"},
		MinSpending: 1_000_000,
		Benefits: []locale.Text{
			{language.Vietnamese: "Tích điểm 2%", language.English: "2% points back"},
			{language.Vietnamese: "Giảm giá 5%", language.English: "5% discount"},
			{language.Vietnamese: "Ưu tiên đặt bàn", language.English: "Priority table booking"},
		},
	},
	{
		Tier:        Gold,
		Label:       locale.Text{language.Vietnamese: "Vàng", language.English: "Gold"},
		MinSpending: 5_000_000,
		Benefits: []locale.Text{
			{language.Vietnamese: "Tích điểm 3%", language.English: "3% points back"},
			{language.Vietnamese: "Giảm giá 10%", language.English: "10% discount"},
			{language.Vietnamese: "Quà tặng sinh nhật", language.English: "Birthday gift"},
			{language.Vietnamese: "Ưu tiên cao", language.English: "High priority"},
		},
	},
	{
		Tier:        Diamond,
		Label:       locale.Text{language.Vietnamese: "Kim cương", language.English: "Diamond"},
		MinSpending: 10_000_000,
		Benefits: []locale.Text{
			{language.Vietnamese: "Tích điểm 5%", language.English: "5% points back"},
			{language.Vietnamese: "Giảm giá 15%", language.English: "15% discount"},
			{language.Vietnamese: "Quà tặng đặc biệt", language.English: "Special gifts"},
			{language.Vietnamese: "Ưu tiên tối đa", language.English: "Top priority"},
			{language.Vietnamese: "Dịch vụ VIP", language.English: "VIP service"},
		},
	},
}

// All returns the tiers from lowest to highest.
func All() []Tier {
	out := make([]Tier, len(tiers))
	for i, info := range tiers {
		out[i] = info.Tier
	}
	return out
}

// Parse resolves a tier code. Matching ignores case and surrounding space.
func Parse(code string) (Tier, error) {
	t := Tier(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := index(t); !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, code)
	}
	return t, nil
}

// Describe returns the display information for t.
func Describe(t Tier) (Info, error) {
	i, ok := index(t)
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	info := tiers[i]
	info.Benefits = append([]locale.Text(nil), info.Benefits...)
	return info, nil
}

// Label returns the display label of t in lang, or the code itself for unknown tiers.
func (t Tier) Label(lang language.Tag) string {
	i, ok := index(t)
	if !ok {
		return string(t)
	}
	return tiers[i].Label.In(lang)
}

// Valid reports whether t belongs to the tier set.
func (t Tier) Valid() bool {
	_, ok := index(t)
	return ok
}

func (t Tier) String() string {
	return string(t)
}

func index(t Tier) (int, bool) {
	for i, info := range tiers {
		if info.Tier == t {
			return i, true
		}
	}
	return 0, false
}
