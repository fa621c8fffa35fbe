// Package palette holds the semantic colour roles used to style the client.
package palette

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Role names a semantic colour slot.
type Role string

const (
	Primary       Role = "primary"
	Secondary     Role = "secondary"
	Background    Role = "background"
	Surface       Role = "surface"
	Text          Role = "text"
	TextSecondary Role = "textSecondary"
	Error         Role = "error"
	Success       Role = "success"
	Warning       Role = "warning"
	Info          Role = "info"
	Border        Role = "border"
)

var roles = [...]Role{
	Primary, Secondary, Background, Surface, Text, TextSecondary,
	Error, Success, Warning, Info, Border,
}

var (
	// ErrInvalidColor indicates a colour is not a #RRGGBB hex value.
	ErrInvalidColor = errors.New("colour must be a #RRGGBB hex value")
	// ErrUnknownRole is returned for role names outside the palette.
	ErrUnknownRole = errors.New("unknown colour role")
)

// Color is a "#RRGGBB" hex colour.
type Color string

// RGBA decodes c into an opaque colour.
func (c Color) RGBA() (color.RGBA, error) {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	b, err := hex.DecodeString(s[1:])
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}

// Valid reports whether c decodes.
func (c Color) Valid() bool {
	_, err := c.RGBA()
	return err == nil
}

// Palette assigns exactly one colour to every role. It is a value type; copies
// never share state.
type Palette struct {
	colors [len(roles)]Color
}

// Default returns the application palette.
func Default() Palette {
	return Palette{colors: [len(roles)]Color{
		"#FF6B35", // primary
		"#F7931E", // secondary
		"#FFFFFF", // background
		"#F5F5F5", // surface
		"#212121", // text
		"#757575", // textSecondary
		"#D32F2F", // error
		"#388E3C", // success
		"#F57C00", // warning
		"#1976D2", // info
		"#E0E0E0", // border
	}}
}

// Roles lists every role in display order.
func Roles() []Role {
	out := make([]Role, len(roles))
	copy(out, roles[:])
	return out
}

// ParseRole resolves a role name.
func ParseRole(name string) (Role, error) {
	for _, r := range roles {
		if strings.EqualFold(string(r), strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

// Lookup returns the colour assigned to role.
func (p Palette) Lookup(role Role) (Color, error) {
	for i, r := range roles {
		if r == role {
			return p.colors[i], nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, string(role))
}

// Map returns a fresh role to colour mapping.
func (p Palette) Map() map[Role]Color {
	out := make(map[Role]Color, len(roles))
	for i, r := range roles {
		out[r] = p.colors[i]
	}
	return out
}

// Validate checks that every role carries a decodable colour.
func (p Palette) Validate() error {
	for i, r := range roles {
		if _, err := p.colors[i].RGBA(); err != nil {
			return fmt.Errorf("role %s: %w", r, err)
		}
	}
	return nil
}
