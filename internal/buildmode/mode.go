package buildmode

import (
	"errors"
	"fmt"
	"strings"
)

// Mode distinguishes a development build from a production build.
type Mode string

const (
	Development Mode = "development"
	Production  Mode = "production"
)

// ErrUnknownMode is returned when a build mode string cannot be recognised.
var ErrUnknownMode = errors.New("unknown build mode")

// Default returns the build mode selected at compile time.
// Builds tagged with "prod" default to Production.
func Default() Mode {
	return compiledMode
}

// Parse converts a user supplied build mode into a Mode.
func Parse(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "development", "dev", "debug":
		return Development, nil
	case "production", "prod", "release":
		return Production, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// IsProduction reports whether m is the production mode.
func (m Mode) IsProduction() bool {
	return m == Production
}

func (m Mode) String() string {
	return string(m)
}
