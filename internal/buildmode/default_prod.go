//go:build prod

// This file is compiled for production builds (-tags prod).

package buildmode

const compiledMode = Production
