//go:build !prod

package buildmode

const compiledMode = Development
