// Package storage persists client state such as session tokens. Every value
// lives under one of the registered storage keys; other keys are rejected.
package storage
