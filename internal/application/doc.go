// Package application provides application initialization and dependency wiring.
// It resolves the configuration table once and injects it into the handlers,
// router and HTTP server, keeping the main package focused on CLI parsing and
// orchestration.
package application
