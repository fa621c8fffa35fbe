// Package buildmode resolves whether the binary runs as a development or a
// production build. The default comes from the "prod" build tag and may be
// overridden once at startup through configuration.
package buildmode
