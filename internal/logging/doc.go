// Package logging builds the zap JSON logger shared by the service.
package logging
