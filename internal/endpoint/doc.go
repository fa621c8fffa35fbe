// Package endpoint describes where the backend API lives and how request URLs
// are built from the active base URL and the API version segment.
package endpoint
