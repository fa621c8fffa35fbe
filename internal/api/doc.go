// Package api exposes the client configuration table over HTTP so the mobile
// client can fetch endpoint details, storage keys, label dictionaries and the
// colour palette at startup.
package api
