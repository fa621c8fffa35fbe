// Package table assembles the client configuration table: the active API
// endpoint, the persisted storage keys, the membership tier and order status
// dictionaries and the colour palette. A Table is built once at startup and
// handed to every component that needs it.
package table
