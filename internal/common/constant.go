// Package common contains constants shared by the client packages.
package common

const (
	// StoragePrefix namespaces every key the client writes to the local store.
	StoragePrefix = "aztec-game-"

	// TokenStorageKey is the key of the bearer token in the local store.
	TokenStorageKey = StoragePrefix + "token"

	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	ContentTypeJSON     = "application/json"
)
