// Package client is the single choke point for talking to the Aztec Temple
// game server.
//
// # Overview
//
//  1. Client is the transport-agnostic contract the game service depends on:
//     Health, VerifyUsername, GetProfile, VerifyAttestation, SubmitProposal,
//     GetLeaderboard, plus token management (Token, SetToken, ClearToken).
//  2. HTTPClient implements it over JSON/HTTP. Every request carries
//     Content-Type: application/json, a fresh X-Request-ID and, when a token
//     is held, Authorization: Bearer <token>. Responses are always decoded as
//     JSON; non-2xx statuses become *RequestError with the server's "error"
//     field as the message. Nothing is retried.
//  3. InitDatabase opens the local SQLite store and applies the embedded
//     goose migrations. The token itself is persisted through TokenStore.
//
// # Error Handling
//
// Match with errors.Is / errors.As: ErrUnavailable (transport failures),
// ErrUnauthorized (401/403), ErrCannotConnect (failed health check) and
// *RequestError for everything a request can fail with.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use: the background liveness probe reads
// the token while REPL commands may replace it. All calls honor ctx.
package client
