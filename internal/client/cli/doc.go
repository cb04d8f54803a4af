// Package cli provides the interactive Aztec Temple command-line client.
//
// It wires configuration, the local token store, the HTTP API client and the
// game controller behind a line-oriented REPL. Typical flow: restore the
// session from the stored token (or show the login prompt), start a
// background liveness probe, and execute user commands.
//
// Key features:
//   - Login with a Twitter username, Logout
//   - Verify (attestation) and Propose, each with its own cooldown
//   - Leaderboard with medal markers for the top three
//   - Stats refresh, message log replay, local token inspection (whoami)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
