// Package client contains the transport side of the babyguessr client.
//
// # Overview
//
// The package provides:
//  1. The REST contract of the event service (see the Client interface):
//     event lookup and creation, guess submission and editing, and the admin
//     operations (claim, description, settings, answer, deletion).
//  2. A JSON/HTTP implementation (see HTTPClient) that stamps every request
//     with an X-Request-Id, forwards credentials as bearer tokens, and maps
//     HTTP status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens an
//     SQLite database and applies the embedded goose migrations.
//
// # Error Handling
//
// Failures are reported through sentinels matched with errors.Is:
// ErrNotFound, ErrUnauthorized, ErrUnavailable and ErrSubmissionFailed.
// ErrUnavailable wraps ErrSubmissionFailed so callers of mutating operations
// can test a single value.
//
// Tokens are forwarded, never checked; the server is the authority.
package client
