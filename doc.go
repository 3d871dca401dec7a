// Package authcove is a standalone authentication and session service
// core. It issues, validates, and revokes signed session tokens,
// enforces password-based primary authentication, and orchestrates an
// optional time-boxed one-time code as a second factor before granting
// a session.
//
// The package defines the domain value objects (Email, Password,
// LoginAttemptID, TwoFACode), the pluggable store contracts
// (UserStore, BannedTokenStore, TwoFACodeStore), the EmailClient
// notification port, and the Engine that composes them. Concrete store
// implementations live in internal/stores (in-memory, PostgreSQL,
// Redis); token signing lives in the token package; argon2id hashing
// in the password package; the HTTP surface in httpapi.
package authcove
