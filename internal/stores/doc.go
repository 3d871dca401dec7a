// Package stores provides the concrete store implementations behind
// the authcove store contracts: in-memory variants for tests and
// single-process deployments, a PostgreSQL-backed user store, and
// Redis-backed banned-token and 2FA code stores for multi-instance
// deployments.
//
// All implementations surface failures as the sentinel errors defined
// in the root package; backend causes are wrapped, never replaced.
package stores
