// Package credstore holds the single point-in-time snapshot of
// server-confirmed session state: the current bearer credential and the
// authenticated user's profile fields. It is a mirror, not a cache — there
// is no eviction, no retry, and exactly one snapshot.
//
// The store is the only shared mutable resource of the account client. It is
// read before every outgoing authenticated call and written only by the
// email-change success path and by login. A Replace must be visible to the
// very next authenticated call issued by any component.
package credstore
