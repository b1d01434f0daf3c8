// Package remote is the HTTP implementation of the HeroNexus account wire
// contract. It translates every failure into the account error taxonomy —
// *account.RemoteError for a declined request, *account.TransportError when
// no usable response was received — and performs no retries or backoff of
// its own.
package remote
