// Package account is the account-security client of the HeroNexus storefront.
// It implements the credential-change and re-authentication workflows —
// password rotation, email rotation with session-credential reissue, and the
// two-factor status projection — against the HeroNexus REST backend.
//
// The package is designed around two invariants: a credential-affecting
// mutation never succeeds without proof of the current password (proven
// server-side, never checked locally), and the locally held session
// credential is never allowed to drift from the server-issued one. When an
// email change reissues a credential, the store swap happens before any
// further authenticated call and before user feedback fires.
//
// # Architecture boundaries
//
// account is the public surface. It exposes [Client], [Builder], [Config],
// the form types ([PasswordForm], [EmailForm]) and value types
// (Notification, MetricsSnapshot, TwoFactorStatus). The credential snapshot
// lives in the credstore sub-package; the HTTP wire implementation lives in
// the remote sub-package. Both are injectable: the Client reasons only about
// the [RemoteCredentialService] and [credstore.Store] contracts.
//
// # What this package must NOT do
//
//   - Issue an authenticated request when no credential is stored. The
//     triggering control should not have been reachable; the attempt is a
//     logged no-op, never a user-facing error.
//   - Apply a form-instance state update after that instance was torn down.
//     Server-confirmed results (reissued credential, confirmed email) are
//     still applied to the store; the dead form is left alone.
//   - Surface an optimistically assumed email. Only the server-confirmed
//     value reaches the profile.
package account
