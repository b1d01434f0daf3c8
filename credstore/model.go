package credstore

// Credential is the opaque bearer token proving the current authenticated
// identity. Exactly one credential is active per session; it is created at
// login, replaced when an email change reissues it, and destroyed at logout.
type Credential string

// Empty reports whether no credential is held.
func (c Credential) Empty() bool {
	return c == ""
}

// Profile mirrors the server-confirmed account fields. Email always matches
// the last value confirmed by the server, never a locally typed one. An
// empty PhoneNumber means the account has no phone on file.
type Profile struct {
	Email            string
	PhoneNumber      string
	TwoFactorEnabled bool
}

// ProfilePatch is a partial profile update. Nil fields are left untouched;
// a patch can change fields but never remove them.
type ProfilePatch struct {
	Email            *string
	PhoneNumber      *string
	TwoFactorEnabled *bool
}

func applyPatch(p Profile, patch ProfilePatch) Profile {
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		p.PhoneNumber = *patch.PhoneNumber
	}
	if patch.TwoFactorEnabled != nil {
		p.TwoFactorEnabled = *patch.TwoFactorEnabled
	}
	return p
}
