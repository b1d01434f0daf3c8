package account

import (
	"context"

	"github.com/AnatolNica/heronexus-account/credstore"
)

// TwoFactorChannel is the delivery channel derived from the profile. It is
// a projection with no independent state: recompute it whenever the profile
// changes.
type TwoFactorChannel string

const (
	// TwoFactorDisabled is an exported constant or variable used by the account client.
	TwoFactorDisabled TwoFactorChannel = "disabled"
	// TwoFactorSMS is an exported constant or variable used by the account client.
	TwoFactorSMS TwoFactorChannel = "sms"
	// TwoFactorEmail is an exported constant or variable used by the account client.
	TwoFactorEmail TwoFactorChannel = "email"
)

// EffectiveChannel derives the two-factor delivery channel: disabled when
// the flag is off, sms when a phone number is on file, email otherwise.
func EffectiveChannel(p credstore.Profile) TwoFactorChannel {
	if !p.TwoFactorEnabled {
		return TwoFactorDisabled
	}
	if p.PhoneNumber != "" {
		return TwoFactorSMS
	}
	return TwoFactorEmail
}

// FormatPhone rewrites a 10-digit numeric string as +1 XXX-XXX-XXXX. Any
// other input (wrong length, non-numeric) is passed through unchanged as a
// fallback literal.
func FormatPhone(raw string) string {
	if len(raw) != 10 {
		return raw
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return raw
		}
	}
	return "+1 " + raw[0:3] + "-" + raw[3:6] + "-" + raw[6:10]
}

// TwoFactorStatus is the read-only display model of the two-factor state.
type TwoFactorStatus struct {
	Enabled      bool
	Channel      TwoFactorChannel
	PhoneDisplay string
}

// TwoFactorStatus projects the current profile into its display model.
func (c *Client) TwoFactorStatus(ctx context.Context) (TwoFactorStatus, error) {
	if c == nil || c.store == nil {
		return TwoFactorStatus{}, ErrClientNotReady
	}

	p, err := c.store.Profile(ctx)
	if err != nil {
		return TwoFactorStatus{}, err
	}
	return TwoFactorStatus{
		Enabled:      p.TwoFactorEnabled,
		Channel:      EffectiveChannel(p),
		PhoneDisplay: FormatPhone(p.PhoneNumber),
	}, nil
}
