package account

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AnatolNica/heronexus-account/credstore"
)

// Client defines a public type used by the account client APIs.
//
// Client instances are built through [Builder.Build] and treated as
// immutable afterwards. All methods are safe for concurrent use; the
// credential store is the only shared mutable resource and is written only
// by the email-change success path.
type Client struct {
	config    Config
	remote    RemoteCredentialService
	favorites FavoritesService
	store     credstore.Store
	notifier  *notifyDispatcher
	metrics   *Metrics
	logger    *zap.Logger

	favMu  sync.Mutex
	favSet map[int64]struct{}
}

// Close describes the close operation and its observable behavior.
//
// Close drains and stops the notification dispatcher. It is safe to call
// more than once and on a nil receiver.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.notifier != nil {
		c.notifier.Close()
	}
}

// NotificationsDropped describes the notificationsdropped operation and its observable behavior.
func (c *Client) NotificationsDropped() uint64 {
	if c == nil || c.notifier == nil {
		return 0
	}
	return c.notifier.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// Profile returns the server-confirmed account profile.
func (c *Client) Profile(ctx context.Context) (credstore.Profile, error) {
	if c == nil || c.store == nil {
		return credstore.Profile{}, ErrClientNotReady
	}
	return c.store.Profile(ctx)
}

// Session returns a diagnostic view over the stored credential. A missing
// credential yields an unauthenticated view, not an error.
func (c *Client) Session(ctx context.Context) (SessionInfo, error) {
	if c == nil || c.store == nil {
		return SessionInfo{}, ErrClientNotReady
	}

	cred, err := c.store.Current(ctx)
	if err != nil {
		if errors.Is(err, credstore.ErrNoCredential) {
			return SessionInfo{}, nil
		}
		return SessionInfo{}, err
	}

	info := SessionInfo{Authenticated: true}
	if exp, ok := credstore.ExpiresAt(cred); ok {
		info.Expiring = true
		info.ExpiresAt = exp.Unix()
	}
	return info, nil
}

// Logout destroys the stored snapshot.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil || c.store == nil {
		return ErrClientNotReady
	}
	return c.store.Clear(ctx)
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) observeRemote(start time.Time) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Observe(MetricRemoteLatency, time.Since(start))
}

func (c *Client) notify(ctx context.Context, n Notification) {
	if c == nil || c.notifier == nil {
		return
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	c.notifier.Notify(ctx, n)
}
