package account

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/AnatolNica/heronexus-account/credstore"
)

// The favorites boundary deliberately reads a missing or expired credential
// as "not favorited" instead of surfacing an authentication error: anonymous
// browsing depends on the control rendering in its default affordance. A
// product decision worth revisiting, not a bug.

// RefreshFavorites fetches the viewer's favorite set. Without a usable
// credential, or when the backend declines, the set reads as empty.
func (c *Client) RefreshFavorites(ctx context.Context) []int64 {
	cred, ok := c.favoritesCredential(ctx)
	if !ok {
		c.setFavorites(nil)
		return nil
	}

	ids, err := c.favorites.Favorites(ctx, cred)
	if err != nil {
		c.logger.Warn("favorites fetch failed, treating as empty set", zap.Error(err))
		c.metricInc(MetricFavoritesFallback)
		c.setFavorites(nil)
		return nil
	}

	c.setFavorites(ids)
	return c.FavoriteIDs()
}

// ToggleFavorite flips one id and reports whether it is favorited
// afterwards. Without a credential the toggle is not attempted and the
// control keeps its default not-favorited affordance. A declined toggle
// leaves the prior state unchanged.
func (c *Client) ToggleFavorite(ctx context.Context, id int64) bool {
	cred, ok := c.favoritesCredential(ctx)
	if !ok {
		return false
	}

	ids, err := c.favorites.ToggleFavorite(ctx, cred, id)
	if err != nil {
		c.logger.Warn("favorite toggle failed, keeping prior state",
			zap.Int64("id", id), zap.Error(err))
		c.metricInc(MetricFavoritesFallback)
		return c.IsFavorite(id)
	}

	c.setFavorites(ids)
	return c.IsFavorite(id)
}

// IsFavorite reports membership in the last server-confirmed favorite set.
func (c *Client) IsFavorite(id int64) bool {
	if c == nil {
		return false
	}
	c.favMu.Lock()
	defer c.favMu.Unlock()

	_, ok := c.favSet[id]
	return ok
}

// FavoriteIDs returns the last server-confirmed favorite set in ascending
// order.
func (c *Client) FavoriteIDs() []int64 {
	if c == nil {
		return nil
	}
	c.favMu.Lock()
	defer c.favMu.Unlock()

	ids := make([]int64, 0, len(c.favSet))
	for id := range c.favSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// favoritesCredential resolves a usable credential for the favorites path.
// Absence, expiry, and a missing favorites service all report not-ok.
func (c *Client) favoritesCredential(ctx context.Context) (credstore.Credential, bool) {
	if c == nil || c.store == nil || c.favorites == nil {
		return "", false
	}

	cred, err := c.store.Current(ctx)
	if err != nil {
		if !errors.Is(err, credstore.ErrNoCredential) {
			c.logger.Warn("favorites credential read failed", zap.Error(err))
		}
		c.metricInc(MetricFavoritesFallback)
		return "", false
	}
	if credstore.Expired(cred, time.Now()) {
		c.logger.Warn("favorites skipped, session credential expired")
		c.metricInc(MetricFavoritesFallback)
		return "", false
	}
	return cred, true
}

func (c *Client) setFavorites(ids []int64) {
	if c == nil {
		return
	}
	c.favMu.Lock()
	defer c.favMu.Unlock()

	c.favSet = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		c.favSet[id] = struct{}{}
	}
}
