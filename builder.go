package account

import (
	"errors"

	"go.uber.org/zap"

	"github.com/AnatolNica/heronexus-account/credstore"
)

// Builder assembles a [Client]. Collaborators are injected explicitly — in
// particular the credential store, so the replace-before-next-call ordering
// invariant stays enforceable and testable instead of hiding behind ambient
// global state.
type Builder struct {
	config    Config
	remote    RemoteCredentialService
	favorites FavoritesService
	store     credstore.Store
	sink      Notifier
	logger    *zap.Logger

	built bool
}

// New describes the new operation and its observable behavior.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRemote describes the withremote operation and its observable behavior.
func (b *Builder) WithRemote(svc RemoteCredentialService) *Builder {
	b.remote = svc
	return b
}

// WithFavorites describes the withfavorites operation and its observable behavior.
func (b *Builder) WithFavorites(svc FavoritesService) *Builder {
	b.favorites = svc
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
func (b *Builder) WithCredentialStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithNotifier describes the withnotifier operation and its observable behavior.
func (b *Builder) WithNotifier(sink Notifier) *Builder {
	b.sink = sink
	return b
}

// WithLogger describes the withlogger operation and its observable behavior.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when the configuration is invalid or a required
// collaborator is missing. The returned Client is immutable and safe for
// concurrent use.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.remote == nil {
		return nil, errors.New("remote credential service is required")
	}
	if err := b.config.validate(); err != nil {
		return nil, err
	}

	store := b.store
	if store == nil {
		store = credstore.NewMemory()
	}
	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		config:    b.config,
		remote:    b.remote,
		favorites: b.favorites,
		store:     store,
		notifier:  newNotifyDispatcher(b.config.Notify, b.sink),
		metrics:   NewMetrics(b.config.Metrics),
		logger:    logger,
		favSet:    make(map[int64]struct{}),
	}

	b.built = true
	return c, nil
}
