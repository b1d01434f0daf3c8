package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	account "github.com/AnatolNica/heronexus-account"
	"github.com/AnatolNica/heronexus-account/credstore"
	"github.com/AnatolNica/heronexus-account/remote"
)

func main() {
	var (
		op       = flag.String("op", "status", "operation: status, password, email, favorites, toggle")
		token    = flag.String("token", "", "session credential; overrides any mirrored one")
		current  = flag.String("current", "", "current password")
		newPass  = flag.String("new", "", "new password")
		confirm  = flag.String("confirm", "", "new password confirmation")
		newEmail = flag.String("email", "", "new email address")
		favID    = flag.Int64("id", 0, "favorite id for -op toggle")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := account.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if cfg.Remote.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "HERONEXUS_API_BASE_URL is required")
		os.Exit(2)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var store credstore.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
		store = credstore.NewRedisMirror(rdb, cfg.Redis.Prefix)
		logger.Info("using redis credential mirror", zap.String("addr", cfg.Redis.Addr))
	} else {
		store = credstore.NewMemory()
	}
	if *token != "" {
		if err := store.Replace(ctx, credstore.Credential(*token)); err != nil {
			fmt.Fprintf(os.Stderr, "store credential: %v\n", err)
			os.Exit(1)
		}
	}

	api := remote.NewClient(cfg.Remote.BaseURL, &http.Client{Timeout: cfg.Remote.Timeout}, logger)

	client, err := account.New().
		WithConfig(cfg).
		WithRemote(api).
		WithFavorites(api).
		WithCredentialStore(store).
		WithNotifier(account.NewJSONWriterNotifier(os.Stdout)).
		WithLogger(logger).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	switch *op {
	case "status":
		runStatus(ctx, client)
	case "password":
		runPasswordChange(ctx, client, *current, *newPass, *confirm)
	case "email":
		runEmailChange(ctx, client, *newEmail, *current)
	case "favorites":
		fmt.Println(client.RefreshFavorites(ctx))
	case "toggle":
		fmt.Printf("favorited=%v\n", client.ToggleFavorite(ctx, *favID))
	default:
		fmt.Fprintf(os.Stderr, "unknown op %q\n", *op)
		os.Exit(2)
	}

	printMetrics(client)
}

func runStatus(ctx context.Context, client *account.Client) {
	session, err := client.Session(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("authenticated=%v expiring=%v expires_at=%d\n",
		session.Authenticated, session.Expiring, session.ExpiresAt)

	status, err := client.TwoFactorStatus(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "two-factor status: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("two_factor=%v channel=%s phone=%s\n",
		status.Enabled, status.Channel, status.PhoneDisplay)
}

func runPasswordChange(ctx context.Context, client *account.Client, current, newPass, confirm string) {
	form := client.NewPasswordForm()
	form.Open()
	form.SetFields(account.PasswordFields{Current: current, New: newPass, Confirm: confirm})
	if err := form.Submit(ctx); err != nil {
		text, _ := form.Err()
		fmt.Fprintf(os.Stderr, "password change failed: %s (%v)\n", text, err)
		os.Exit(1)
	}
	fmt.Println("password changed")
}

func runEmailChange(ctx context.Context, client *account.Client, newEmail, current string) {
	form := client.NewEmailForm()
	form.Open()
	form.SetFields(account.EmailFields{NewEmail: newEmail, Password: current})
	if err := form.Submit(ctx); err != nil {
		text, _ := form.Err()
		fmt.Fprintf(os.Stderr, "email change failed: %s (%v)\n", text, err)
		os.Exit(1)
	}
	profile, err := client.Profile(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("email changed, confirmed=%s\n", profile.Email)
}

func printMetrics(client *account.Client) {
	snapshot := client.MetricsSnapshot()
	for id := account.MetricID(0); int(id) < len(snapshot.Counters); id++ {
		if v := snapshot.Counters[id]; v > 0 {
			fmt.Printf("metric[%d]=%d\n", id, v)
		}
	}
}
