package system

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/ruleoflife/internal/api"
	"github.com/julianstephens/ruleoflife/internal/auth"
	"github.com/julianstephens/ruleoflife/internal/cli"
	"github.com/julianstephens/ruleoflife/internal/logger"
	"github.com/julianstephens/ruleoflife/internal/observability"
	"github.com/julianstephens/ruleoflife/internal/today"
	httptransport "github.com/julianstephens/ruleoflife/internal/transport/http"
)

// errNoSecret is returned when no token signing secret is configured.
var errNoSecret = errors.New("a JWT secret is required (--jwt-secret or RULE_JWT_SECRET)")

// JWTFlags configure bearer token signing and verification.
type JWTFlags struct {
	JWTSecret string `name:"jwt-secret" help:"HS256 secret for bearer tokens." env:"RULE_JWT_SECRET"`
	JWTIssuer string `name:"jwt-issuer" help:"Token issuer to require and sign with." env:"RULE_JWT_ISSUER"`
}

func (f JWTFlags) config() (auth.Config, error) {
	if f.JWTSecret == "" {
		return auth.Config{}, errNoSecret
	}
	return auth.Config{Secret: f.JWTSecret, Issuer: f.JWTIssuer}, nil
}

// ServeCmd runs the JSON API until interrupted.
type ServeCmd struct {
	JWTFlags `embed:""`

	Addr            string        `help:"Address to listen on." default:"${serve_addr}" env:"RULE_ADDR"`
	ReadTimeout     time.Duration `help:"Maximum duration for reading a request." default:"${read_timeout}"`
	WriteTimeout    time.Duration `help:"Maximum duration for writing a response." default:"${write_timeout}"`
	IdleTimeout     time.Duration `help:"Keep-alive idle timeout." default:"${idle_timeout}"`
	ShutdownTimeout time.Duration `help:"Grace period for in-flight requests on shutdown." default:"${shutdown_timeout}"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	metrics := observability.NewMetrics()
	handler, err := c.Handler(ctx, metrics)
	if err != nil {
		return err
	}

	srv := httptransport.NewServer(httptransport.ServerConfig{
		Address:         c.Addr,
		ReadTimeout:     c.ReadTimeout,
		WriteTimeout:    c.WriteTimeout,
		IdleTimeout:     c.IdleTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}, handler)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting API", "addr", c.Addr, "store", ctx.Store.GetConfigPath())
	return httptransport.ListenAndServe(sigCtx, srv, c.ShutdownTimeout)
}

// Handler assembles the API routes behind bearer auth and request logging.
// Probes and metrics scrapes are public.
func (c *ServeCmd) Handler(ctx *cli.Context, metrics *observability.Metrics) (http.Handler, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	resolver := ctx.Resolver(metrics)
	h := api.NewHandler(api.Services{
		Clock:      ctx.Clock,
		Resolver:   resolver,
		Verses:     ctx.Verses,
		Today:      today.NewService(ctx.Store, resolver, ctx.Clock, ctx.Verses),
		Practices:  ctx.PracticeService(),
		Completion: ctx.CompletionService().WithRecorder(metrics),
		History:    ctx.HistoryService(),
		Export:     ctx.ExportService(),
		Metrics:    metrics,
	})

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	mw := auth.NewMiddleware(cfg, auth.PublicPaths("/healthz", "/metrics"))
	return httptransport.LogRequests(mw.Wrap(mux)), nil
}

// TokenCmd signs a bearer token for the API.
type TokenCmd struct {
	JWTFlags `embed:""`

	Subject string        `help:"User the token is for. Defaults to --user."`
	TTL     time.Duration `help:"How long the token is valid." default:"720h"`
}

func (c *TokenCmd) Run(ctx *cli.Context) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	subject := c.Subject
	if subject == "" {
		subject = ctx.User
	}
	token, err := auth.Issue(subject, c.TTL, cfg)
	if err != nil {
		return err
	}
	ctx.Println(token)
	return nil
}
