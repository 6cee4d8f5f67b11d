package system

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/ruleoflife/internal/auth"
	"github.com/julianstephens/ruleoflife/internal/cli/clitest"
	"github.com/julianstephens/ruleoflife/internal/observability"
	"github.com/julianstephens/ruleoflife/internal/seed"
)

const testSecret = "test-secret"

func TestServeHandler(t *testing.T) {
	ctx, _ := clitest.NewContext(t, "2025-03-14")
	cmd := &ServeCmd{JWTFlags: JWTFlags{JWTSecret: testSecret}}

	handler, err := cmd.Handler(ctx, observability.NewMetrics())
	if err != nil {
		t.Fatal(err)
	}
	token, err := auth.Issue("user-1", time.Hour, auth.Config{Secret: testSecret})
	if err != nil {
		t.Fatal(err)
	}

	do := func(method, path string, authed bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if authed {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	if rr := do(http.MethodGet, "/healthz", false); rr.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rr.Code)
	}
	if rr := do(http.MethodGet, "/v1/today", false); rr.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated today status = %d", rr.Code)
	}

	rr := do(http.MethodGet, "/v1/today", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("today status = %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"practice_season":"LENT"`) {
		t.Errorf("unexpected today body: %s", rr.Body.String())
	}

	rr = do(http.MethodPost, "/v1/practices/"+seed.PracticeID("lent_friday_fast")+"/toggle", true)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"state":"DONE"`) {
		t.Errorf("toggle = %d %s", rr.Code, rr.Body.String())
	}
	rr = do(http.MethodPost, "/v1/practices/"+seed.PracticeID("lent_confession")+"/toggle", true)
	if rr.Code != http.StatusConflict {
		t.Errorf("off-day toggle status = %d", rr.Code)
	}

	rr = do(http.MethodGet, "/metrics", false)
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rr.Code)
	}
	for _, want := range []string{
		`rule_completion_toggles_total{state="DONE"} 1`,
		`rule_completion_rejections_total{code="not_scheduled_today"} 1`,
		`rule_liturgical_cache_lookups_total`,
	} {
		if !strings.Contains(rr.Body.String(), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestServeHandler_RequiresSecret(t *testing.T) {
	ctx, _ := clitest.NewContext(t, "2025-03-14")

	_, err := (&ServeCmd{}).Handler(ctx, observability.NewMetrics())
	if !errors.Is(err, errNoSecret) {
		t.Errorf("expected errNoSecret, got %v", err)
	}
}

func TestTokenCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t, "2025-03-14")
	cfg := auth.Config{Secret: testSecret, Issuer: "rule-test"}

	cmd := &TokenCmd{JWTFlags: JWTFlags{JWTSecret: cfg.Secret, JWTIssuer: cfg.Issuer}, TTL: time.Hour}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("token failed: %v", err)
	}

	claims, err := auth.Parse(strings.TrimSpace(out.String()), cfg)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want the --user value", claims.Subject)
	}

	if err := (&TokenCmd{TTL: time.Hour}).Run(ctx); !errors.Is(err, errNoSecret) {
		t.Errorf("expected errNoSecret, got %v", err)
	}
}
