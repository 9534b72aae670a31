package middleware

import (
	"net/http"
	"strings"

	goGuard "github.com/MrEthical07/goGuard"
)

// Decision is the guard's verdict for a request path.
type Decision uint8

const (
	DecisionNext Decision = iota
	DecisionSkip
	DecisionRedirectLogin
	DecisionRedirectDashboard
)

// Guard returns the route-guard middleware for the engine's configured
// policy. Redirects are issued as 307 so method and body survive.
func Guard(engine *goGuard.Engine) func(http.Handler) http.Handler {
	cfg := engine.Config().Guard
	metrics := engine.Metrics()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, target := Evaluate(cfg, r.URL.Path, engine.IsAuthenticated(r))
			switch decision {
			case DecisionSkip:
				metrics.Inc(goGuard.MetricGuardSkipped)
				next.ServeHTTP(w, r)
			case DecisionRedirectLogin:
				metrics.Inc(goGuard.MetricGuardRedirectLogin)
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			case DecisionRedirectDashboard:
				metrics.Inc(goGuard.MetricGuardRedirectDashboard)
				http.Redirect(w, r, target, http.StatusTemporaryRedirect)
			default:
				metrics.Inc(goGuard.MetricGuardAllowed)
				next.ServeHTTP(w, r)
			}
		})
	}
}

// Evaluate runs the redirect policy for a path. It is exported so adapter
// packages (and tests) can share the exact policy without an HTTP stack.
func Evaluate(cfg goGuard.GuardConfig, path string, authenticated bool) (Decision, string) {
	if Excluded(cfg, path) {
		return DecisionSkip, ""
	}

	public := isPublicPage(cfg.PublicPages, path)

	if !authenticated && !public && path != "/" {
		return DecisionRedirectLogin, "/" + localeOf(cfg, path) + cfg.LoginPage
	}
	if authenticated && public {
		return DecisionRedirectDashboard, "/" + localeOf(cfg, path) + cfg.DashboardPage
	}
	return DecisionNext, ""
}

// Excluded reports whether the path bypasses the guard: API routes,
// framework internals, and the well-known static files.
func Excluded(cfg goGuard.GuardConfig, path string) bool {
	for _, prefix := range cfg.SkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, file := range cfg.SkipFiles {
		if path == file {
			return true
		}
	}
	return false
}

// isPublicPage ignores the locale prefix by matching each public page as
// a path suffix or as an interior directory segment.
func isPublicPage(publicPages []string, path string) bool {
	for _, page := range publicPages {
		if strings.HasSuffix(path, page) || strings.Contains(path, page+"/") {
			return true
		}
	}
	return false
}

func localeOf(cfg goGuard.GuardConfig, path string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	for _, locale := range cfg.Locales {
		if segment == locale {
			return locale
		}
	}
	return cfg.DefaultLocale
}
