package goGuard

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

// Config defines a public type used by goGuard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Credential CredentialConfig
	Profile    ProfileConfig
	Session    SessionCookieConfig
	Gateway    GatewayConfig
	Guard      GuardConfig
	Login      LoginConfig
	MFASetup   MFASetupConfig
	AutoLogout AutoLogoutConfig
	Storage    StorageConfig
	Events     EventConfig
	Metrics    MetricsConfig
}

/*
====================================
CREDENTIAL CACHE CONFIG
====================================
*/

// CredentialConfig defines a public type used by goGuard APIs.
//
// CredentialConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CredentialConfig struct {
	StorageKey      string
	RememberFlagKey string
	// MaxAge bounds how long a stored record is honored. Evaluated lazily
	// on read; stale records are treated as absent, never swept.
	MaxAge time.Duration
	// LegacyKeys are removed on every ClearSessionData call. Earlier
	// versions of the console stored session artifacts under these names.
	LegacyKeys []string
}

/*
====================================
PROFILE CACHE CONFIG
====================================
*/

// ProfileConfig defines a public type used by goGuard APIs.
//
// ProfileConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ProfileConfig struct {
	StorageKey   string
	DefaultName  string
	DefaultEmail string
	DefaultRole  string
	// DerivedBio is used when the profile is derived from a credential
	// record rather than loaded from the store.
	DerivedBio string
}

/*
====================================
SESSION COOKIE CONFIG
====================================
*/

// SessionCookieConfig defines a public type used by goGuard APIs.
//
// SessionCookieConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionCookieConfig struct {
	CookieName         string
	RememberCookieName string
	Path               string
	SameSite           http.SameSite
	// TTL is the fixed lifetime written after one-time-code verification.
	TTL time.Duration
	// RememberTTL is the lifetime written by the remember-me path.
	RememberTTL time.Duration
}

/*
====================================
GATEWAY CONFIG
====================================
*/

// GatewayConfig defines a public type used by goGuard APIs.
//
// GatewayConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GatewayConfig struct {
	BaseURL string
	// DevMode disables the automatic APIPrefix suffix, matching local
	// development deployments that expose the API at the bare base URL.
	DevMode   bool
	APIPrefix string
	Timeout   time.Duration
}

/*
====================================
ROUTE GUARD CONFIG
====================================
*/

// GuardConfig defines a public type used by goGuard APIs.
//
// GuardConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type GuardConfig struct {
	// PublicPages are matched by suffix or directory-prefix, independent
	// of any locale segment.
	PublicPages   []string
	Locales       []string
	DefaultLocale string
	LoginPage     string
	DashboardPage string
	// SkipPrefixes and SkipFiles reproduce the matcher exclusion list:
	// requests under these paths bypass the guard entirely.
	SkipPrefixes []string
	SkipFiles    []string
}

/*
====================================
LOGIN FLOW CONFIG
====================================
*/

// LoginConfig defines a public type used by goGuard APIs.
//
// LoginConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LoginConfig struct {
	CodeLength       int
	StagingKeyPrefix string
	StagingTTL       time.Duration
}

// MFASetupConfig defines a public type used by goGuard APIs.
//
// MFASetupConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MFASetupConfig struct {
	CodeLength int
	// RequiredRole, when set, restricts Begin to operators whose cached
	// profile carries this role. Empty disables the check; deployments
	// that gate the wizard at the route level leave it empty.
	RequiredRole string
}

// AutoLogoutConfig defines a public type used by goGuard APIs.
//
// AutoLogoutConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AutoLogoutConfig struct {
	Enabled bool
	// NotifyTimeout bounds the fire-and-forget logout notification. The
	// notification is never waited on and may not complete.
	NotifyTimeout time.Duration
}

// StorageConfig defines a public type used by goGuard APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	RedisPrefix string
}

// EventConfig defines a public type used by goGuard APIs.
//
// EventConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goGuard APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Credential: CredentialConfig{
			StorageKey:      "__secure_auth_v1__",
			RememberFlagKey: "remember_me_v1",
			MaxAge:          30 * 24 * time.Hour,
			LegacyKeys:      []string{"admin_token", "authToken", "user", "user_profile"},
		},
		Profile: ProfileConfig{
			StorageKey:   "user_profile_v1",
			DefaultName:  "Admin User",
			DefaultEmail: "admin@example.com",
			DefaultRole:  "Administrator",
			DerivedBio:   "System Administrator",
		},
		Session: SessionCookieConfig{
			CookieName:         "auth_token",
			RememberCookieName: "remember_me",
			Path:               "/",
			SameSite:           http.SameSiteLaxMode,
			TTL:                24 * time.Hour,
			RememberTTL:        30 * 24 * time.Hour,
		},
		Gateway: GatewayConfig{
			BaseURL:   "",
			DevMode:   false,
			APIPrefix: "/api",
			Timeout:   15 * time.Second,
		},
		Guard: GuardConfig{
			PublicPages:   []string{"/login", "/auth/2fa", "/auth/reset-password", "/forgot-password"},
			Locales:       []string{"en", "hi"},
			DefaultLocale: "en",
			LoginPage:     "/login",
			DashboardPage: "/dashboard",
			SkipPrefixes:  []string{"/api", "/_next", "/_static"},
			SkipFiles:     []string{"/favicon.ico", "/sitemap.xml", "/robots.txt"},
		},
		Login: LoginConfig{
			CodeLength:       6,
			StagingKeyPrefix: "temp_auth_email",
			StagingTTL:       10 * time.Minute,
		},
		MFASetup: MFASetupConfig{
			CodeLength:   6,
			RequiredRole: "",
		},
		AutoLogout: AutoLogoutConfig{
			Enabled:       true,
			NotifyTimeout: 3 * time.Second,
		},
		Storage: StorageConfig{
			RedisPrefix: "gg",
		},
		Events: EventConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Credential.LegacyKeys = cloneStrings(cfg.Credential.LegacyKeys)
	out.Guard.PublicPages = cloneStrings(cfg.Guard.PublicPages)
	out.Guard.Locales = cloneStrings(cfg.Guard.Locales)
	out.Guard.SkipPrefixes = cloneStrings(cfg.Guard.SkipPrefixes)
	out.Guard.SkipFiles = cloneStrings(cfg.Guard.SkipFiles)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c.Credential.StorageKey == "" {
		return errors.New("Credential StorageKey must not be empty")
	}
	if c.Credential.MaxAge <= 0 {
		return errors.New("Credential MaxAge must be positive")
	}
	if c.Profile.StorageKey == "" {
		return errors.New("Profile StorageKey must not be empty")
	}
	if c.Profile.StorageKey == c.Credential.StorageKey {
		return errors.New("Profile and Credential StorageKey must differ")
	}
	if c.Session.CookieName == "" {
		return errors.New("Session CookieName must not be empty")
	}
	if c.Session.Path == "" {
		return errors.New("Session Path must not be empty")
	}
	if c.Session.TTL <= 0 || c.Session.RememberTTL <= 0 {
		return errors.New("Session TTL and RememberTTL must be positive")
	}
	if c.Gateway.Timeout <= 0 {
		return errors.New("Gateway Timeout must be positive")
	}
	if c.Gateway.APIPrefix != "" && !strings.HasPrefix(c.Gateway.APIPrefix, "/") {
		return errors.New("Gateway APIPrefix must start with a slash")
	}
	if len(c.Guard.Locales) == 0 {
		return errors.New("Guard Locales must not be empty")
	}
	if !containsString(c.Guard.Locales, c.Guard.DefaultLocale) {
		return errors.New("Guard DefaultLocale must be in Locales")
	}
	for _, page := range c.Guard.PublicPages {
		if !strings.HasPrefix(page, "/") {
			return errors.New("Guard PublicPages entries must start with a slash")
		}
	}
	if c.Login.CodeLength <= 0 {
		return errors.New("Login CodeLength must be positive")
	}
	if c.Login.StagingTTL <= 0 {
		return errors.New("Login StagingTTL must be positive")
	}
	if c.Login.StagingKeyPrefix == "" {
		return errors.New("Login StagingKeyPrefix must not be empty")
	}
	if c.MFASetup.CodeLength <= 0 {
		return errors.New("MFASetup CodeLength must be positive")
	}
	if c.AutoLogout.Enabled && c.AutoLogout.NotifyTimeout <= 0 {
		return errors.New("AutoLogout NotifyTimeout must be positive when enabled")
	}
	return nil
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
