package goGuard

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML schema. Pointer fields distinguish "absent" from
// "zero"; absent fields keep their defaults. Durations are Go duration
// strings ("24h", "10m").
type fileConfig struct {
	Credential *struct {
		StorageKey      *string  `yaml:"storage_key"`
		RememberFlagKey *string  `yaml:"remember_flag_key"`
		MaxAge          *string  `yaml:"max_age"`
		LegacyKeys      []string `yaml:"legacy_keys"`
	} `yaml:"credential"`
	Profile *struct {
		StorageKey   *string `yaml:"storage_key"`
		DefaultName  *string `yaml:"default_name"`
		DefaultEmail *string `yaml:"default_email"`
		DefaultRole  *string `yaml:"default_role"`
		DerivedBio   *string `yaml:"derived_bio"`
	} `yaml:"profile"`
	Session *struct {
		CookieName         *string `yaml:"cookie_name"`
		RememberCookieName *string `yaml:"remember_cookie_name"`
		Path               *string `yaml:"path"`
		TTL                *string `yaml:"ttl"`
		RememberTTL        *string `yaml:"remember_ttl"`
	} `yaml:"session"`
	Gateway *struct {
		BaseURL   *string `yaml:"base_url"`
		DevMode   *bool   `yaml:"dev_mode"`
		APIPrefix *string `yaml:"api_prefix"`
		Timeout   *string `yaml:"timeout"`
	} `yaml:"gateway"`
	Guard *struct {
		PublicPages   []string `yaml:"public_pages"`
		Locales       []string `yaml:"locales"`
		DefaultLocale *string  `yaml:"default_locale"`
		LoginPage     *string  `yaml:"login_page"`
		DashboardPage *string  `yaml:"dashboard_page"`
		SkipPrefixes  []string `yaml:"skip_prefixes"`
		SkipFiles     []string `yaml:"skip_files"`
	} `yaml:"guard"`
	Login *struct {
		CodeLength       *int    `yaml:"code_length"`
		StagingKeyPrefix *string `yaml:"staging_key_prefix"`
		StagingTTL       *string `yaml:"staging_ttl"`
	} `yaml:"login"`
	MFASetup *struct {
		CodeLength   *int    `yaml:"code_length"`
		RequiredRole *string `yaml:"required_role"`
	} `yaml:"mfa_setup"`
	AutoLogout *struct {
		Enabled       *bool   `yaml:"enabled"`
		NotifyTimeout *string `yaml:"notify_timeout"`
	} `yaml:"auto_logout"`
	Storage *struct {
		RedisPrefix *string `yaml:"redis_prefix"`
	} `yaml:"storage"`
	Events *struct {
		Enabled    *bool `yaml:"enabled"`
		BufferSize *int  `yaml:"buffer_size"`
		DropIfFull *bool `yaml:"drop_if_full"`
	} `yaml:"events"`
	Metrics *struct {
		Enabled                 *bool `yaml:"enabled"`
		EnableLatencyHistograms *bool `yaml:"enable_latency_histograms"`
	} `yaml:"metrics"`
}

// LoadConfigFile describes the load-config-file operation and its observable behavior.
//
// LoadConfigFile reads a YAML file and overlays it onto [DefaultConfig]:
// absent fields keep their defaults, present fields overwrite. The result
// is validated before it is returned.
//
// LoadConfigFile may return an error when input validation, dependency calls, or security checks fail.
// LoadConfigFile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig describes the parse-config operation and its observable behavior.
//
// ParseConfig may return an error when input validation, dependency calls, or security checks fail.
// ParseConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func ParseConfig(data []byte) (Config, error) {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := overlayConfig(&cfg, &file); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayConfig(cfg *Config, file *fileConfig) error {
	if s := file.Credential; s != nil {
		setString(&cfg.Credential.StorageKey, s.StorageKey)
		setString(&cfg.Credential.RememberFlagKey, s.RememberFlagKey)
		if err := setDuration(&cfg.Credential.MaxAge, s.MaxAge, "credential.max_age"); err != nil {
			return err
		}
		if s.LegacyKeys != nil {
			cfg.Credential.LegacyKeys = cloneStrings(s.LegacyKeys)
		}
	}
	if s := file.Profile; s != nil {
		setString(&cfg.Profile.StorageKey, s.StorageKey)
		setString(&cfg.Profile.DefaultName, s.DefaultName)
		setString(&cfg.Profile.DefaultEmail, s.DefaultEmail)
		setString(&cfg.Profile.DefaultRole, s.DefaultRole)
		setString(&cfg.Profile.DerivedBio, s.DerivedBio)
	}
	if s := file.Session; s != nil {
		setString(&cfg.Session.CookieName, s.CookieName)
		setString(&cfg.Session.RememberCookieName, s.RememberCookieName)
		setString(&cfg.Session.Path, s.Path)
		if err := setDuration(&cfg.Session.TTL, s.TTL, "session.ttl"); err != nil {
			return err
		}
		if err := setDuration(&cfg.Session.RememberTTL, s.RememberTTL, "session.remember_ttl"); err != nil {
			return err
		}
	}
	if s := file.Gateway; s != nil {
		setString(&cfg.Gateway.BaseURL, s.BaseURL)
		setBool(&cfg.Gateway.DevMode, s.DevMode)
		setString(&cfg.Gateway.APIPrefix, s.APIPrefix)
		if err := setDuration(&cfg.Gateway.Timeout, s.Timeout, "gateway.timeout"); err != nil {
			return err
		}
	}
	if s := file.Guard; s != nil {
		if s.PublicPages != nil {
			cfg.Guard.PublicPages = cloneStrings(s.PublicPages)
		}
		if s.Locales != nil {
			cfg.Guard.Locales = cloneStrings(s.Locales)
		}
		setString(&cfg.Guard.DefaultLocale, s.DefaultLocale)
		setString(&cfg.Guard.LoginPage, s.LoginPage)
		setString(&cfg.Guard.DashboardPage, s.DashboardPage)
		if s.SkipPrefixes != nil {
			cfg.Guard.SkipPrefixes = cloneStrings(s.SkipPrefixes)
		}
		if s.SkipFiles != nil {
			cfg.Guard.SkipFiles = cloneStrings(s.SkipFiles)
		}
	}
	if s := file.Login; s != nil {
		setInt(&cfg.Login.CodeLength, s.CodeLength)
		setString(&cfg.Login.StagingKeyPrefix, s.StagingKeyPrefix)
		if err := setDuration(&cfg.Login.StagingTTL, s.StagingTTL, "login.staging_ttl"); err != nil {
			return err
		}
	}
	if s := file.MFASetup; s != nil {
		setInt(&cfg.MFASetup.CodeLength, s.CodeLength)
		setString(&cfg.MFASetup.RequiredRole, s.RequiredRole)
	}
	if s := file.AutoLogout; s != nil {
		setBool(&cfg.AutoLogout.Enabled, s.Enabled)
		if err := setDuration(&cfg.AutoLogout.NotifyTimeout, s.NotifyTimeout, "auto_logout.notify_timeout"); err != nil {
			return err
		}
	}
	if s := file.Storage; s != nil {
		setString(&cfg.Storage.RedisPrefix, s.RedisPrefix)
	}
	if s := file.Events; s != nil {
		setBool(&cfg.Events.Enabled, s.Enabled)
		setInt(&cfg.Events.BufferSize, s.BufferSize)
		setBool(&cfg.Events.DropIfFull, s.DropIfFull)
	}
	if s := file.Metrics; s != nil {
		setBool(&cfg.Metrics.Enabled, s.Enabled)
		setBool(&cfg.Metrics.EnableLatencyHistograms, s.EnableLatencyHistograms)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string, field string) error {
	if src == nil {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", field, err)
	}
	*dst = d
	return nil
}
