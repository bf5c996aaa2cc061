package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/hashicorp-forge/classbridge/pkg/classroom"
	"github.com/hashicorp-forge/classbridge/pkg/classroom/auth"
)

const (
	defaultLogLevel          = "info"
	defaultAnnouncementLimit = 5
	defaultTimeout           = "30s"
)

// Environment variables that override values from the config file.
const (
	EnvCredentialsFile = "CLASSBRIDGE_CREDENTIALS_FILE"
	EnvTokenFile       = "CLASSBRIDGE_TOKEN_FILE"
	EnvLogLevel        = "CLASSBRIDGE_LOG_LEVEL"
)

// Config is the classbridge configuration.
//
// Example configuration (HCL):
//
//	log_level = "info"
//
//	classroom {
//	  credentials_file   = "credentials.json"
//	  token_file         = "token.json"
//	  page_size          = 30
//	  announcement_limit = 5
//	  course_states      = ["ACTIVE"]
//	  timeout            = "30s"
//	  verify_session     = true
//	}
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `hcl:"log_level,optional" json:"log_level"`

	Classroom *Classroom `hcl:"classroom,block" json:"classroom"`
}

// Classroom configures the session and the Classroom adapter.
type Classroom struct {
	// CredentialsFile is the OAuth client secret file.
	CredentialsFile string `hcl:"credentials_file,optional" json:"credentials_file"`

	// TokenFile is where the user token is persisted.
	TokenFile string `hcl:"token_file,optional" json:"token_file"`

	// Scopes requested during authorization.
	Scopes []string `hcl:"scopes,optional" json:"scopes"`

	// PageSize is sent on every list call.
	PageSize int `hcl:"page_size,optional" json:"page_size"`

	// AnnouncementLimit caps the announcements command. 0 means no cap.
	AnnouncementLimit *int `hcl:"announcement_limit,optional" json:"announcement_limit"`

	// CourseStates filters the courses list (ACTIVE, ARCHIVED, ...).
	CourseStates []string `hcl:"course_states,optional" json:"course_states"`

	// Endpoint overrides the Classroom API base URL.
	Endpoint string `hcl:"endpoint,optional" json:"endpoint"`

	// Timeout is the per-request HTTP timeout, as a Go duration string.
	Timeout string `hcl:"timeout,optional" json:"timeout"`

	// VerifySession probes the API once when the adapter is created.
	VerifySession *bool `hcl:"verify_session,optional" json:"verify_session"`
}

// NewConfig parses the HCL config file at path. An empty path yields the
// defaults. Environment overrides are applied before validation.
func NewConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	cfg.setDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.Classroom == nil {
		c.Classroom = &Classroom{}
	}

	cr := c.Classroom
	if cr.CredentialsFile == "" {
		cr.CredentialsFile = auth.DefaultCredentialsFile
	}
	if cr.TokenFile == "" {
		cr.TokenFile = auth.DefaultTokenFile
	}
	if len(cr.Scopes) == 0 {
		cr.Scopes = auth.DefaultScopes
	}
	if cr.PageSize == 0 {
		cr.PageSize = classroom.DefaultPageSize
	}
	if cr.AnnouncementLimit == nil {
		limit := defaultAnnouncementLimit
		cr.AnnouncementLimit = &limit
	}
	if cr.Timeout == "" {
		cr.Timeout = defaultTimeout
	}
	if cr.VerifySession == nil {
		verify := true
		cr.VerifySession = &verify
	}
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvCredentialsFile); ok && v != "" {
		c.Classroom.CredentialsFile = v
	}
	if v, ok := os.LookupEnv(EnvTokenFile); ok && v != "" {
		c.Classroom.TokenFile = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks the whole config and reports every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
	); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Classroom == nil {
		result = multierror.Append(result, errors.New("classroom: block is required"))
	} else if err := c.Classroom.Validate(); err != nil {
		result = multierror.Append(result, fmt.Errorf("classroom: %w", err))
	}

	return result.ErrorOrNil()
}

// Validate checks the classroom block.
func (c *Classroom) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.CredentialsFile, validation.Required),
		validation.Field(&c.TokenFile, validation.Required),
		validation.Field(&c.Scopes, validation.Required, validation.Each(is.URL)),
		validation.Field(&c.PageSize, validation.Min(1), validation.Max(1000)),
		validation.Field(&c.AnnouncementLimit, validation.Min(0)),
		validation.Field(&c.CourseStates, validation.Each(
			validation.In("ACTIVE", "ARCHIVED", "PROVISIONED", "DECLINED", "SUSPENDED"),
		)),
		validation.Field(&c.Endpoint, is.URL),
		validation.Field(&c.Timeout, validation.By(positiveDuration)),
	)
}

// RequestTimeout returns Timeout as a duration.
func (c *Classroom) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Verify reports whether the session should be probed on startup.
func (c *Classroom) Verify() bool {
	return c.VerifySession == nil || *c.VerifySession
}

// Limit returns the announcement cap; 0 means no cap.
func (c *Classroom) Limit() int {
	if c.AnnouncementLimit == nil {
		return defaultAnnouncementLimit
	}
	return *c.AnnouncementLimit
}

func positiveDuration(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return errors.New("must be a duration such as \"30s\"")
	}
	if d <= 0 {
		return errors.New("must be positive")
	}
	return nil
}
