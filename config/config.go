package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// EnvPrefix prefixes every environment variable override, e.g.
// CONTACTSBRIDGE_DATABASE_PATH.
const EnvPrefix = "CONTACTSBRIDGE"

// Config is the runtime configuration of the bridge.
type Config struct {
	Database Database `mapstructure:"database"`
	Server   Server   `mapstructure:"server"`
	Labels   Labels   `mapstructure:"labels"`
	Pool     Pool     `mapstructure:"pool"`
}

// Database locates the SQLite contacts store.
type Database struct {
	Path     string `mapstructure:"path" validate:"required"`
	ReadOnly bool   `mapstructure:"read_only"`
}

// Server configures the HTTP transport.
type Server struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// Labels sets the default label mode for calls that do not choose one.
type Labels struct {
	Localized bool   `mapstructure:"localized"`
	Locale    string `mapstructure:"locale" validate:"required,bcp47"`
}

// Pool bounds concurrent query work.
type Pool struct {
	Workers   int `mapstructure:"workers" validate:"gte=1"`
	QueueSize int `mapstructure:"queue_size" validate:"gte=0"`
}

// Language parses Labels.Locale. Invalid locales yield English.
func (l Labels) Language() language.Tag {
	tag, err := language.Parse(l.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// New returns a viper instance with defaults, env overrides and, when file
// is set, that config file.
func New(file string) *viper.Viper {
	v := viper.New()

	v.SetDefault("database.path", "contacts.db")
	v.SetDefault("database.read_only", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("labels.localized", false)
	v.SetDefault("labels.locale", "en")
	v.SetDefault("pool.workers", 10)
	v.SetDefault("pool.queue_size", 1000)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	}
	return v
}

// Load reads the configuration from file (optional), the environment and
// defaults, and validates it.
func Load(file string) (*Config, error) {
	v := New(file)
	if file != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: reading %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: decoding")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.RegisterValidation("bcp47", func(fl validator.FieldLevel) bool {
		_, err := language.Parse(fl.Field().String())
		return err == nil
	}); err != nil {
		return errors.Wrap(err, "config: registering validators")
	}

	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "config: invalid")
	}
	return nil
}
