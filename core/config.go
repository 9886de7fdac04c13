package core

import (
	"fmt"
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EngineSQLite   = "sqlite3"
	EnginePostgres = "postgres"

	StorageB2   = "b2"
	StorageDisk = "disk"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugAddress    string
		ShutdownTimeout time.Duration
		CORSOrigins     []string
		BodyLimit       string
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		Path          string // sqlite3 only
	}

	StorageConfig struct {
		Provider         string
		B2AccountID      string
		B2ApplicationKey string
		B2Bucket         string
		DiskDir          string
		UploadFolder     string
	}

	// Config is built once at startup and must not be mutated afterwards.
	Config struct {
		AppName  string
		Env      string
		Build    string
		Debug    bool
		TestMode bool
		BaseURL  string

		SecretKey                 string
		JWTSecretKey              string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		EmailVerifyMaxAge         time.Duration

		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Server   ServerConfig
		Database DatabaseConfig
		Storage  StorageConfig
	}
)

func (dc DatabaseConfig) Address() string {
	return net.JoinHostPort(dc.Host, dc.Port)
}

// NewConfig reads the configuration from the environment, optionally seeded by `config/.env.<env>`.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV")) // DEV (default), TEST, PROD
	if env == "" {
		env = "DEV"
	}

	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "reading %s", dotEnvPath)
	}

	v := newViper(env)
	from, err := mail.ParseAddress(v.GetString("default_from_email"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing DEFAULT_FROM_EMAIL")
	}

	conf := &Config{
		AppName:  v.GetString("app_name"),
		Env:      env,
		Build:    v.GetString("build"),
		Debug:    v.GetBool("debug"),
		TestMode: env == "TEST",
		BaseURL:  strings.TrimRight(v.GetString("base_url"), "/"),

		SecretKey:                 v.GetString("secret_key"),
		JWTSecretKey:              v.GetString("jwt_secret_key"),
		JWTExpirationDelta:        v.GetDuration("jwt_expiration_delta"),
		JWTRefreshExpirationDelta: v.GetDuration("jwt_refresh_expiration_delta"),
		EmailVerifyMaxAge:         v.GetDuration("email_verify_max_age"),

		DefaultFromEmail: *from,
		SendgridAPIKey:   v.GetString("sendgrid_api_key"),
		RollbarToken:     v.GetString("rollbar_token"),

		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Address:         v.GetString("server.address"),
			DebugAddress:    v.GetString("server.debug_address"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			CORSOrigins:     v.GetStringSlice("server.cors_origins"),
			BodyLimit:       v.GetString("server.body_limit"),
			DisableReqLogs:  v.GetBool("server.disable_req_logs"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("database.engine"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			Name:          v.GetString("database.name"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.admin_user"),
			AdminPassword: v.GetString("database.admin_password"),
			DisableTLS:    v.GetBool("database.disable_tls"),
			Path:          v.GetString("database.path"),
		},
		Storage: StorageConfig{
			Provider:         v.GetString("storage.provider"),
			B2AccountID:      v.GetString("storage.b2_account_id"),
			B2ApplicationKey: v.GetString("storage.b2_application_key"),
			B2Bucket:         v.GetString("storage.b2_bucket"),
			DiskDir:          v.GetString("storage.disk_dir"),
			UploadFolder:     v.GetString("storage.upload_folder"),
		},
	}

	if err = conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func newViper(env string) *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app_name", "Study Sphere")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("base_url", "http://localhost:8000")
	if env == "DEV" || env == "TEST" {
		v.SetDefault("secret_key", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
		v.SetDefault("jwt_secret_key", "k2$6x@u!m0t9w7(3b^n4p_fz#rq+8eh&yv)1lgd5ja=ic*so%")
	} else {
		v.SetDefault("secret_key", "")
		v.SetDefault("jwt_secret_key", "")
	}
	v.SetDefault("jwt_expiration_delta", time.Hour)
	v.SetDefault("jwt_refresh_expiration_delta", 30*24*time.Hour)
	v.SetDefault("email_verify_max_age", time.Hour)
	v.SetDefault("default_from_email", "Study Sphere <no-reply@studysphereapp.com>")
	v.SetDefault("sendgrid_api_key", "")
	v.SetDefault("rollbar_token", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debug_address", ":4000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.body_limit", "10M")
	v.SetDefault("server.disable_req_logs", false)

	v.SetDefault("database.engine", EngineSQLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "studysphere")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.admin_user", "")
	v.SetDefault("database.admin_password", "")
	v.SetDefault("database.disable_tls", false)
	v.SetDefault("database.path", "studysphere.db")

	v.SetDefault("storage.provider", StorageDisk)
	v.SetDefault("storage.b2_account_id", "")
	v.SetDefault("storage.b2_application_key", "")
	v.SetDefault("storage.b2_bucket", "")
	v.SetDefault("storage.disk_dir", "media")
	v.SetDefault("storage.upload_folder", "uploads/students")

	v.AutomaticEnv()
	return v
}

func (conf *Config) validate() error {
	switch conf.Database.Engine {
	case EngineSQLite, EnginePostgres:
	default:
		return fmt.Errorf("unsupported database engine %q", conf.Database.Engine)
	}
	switch conf.Storage.Provider {
	case StorageB2, StorageDisk:
	default:
		return fmt.Errorf("unsupported storage provider %q", conf.Storage.Provider)
	}
	if conf.Debug || conf.TestMode {
		return nil
	}

	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(conf.SecretKey, "SECRET_KEY"),
		vala.StringNotEmpty(conf.JWTSecretKey, "JWT_SECRET_KEY"),
	).Check()
	return errors.Wrap(err, "validating config")
}
