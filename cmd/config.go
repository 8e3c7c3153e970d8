package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"slices"
	"strings"
	"time"

	"parcels/internal/core/domain/model/parcel"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every configuration variable.
const EnvPrefix = "PARCELS"

// Config is the whole process configuration, read by LoadConfig.
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Uploads   UploadsConfig
	Lifecycle LifecycleConfig
	Jobs      JobsConfig
}

// AppConfig holds process level settings.
type AppConfig struct {
	Env             string        `envconfig:"PARCELS_APP_ENV" default:"development"`
	Port            string        `envconfig:"PARCELS_APP_PORT" default:"8080"`
	ServiceName     string        `envconfig:"PARCELS_SERVICE_NAME" default:"parcels"`
	LogLevel        string        `envconfig:"PARCELS_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"PARCELS_LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"PARCELS_SHUTDOWN_TIMEOUT" default:"10s"`
	// TimeZone is the office time zone used for "today" and "this month" statistics.
	TimeZone string `envconfig:"PARCELS_TIME_ZONE" default:"UTC"`
}

// IsDev reports whether Env is "development", case-insensitively.
func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "development")
}

// Location resolves TimeZone.
func (a AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", a.TimeZone, err)
	}
	return loc, nil
}

// DBConfig describes the Postgres connection. DSN wins over the individual
// parts when both are set.
type DBConfig struct {
	DSN string `envconfig:"PARCELS_DB_DSN"`

	Host     string `envconfig:"PARCELS_DB_HOST"`
	Port     int    `envconfig:"PARCELS_DB_PORT" default:"5432"`
	User     string `envconfig:"PARCELS_DB_USER"`
	Password string `envconfig:"PARCELS_DB_PASSWORD"`
	Name     string `envconfig:"PARCELS_DB_NAME"`
	SSLMode  string `envconfig:"PARCELS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PARCELS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PARCELS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PARCELS_DB_CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"PARCELS_AUTO_MIGRATE" default:"false"`
}

// JWTConfig configures access token signing.
type JWTConfig struct {
	Secret string        `envconfig:"PARCELS_JWT_SECRET" required:"true"`
	Issuer string        `envconfig:"PARCELS_JWT_ISSUER" default:"parcels"`
	TTL    time.Duration `envconfig:"PARCELS_JWT_TTL" default:"12h"`
}

// RedisConfig enables login throttling when URL is set.
type RedisConfig struct {
	URL              string        `envconfig:"PARCELS_REDIS_URL"`
	LoginMaxAttempts int64         `envconfig:"PARCELS_LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginWindow      time.Duration `envconfig:"PARCELS_LOGIN_WINDOW" default:"15m"`
}

// KafkaConfig enables event publishing when Brokers is set; events are logged otherwise.
type KafkaConfig struct {
	Brokers      []string      `envconfig:"PARCELS_KAFKA_BROKERS"`
	Topic        string        `envconfig:"PARCELS_KAFKA_TOPIC" default:"parcels.events"`
	WriteTimeout time.Duration `envconfig:"PARCELS_KAFKA_WRITE_TIMEOUT" default:"5s"`
}

// UploadsConfig configures parcel photo storage.
type UploadsConfig struct {
	Dir   string `envconfig:"PARCELS_UPLOADS_DIR" default:"uploads"`
	MaxMB int64  `envconfig:"PARCELS_UPLOADS_MAX_MB" default:"10"`
}

// MaxBytes converts MaxMB to bytes.
func (u UploadsConfig) MaxBytes() int64 {
	return u.MaxMB << 20
}

// LifecycleConfig tunes parcel status rules.
type LifecycleConfig struct {
	StrictProblemReports bool `envconfig:"PARCELS_STRICT_PROBLEM_REPORTS" default:"false"`
}

// ProblemPolicy maps StrictProblemReports to the parcel policy. Strict mode
// refuses problem reports on delivered parcels.
func (l LifecycleConfig) ProblemPolicy() parcel.ProblemReportPolicy {
	if l.StrictProblemReports {
		return parcel.StrictProblemReports
	}
	return parcel.PermissiveProblemReports
}

// JobsConfig holds cron expressions with a seconds field.
type JobsConfig struct {
	BacklogSchedule string `envconfig:"PARCELS_JOBS_BACKLOG_SCHEDULE" default:"*/30 * * * * *"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.App.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	var missing []string
	for env, value := range map[string]string{
		"PARCELS_DB_HOST": db.Host,
		"PARCELS_DB_USER": db.User,
		"PARCELS_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("either PARCELS_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
