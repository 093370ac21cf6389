package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMySQL    = "mysql"
)

// envPrefix prefixes environment variables that override file values,
// e.g. URL_SHORTENER_POSTGRES_PASSWORD. Leaf fields use split_words rather than
// explicit envconfig tags, which envconfig would also look up unprefixed ($USER, $PORT).
const envPrefix = "URL_SHORTENER"

const (
	minShortCodeLength = 4
	maxShortCodeLength = 32
)

type Config struct {
	Env             string     `yaml:"env" split_words:"true"`
	ShortCodeLength int        `yaml:"short_code_length" split_words:"true"`
	HTTPServer      HTTPServer `yaml:"http_server" envconfig:"HTTP_SERVER"`
	Storage         Storage    `yaml:"storage" envconfig:"STORAGE"`
	Postgres        Postgres   `yaml:"postgres" envconfig:"POSTGRES"`
	MySQL           MySQL      `yaml:"mysql" envconfig:"MYSQL"`
	Auth            Auth       `yaml:"auth" envconfig:"AUTH"`
}

type HTTPServer struct {
	Port           int           `yaml:"port" split_words:"true"`
	ReadTimeout    time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout   time.Duration `yaml:"write_timeout" split_words:"true"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" split_words:"true"`
	MaxHeaderBytes int           `yaml:"max_header_bytes" split_words:"true"`
	CertFile       string        `yaml:"cert_file" split_words:"true"`
	KeyFile        string        `yaml:"key_file" split_words:"true"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Storage selects the repository backend.
type Storage struct {
	Driver         string        `yaml:"driver" split_words:"true"`
	Timeout        time.Duration `yaml:"timeout" split_words:"true"`
	MigrationsPath string        `yaml:"migrations_path" split_words:"true"`
}

var defaultStorage = Storage{
	Driver:         StorageMemory,
	Timeout:        3 * time.Second,
	MigrationsPath: "migrations",
}

// MigrationsSource returns the golang-migrate source URL for the configured driver.
func (s *Storage) MigrationsSource() string {
	return fmt.Sprintf("file://%s/%s", s.MigrationsPath, s.Driver)
}

// Pool holds connection pool settings shared by the relational backends.
type Pool struct {
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" split_words:"true"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" split_words:"true"`
	MaxIdleConns    int           `yaml:"max_idle_conns" split_words:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" split_words:"true"`
}

var defaultPool = Pool{
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
}

type Postgres struct {
	User     string `yaml:"user" split_words:"true"`
	Password string `yaml:"password" split_words:"true"`
	Host     string `yaml:"host" split_words:"true"`
	Port     int    `yaml:"port" split_words:"true"`
	DB       string `yaml:"db" split_words:"true"`
	SSLMode  string `yaml:"sslmode" split_words:"true"`
	Pool     `yaml:",inline"`
}

var defaultPostgres = Postgres{
	Host:    "localhost",
	Port:    5432,
	SSLMode: "disable",
	Pool:    defaultPool,
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

type MySQL struct {
	User     string `yaml:"user" split_words:"true"`
	Password string `yaml:"password" split_words:"true"`
	Host     string `yaml:"host" split_words:"true"`
	Port     int    `yaml:"port" split_words:"true"`
	DB       string `yaml:"db" split_words:"true"`
	Pool     `yaml:",inline"`
}

var defaultMySQL = MySQL{
	Host: "localhost",
	Port: 3306,
	Pool: defaultPool,
}

func (m *MySQL) driverConfig() *mysql.Config {
	c := mysql.NewConfig()
	c.User = m.User
	c.Passwd = m.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	c.DBName = m.DB
	c.ParseTime = true
	c.Loc = time.UTC
	// RowsAffected reports matched rows, so an UPDATE that changes nothing still finds its row.
	c.ClientFoundRows = true
	return c
}

// DSN returns the go-sql-driver/mysql data source name.
func (m *MySQL) DSN() string {
	return m.driverConfig().FormatDSN()
}

// MigrationURL returns the golang-migrate database URL.
func (m *MySQL) MigrationURL() string {
	c := m.driverConfig()
	c.MultiStatements = true
	return "mysql://" + c.FormatDSN()
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" split_words:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl" split_words:"true"`
}

var defaultAuth = Auth{
	TokenTTL: 24 * time.Hour,
}

// Load reads the YAML file at path on top of the defaults and then applies
// environment overrides.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to process environment: %w", op, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvStage, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}

	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageMySQL:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.ShortCodeLength < minShortCodeLength || c.ShortCodeLength > maxShortCodeLength {
		return fmt.Errorf("short code length must be between %d and %d, got %d",
			minShortCodeLength, maxShortCodeLength, c.ShortCodeLength)
	}

	if c.Storage.Timeout <= 0 {
		return errors.New("storage timeout must be positive")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("auth jwt secret is required")
	}

	return nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.ShortCodeLength = 6
	cfg.HTTPServer = defaultHTTPServer
	cfg.Storage = defaultStorage
	cfg.Postgres = defaultPostgres
	cfg.MySQL = defaultMySQL
	cfg.Auth = defaultAuth
}
