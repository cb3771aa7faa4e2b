package store

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/zero2prod/newsletter/internal/dependency"
	gerr "github.com/zero2prod/newsletter/internal/errors"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	tlsConfigName = "custom"
)

// Config defines configurations to connect database
type Config struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	DatabaseName       string `mapstructure:"database_name"`
	RequireSSL         bool   `mapstructure:"require_ssl"`
	TLSCAPath          string `mapstructure:"tls_ca_path"`
	Automigrate        bool   `mapstructure:"automigrate"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
}

// DriverName returns the configured driver, mysql when unset.
func (c Config) DriverName() string {
	if c.Driver == "" {
		return DriverMySQL
	}
	return strings.ToLower(c.Driver)
}

// Validate reports an unknown driver.
func (c Config) Validate() error {
	switch c.DriverName() {
	case DriverMySQL, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("%w: %q", gerr.ErrUnknownDriver, c.Driver)
	}
}

// ConnectionString returns DSN as is when set, otherwise it is assembled
// from the discrete connection settings in the format the driver expects.
func (c Config) ConnectionString() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if c.DSN != "" {
		return c.DSN, nil
	}

	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}

	switch c.DriverName() {
	case DriverMySQL:
		port := c.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = c.Username
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(host, strconv.Itoa(port))
		mc.DBName = c.DatabaseName
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		if c.RequireSSL {
			mc.TLSConfig = "true"
			if c.TLSCAPath != "" {
				mc.TLSConfig = tlsConfigName
			}
		}
		return mc.FormatDSN(), nil
	case DriverPostgres:
		port := c.Port
		if port == 0 {
			port = 5432
		}
		sslMode := "disable"
		if c.RequireSSL {
			sslMode = "require"
			if c.TLSCAPath != "" {
				sslMode = "verify-full"
			}
		}
		q := url.Values{}
		q.Set("sslmode", sslMode)
		if c.RequireSSL && c.TLSCAPath != "" {
			q.Set("sslrootcert", resolveCertPath(c.TLSCAPath))
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.Username, c.Password),
			Host:     net.JoinHostPort(host, strconv.Itoa(port)),
			Path:     "/" + c.DatabaseName,
			RawQuery: q.Encode(),
		}
		return u.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", gerr.ErrUnknownDriver, c.Driver)
	}
}

// Store implements methods to access the relational database
type Store struct {
	// db is used for executing queries
	db    *sqlx.DB
	close context.CancelFunc
}

// resolveCertPath resolves @certs paths to the config/certs directory
func resolveCertPath(path string) string {
	if strings.HasPrefix(path, "@certs/") {
		configPaths := []string{
			"./config/certs",
			"$HOME/config/newsletter/certs",
			"/etc/newsletter/certs",
		}

		certFile := strings.TrimPrefix(path, "@certs/")
		for _, basePath := range configPaths {
			if strings.HasPrefix(basePath, "$") {
				basePath = os.ExpandEnv(basePath)
			}
			fullPath := filepath.Join(basePath, certFile)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath
			}
		}
		return filepath.Join("./config/certs", certFile)
	}
	return path
}

// registerTLSConfig registers a custom TLS configuration with the MySQL
// driver when a CA certificate is configured. PostgreSQL reads the
// certificate itself through sslrootcert.
func registerTLSConfig(cfg Config) error {
	if cfg.DriverName() != DriverMySQL || !cfg.RequireSSL || cfg.TLSCAPath == "" {
		return nil
	}

	certPath := resolveCertPath(cfg.TLSCAPath)
	caCert, err := os.ReadFile(certPath)
	if err != nil {
		return fmt.Errorf("failed to read CA certificate from %s: %w", certPath, err)
	}
	slog.Default().Info("using CA certificate from file", "path", certPath)

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return fmt.Errorf("failed to parse CA certificate")
	}

	return mysql.RegisterTLSConfig(tlsConfigName, &tls.Config{
		RootCAs: caCertPool,
	})
}

// New connects to the database, applies migrations when asked to and
// returns a new Store. The pool is closed once ctx is done or Close is called.
func New(ctx context.Context, cfg Config) (*Store, error) {
	dsn, err := cfg.ConnectionString()
	if err != nil {
		return nil, err
	}

	if err := registerTLSConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to register TLS config: %w", err)
	}

	d, err := sqlx.Open(cfg.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database: %w", err)
	}

	if cfg.MaxOpenConnections > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		d.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	d.SetConnMaxLifetime(2 * time.Minute)
	d.SetConnMaxIdleTime(30 * time.Second)

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := d.PingContext(pingCtx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Automigrate {
		slog.Default().InfoContext(ctx, "applying migrations",
			slog.String("driver", cfg.DriverName()),
		)
		migrateCtx, migrateCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer migrateCancel()
		if err := MigrateWithContext(migrateCtx, d.DB, cfg.DriverName()); err != nil {
			d.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	ctx, c := context.WithCancel(ctx)
	ss := &Store{
		db:    d,
		close: c,
	}

	go func() {
		<-ctx.Done()
		d.Close()
	}()

	return ss, nil
}

//go:embed sql
var fs embed.FS

// MigrationSource returns the embedded migrations for the given driver.
func MigrationSource(driver string) (migrate.MigrationSource, error) {
	switch driver {
	case DriverMySQL, DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", gerr.ErrUnknownDriver, driver)
	}
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "sql/" + driver,
	}, nil
}

func MigrateWithContext(ctx context.Context, db *sql.DB, driver string) error {
	m, err := MigrationSource(driver)
	if err != nil {
		return err
	}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := migrate.Exec(db, driver, m, migrate.Up)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("migration timeout: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("db migrations have failed: %w", res.err)
		}
		slog.Default().InfoContext(ctx, "applied migrations",
			slog.Int("count", res.n),
		)
		return nil
	}
}

func (s *Store) DB() dependency.DB {
	return s.db
}

// Now returns current time for the store.
func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) Close() {
	s.close()
}

// IsErrUniqueViolation reports whether err was caused by a unique
// constraint on either supported driver.
func (s *Store) IsErrUniqueViolation(err error) bool {
	return isErrUniqueViolation(err)
}

func isErrUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return false
}
