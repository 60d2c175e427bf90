package data

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/golang-migrate/migrate"
	_ "github.com/golang-migrate/migrate/database/postgres"
	_ "github.com/golang-migrate/migrate/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgDbContext represents a PostgreSQL database context
type PgDbContext struct {
	*pgxpool.Pool
	connectionString string
}

// QueryRunner interface for both Pool and Tx
type QueryRunner interface {
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
}

// TxFn is a function that will be called with a QueryRunner that is either the
// pool or an active transaction
type TxFn func(QueryRunner) error

// BuildConnectionString points databaseUrl at databaseName
func BuildConnectionString(databaseUrl, databaseName string) (string, error) {
	u, err := url.Parse(databaseUrl)
	if err != nil {
		return "", err
	}

	if databaseName != "" {
		u.Path = "/" + databaseName
	}
	return u.String(), nil
}

// Migrate applies every pending migration found at migrationsPath
func Migrate(migrationsPath, connectionString string) error {
	m, err := migrate.New(migrationsPath, connectionString)
	if err != nil {
		return fmt.Errorf("unable to load migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	return nil
}

func NewPgDbContext(ctx context.Context, connectionString string) (*PgDbContext, error) {
	config, err := pgxpool.ParseConfig(connectionString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %v", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach database: %v", err)
	}

	return &PgDbContext{Pool: pool, connectionString: connectionString}, nil
}

// LoadPostgres migrates the database and opens a pool against it
func LoadPostgres(ctx context.Context, databaseUrl, databaseName, migrationsPath string) (*PgDbContext, error) {
	connectionString, err := BuildConnectionString(databaseUrl, databaseName)
	if err != nil {
		return nil, err
	}

	if migrationsPath != "" {
		if err := Migrate(migrationsPath, connectionString); err != nil {
			return nil, err
		}
		utils.Logger.Info("Database migrations applied", utils.Logger.String("path", migrationsPath))
	}

	return NewPgDbContext(ctx, connectionString)
}

// WithTransaction executes a function within a transaction
func (db *PgDbContext) WithTransaction(ctx context.Context, fn TxFn) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback(ctx)
			panic(p)
		}
	}()

	err = fn(tx)
	if err != nil {
		tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a unique-constraint rejection
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsRejectedData reports whether postgres refused the statement because of the
// values it carried: class 22 data exceptions and class 23 integrity violations.
func IsRejectedData(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")
}

// StoreFailure turns a failed statement into the error callers see. Rejected
// data becomes ErrInvalidInput; everything else is a retryable StoreError.
func StoreFailure(op string, err error) error {
	if IsRejectedData(err) {
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return fmt.Errorf("%w: %s", models.ErrInvalidInput, pgErr.Message)
	}
	return models.NewStoreError(op, err)
}
