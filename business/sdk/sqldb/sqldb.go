// Package sqldb provides support for access the database.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // Calls init function.
	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/foundation/logger"
	"github.com/velostock/velostock/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Set of error variables for CRUD operations.
var (
	ErrDBNotFound          = sql.ErrNoRows
	ErrUndefinedTable      = errors.New("undefined table")
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// ErrDBDuplicatedEntry is returned when a unique constraint is violated. The
// Column field carries the constraint or column name reported by the driver
// so callers can map it to a domain error.
type ErrDBDuplicatedEntry struct {
	Column string
}

// Error implements the error interface.
func (e ErrDBDuplicatedEntry) Error() string {
	return fmt.Sprintf("duplicated entry on %q", e.Column)
}

// pg error codes we care about.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	undefinedTable      = "42P01"
)

// Config is the required properties to use the database.
type Config struct {
	User         string
	Password     string
	Host         string
	Name         string
	Schema       string
	MaxIdleConns int
	MaxOpenConns int
	DisableTLS   bool
}

// Open knows how to open a database connection based on the configuration.
func Open(cfg Config) (*sqlx.DB, error) {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")
	if cfg.Schema != "" {
		q.Set("search_path", cfg.Schema)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host,
		Path:     cfg.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open("pgx", u.String())
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	return db, nil
}

// StatusCheck returns nil if it can successfully talk to the database. It
// returns a non-nil error otherwise.
func StatusCheck(ctx context.Context, db *sqlx.DB) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second)
		defer cancel()
	}

	var pingError error
	for attempts := 1; ; attempts++ {
		pingError = db.Ping()
		if pingError == nil {
			break
		}

		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	// Run a simple query to determine connectivity. Running this query forces
	// a round trip through the database.
	const q = `SELECT true`
	var tmp bool
	return db.QueryRowContext(ctx, q).Scan(&tmp)
}

// NamedExecContext is a helper function to execute a CUD operation with
// logging and tracing.
func NamedExecContext(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any) error {
	q := queryString(query, data)

	log.Infoc(ctx, 5, "database.NamedExecContext", "query", q)

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.exec")
	span.SetAttributes(attribute.String("query", q))
	defer span.End()

	if _, err := sqlx.NamedExecContext(ctx, db, query, data); err != nil {
		return translate(err)
	}

	return nil
}

// NamedQueryStruct is a helper function for executing queries that return a
// single value to be unmarshalled into a struct type where field replacement
// is necessary.
func NamedQueryStruct(ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any, dest any) error {
	q := queryString(query, data)

	log.Infoc(ctx, 5, "database.NamedQueryStruct", "query", q)

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.querystruct")
	span.SetAttributes(attribute.String("query", q))
	defer span.End()

	rows, err := sqlx.NamedQueryContext(ctx, db, query, data)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	if !rows.Next() {
		return ErrDBNotFound
	}

	if err := rows.StructScan(dest); err != nil {
		return translate(err)
	}

	return nil
}

// NamedQuerySlice is a helper function for executing queries that return a
// collection of data to be unmarshalled into a slice where field replacement
// is necessary.
func NamedQuerySlice[T any](ctx context.Context, log *logger.Logger, db sqlx.ExtContext, query string, data any, dest *[]T) error {
	q := queryString(query, data)

	log.Infoc(ctx, 5, "database.NamedQuerySlice", "query", q)

	ctx, span := otel.AddSpan(ctx, "business.sdk.sqldb.queryslice")
	span.SetAttributes(attribute.String("query", q))
	defer span.End()

	rows, err := sqlx.NamedQueryContext(ctx, db, query, data)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	var slice []T
	for rows.Next() {
		v := new(T)
		if err := rows.StructScan(v); err != nil {
			return translate(err)
		}
		slice = append(slice, *v)
	}
	*dest = slice

	return nil
}

// translate converts driver level errors into the sqldb error set.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			column := pgErr.ConstraintName
			if column == "" {
				column = pgErr.ColumnName
			}
			return ErrDBDuplicatedEntry{Column: column}
		case foreignKeyViolation:
			return ErrForeignKeyViolation
		case undefinedTable:
			return ErrUndefinedTable
		}
	}

	return err
}

// queryString provides a pretty print version of the query and parameters.
func queryString(query string, args any) string {
	query, params, err := sqlx.Named(query, args)
	if err != nil {
		return err.Error()
	}

	for _, param := range params {
		var value string
		switch v := param.(type) {
		case string:
			value = fmt.Sprintf("'%s'", v)
		case []byte:
			value = fmt.Sprintf("'%s'", string(v))
		default:
			if reflect.ValueOf(param).Kind() == reflect.Slice {
				value = fmt.Sprintf("'%v'", param)
			} else {
				value = fmt.Sprintf("%v", param)
			}
		}
		query = strings.Replace(query, "?", value, 1)
	}

	query = strings.ReplaceAll(query, "\t", "")
	query = strings.ReplaceAll(query, "\n", " ")

	return strings.Trim(query, " ")
}
