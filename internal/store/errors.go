package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrOutboxItemNotFound is returned when an outbox operation targets a key
	// that is not queued.
	ErrOutboxItemNotFound = errors.New("outbox item was not found")

	// ErrInvalidOutboxItem is returned by Put for items with an empty key or
	// an unknown kind.
	ErrInvalidOutboxItem = errors.New("invalid outbox item")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingEntity is returned when an entity cannot be marshalled into
	// its stored JSON form.
	ErrEncodingEntity = errors.New("failed to encode entity")

	// ErrDecodingEntity is returned when a stored JSON payload cannot be
	// unmarshalled. It usually means the row was written by a foreign tool.
	ErrDecodingEntity = errors.New("failed to decode entity")
)
