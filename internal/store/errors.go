package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an insert fails because a user
	// with the same email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrPositionNotFound is returned when a job posting lookup or update
	// matches no row.
	ErrPositionNotFound = errors.New("position not found")

	// ErrApplicationNotFound is returned when a job application lookup,
	// status update, or delete matches no row.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrPageNotFound is returned when a CMS page lookup by title matches
	// no row.
	ErrPageNotFound = errors.New("page not found")

	// ErrServiceNotFound is returned when a service entry lookup by title
	// matches no row.
	ErrServiceNotFound = errors.New("service entry not found")

	// ErrConfigurationNotFound is returned when the site configuration
	// singleton has not been created yet.
	ErrConfigurationNotFound = errors.New("no configuration found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingDocument is returned when a JSONB payload cannot be
	// marshaled for storage or unmarshaled after retrieval.
	ErrEncodingDocument = errors.New("failed to encode document payload")
)
