package repos

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by the stores.
var (
	// ErrProductReferenced signals a product delete blocked because
	// quotation lines still reference it.
	ErrProductReferenced = errors.New("product is referenced by quotation lines")
)

// isForeignKeyViolation recognizes referential-integrity failures from both
// supported backends: SQLSTATE 23503 on postgres, the pragma error text on
// sqlite.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
