package storage

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

type ErrorKind string

const (
	ConnectionFailure ErrorKind = "connection_failure"
	QueryFailure      ErrorKind = "query_failure"
	DecodeFailure     ErrorKind = "decode_failure"
)

var ErrUnknownCategory = errors.New("unknown sentiment category")

// RepositoryError is returned by every SQLRepository method that fails.
type RepositoryError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// KindOf reports the kind of the first RepositoryError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.Kind, true
	}
	return "", false
}

func queryError(op string, err error) error {
	kind := QueryFailure
	if isConnectionError(err) {
		kind = ConnectionFailure
	}
	return &RepositoryError{Kind: kind, Op: op, Err: err}
}

func decodeError(op string, err error) error {
	return &RepositoryError{Kind: DecodeFailure, Op: op, Err: err}
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// SQLSTATE class 08: connection exception.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "08"
	}

	return false
}
