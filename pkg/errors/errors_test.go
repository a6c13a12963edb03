package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCauseAndCode(t *testing.T) {
	cause := stdErrors.New("dial tcp: refused")
	err := fmt.Errorf("outer: %w", Wrap(CodeDependency, cause, "fetch users"))

	typed := As(err)
	require.NotNil(t, typed)
	assert.Equal(t, CodeDependency, typed.Code())
	assert.Equal(t, "fetch users", typed.Message())
	assert.ErrorIs(t, err, cause)
}

func TestMetadataForUnknownFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
	assert.Equal(t, http.StatusUnauthorized, MetadataFor(CodeUnauthorized).HTTPStatus)
}

func TestNilErrorAccessors(t *testing.T) {
	var e *Error
	assert.Equal(t, CodeInternal, e.Code())
	assert.Empty(t, e.Message())
	assert.Nil(t, e.Details())
	assert.Nil(t, As(nil))
}

func TestDumpCapturesChainAndPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "storage_entries_pkey", TableName: "storage_entries", Message: "duplicate key"}
	err := Wrap(CodeInternal, pgErr, "persist entry")

	dump := Dump(err)
	assert.Equal(t, CodeInternal, dump.Code)
	assert.Equal(t, "23505", dump.PGCode)
	assert.Equal(t, "storage_entries_pkey", dump.PGConstraint)
	assert.Equal(t, "storage_entries", dump.PGTable)
	assert.Len(t, dump.Chain, 2)
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
