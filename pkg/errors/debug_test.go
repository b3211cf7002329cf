package errors

import (
	stdErrors "errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCollectsChainAndDetails(t *testing.T) {
	err := Wrap(CodeHTTPStatus, stdErrors.New("status 503"), "add item").
		WithDetails(map[string]any{"op": "add", "status": 503})

	d := Dump(err)
	assert.Equal(t, CodeHTTPStatus, d.Code)
	assert.Equal(t, "add", d.Op)
	assert.Equal(t, 503, d.HTTPStatus)
	require.Len(t, d.Chain, 2)
	assert.Contains(t, d.Chain[1], "status 503")
}

func TestDumpExtractsPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "cart_items_pkey", TableName: "cart_items", Message: "duplicate key value"}
	d := Dump(Wrap(CodeConflict, pgErr, "insert cart line"))

	assert.Equal(t, "23505", d.PGCode)
	assert.Equal(t, "cart_items_pkey", d.PGConstraint)
	assert.Equal(t, "cart_items", d.PGTable)
}

func TestDumpNil(t *testing.T) {
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
