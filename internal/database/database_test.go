package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, ApplySchema(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("permission denied")
	mock.ExpectExec("CREATE TABLE").WillReturnError(boom)

	err = ApplySchema(context.Background(), mock)
	assert.ErrorIs(t, err, boom)
}

func TestSchemaDeclaresTables(t *testing.T) {
	assert.Contains(t, schema, "username      TEXT PRIMARY KEY")
	assert.Contains(t, schema, "REFERENCES users (username)")
	assert.Contains(t, schema, "last_login_at TIMESTAMPTZ")
}
