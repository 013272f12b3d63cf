package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "usuarios_username_key"}

	require.True(t, IsDuplicateKeyError(dup))
	require.True(t, IsDuplicateKeyError(fmt.Errorf("insert failed: %w", dup)))
	require.False(t, IsDuplicateKeyError(errors.New("plain error")))
	require.False(t, IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "materias_asignadas_materia_id_key"}

	require.True(t, IsDuplicateConstraintError(dup, "materias_asignadas_materia_id_key"))
	require.False(t, IsDuplicateConstraintError(dup, "usuarios_username_key"))
	require.False(t, IsDuplicateConstraintError(errors.New("plain error"), "materias_asignadas_materia_id_key"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	require.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	require.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

func TestIsCheckViolation(t *testing.T) {
	require.True(t, IsCheckViolation(&pgconn.PgError{Code: "23514"}))
	require.False(t, IsCheckViolation(errors.New("plain error")))
}
