package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/dberrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AsignacionRepository handles the teacher-subject assignment tables
type AsignacionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAsignacionRepository creates a new AsignacionRepository
func NewAsignacionRepository(db *pgxpool.Pool) *AsignacionRepository {
	return &AsignacionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// HasRecord reports whether a teacher owns an assignment record
func (r *AsignacionRepository) HasRecord(ctx context.Context, profesorID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("profesores_materias").
		Where(squirrel.Eq{"profesor_id": profesorID}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building asignacion record exists SQL")
		return false, fmt.Errorf("failed to build asignacion record existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("profesorID", profesorID).Msg("Error checking asignacion record existence")
		return false, fmt.Errorf("error checking asignacion record existence: %w", err)
	}

	return exists, nil
}

// Assign adds a subject to a teacher's assignment set. The unique index on
// materia_id decides the one-teacher-per-subject rule atomically; there is no
// scan-then-write window.
func (r *AsignacionRepository) Assign(ctx context.Context, profesorID, materiaID int64) error {
	sql, args, err := r.sb.Insert("materias_asignadas").
		Columns("profesor_id", "materia_id").
		Values(profesorID, materiaID).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building assign materia SQL")
		return fmt.Errorf("failed to build assign materia query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "materias_asignadas_materia_id_key") {
			return apperrors.ErrMateriaYaAsignada
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAsignacionNotFound
		}
		logger.Error().Err(err).Int64("profesorID", profesorID).Int64("materiaID", materiaID).Msg("Error executing assign materia query")
		return fmt.Errorf("error assigning materia: %w", err)
	}

	return nil
}

// GetOwner returns the assignment row a subject currently belongs to
func (r *AsignacionRepository) GetOwner(ctx context.Context, materiaID int64) (*models.Asignacion, error) {
	sql, args, err := r.sb.Select("id", "profesor_id", "materia_id").
		From("materias_asignadas").
		Where(squirrel.Eq{"materia_id": materiaID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get asignacion owner SQL")
		return nil, fmt.Errorf("failed to build get asignacion owner query: %w", err)
	}

	asignacion := &models.Asignacion{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&asignacion.ID, &asignacion.ProfesorID, &asignacion.MateriaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAsignacionNotFound
		}
		logger.Error().Err(err).Int64("materiaID", materiaID).Msg("Error scanning asignacion owner row")
		return nil, fmt.Errorf("error getting asignacion owner: %w", err)
	}

	return asignacion, nil
}

// GetMateriasByProfesor returns the subjects in a teacher's assignment set.
// Joining against materias means ids that no longer resolve simply drop out
// of the projection.
func (r *AsignacionRepository) GetMateriasByProfesor(ctx context.Context, profesorID int64) ([]*models.Materia, error) {
	sql, args, err := r.sb.Select("m.id", "m.nombre", "m.descripcion").
		From("materias_asignadas ma").
		Join("materias m ON m.id = ma.materia_id").
		Where(squirrel.Eq{"ma.profesor_id": profesorID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get materias by profesor SQL")
		return nil, fmt.Errorf("failed to build get materias by profesor query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profesorID", profesorID).Msg("Error executing get materias by profesor query")
		return nil, fmt.Errorf("error querying materias by profesor: %w", err)
	}
	defer rows.Close()

	materias := []*models.Materia{}
	for rows.Next() {
		materia := &models.Materia{}
		if err := rows.Scan(&materia.ID, &materia.Nombre, &materia.Descripcion); err != nil {
			logger.Error().Err(err).Msg("Error scanning materia row for profesor")
			return nil, fmt.Errorf("error scanning materia row: %w", err)
		}
		materias = append(materias, materia)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating materias by profesor rows")
		return nil, fmt.Errorf("error iterating materia rows: %w", err)
	}

	return materias, nil
}

// GetProfesorIDs returns every teacher that owns an assignment record
func (r *AsignacionRepository) GetProfesorIDs(ctx context.Context) ([]int64, error) {
	sql, args, err := r.sb.Select("profesor_id").
		From("profesores_materias").
		OrderBy("profesor_id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get asignacion profesores SQL")
		return nil, fmt.Errorf("failed to build get asignacion profesores query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get asignacion profesores query")
		return nil, fmt.Errorf("error querying asignacion profesores: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logger.Error().Err(err).Msg("Error scanning asignacion profesor id")
			return nil, fmt.Errorf("error scanning asignacion profesor id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating asignacion profesor rows")
		return nil, fmt.Errorf("error iterating asignacion profesor rows: %w", err)
	}

	return ids, nil
}
