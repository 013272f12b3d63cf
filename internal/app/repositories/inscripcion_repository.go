package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/dberrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InscripcionRepository handles enrollment and grade database operations
type InscripcionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewInscripcionRepository creates a new InscripcionRepository
func NewInscripcionRepository(db *pgxpool.Pool) *InscripcionRepository {
	return &InscripcionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Enroll inserts a new enrollment with no grade. The unique pair index keeps
// a student from enrolling in the same subject twice.
func (r *InscripcionRepository) Enroll(ctx context.Context, alumnoID, materiaID int64) (int64, error) {
	sql, args, err := r.sb.Insert("alumnos_materias").
		Columns("alumno_id", "materia_id").
		Values(alumnoID, materiaID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building enroll SQL")
		return 0, fmt.Errorf("failed to build enroll query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "alumnos_materias_alumno_id_materia_id_key") {
			return 0, apperrors.ErrInscripcionExists
		}
		logger.Error().Err(err).Int64("alumnoID", alumnoID).Int64("materiaID", materiaID).Msg("Error executing enroll query")
		return 0, fmt.Errorf("error enrolling alumno: %w", err)
	}

	return id, nil
}

// UpdateCalificacion sets the grade on an existing enrollment
func (r *InscripcionRepository) UpdateCalificacion(ctx context.Context, alumnoID, materiaID int64, calificacion float64) error {
	sql, args, err := r.sb.Update("alumnos_materias").
		Set("calificacion", calificacion).
		Where(squirrel.Eq{"alumno_id": alumnoID, "materia_id": materiaID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update calificacion SQL")
		return fmt.Errorf("failed to build update calificacion query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.ErrCalificacionInvalida
		}
		logger.Error().Err(err).Int64("alumnoID", alumnoID).Int64("materiaID", materiaID).Msg("Error executing update calificacion query")
		return fmt.Errorf("error updating calificacion: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInscripcionNotFound
	}

	return nil
}

// GetAlumnosByMateria returns the students enrolled in a subject
func (r *InscripcionRepository) GetAlumnosByMateria(ctx context.Context, materiaID int64) ([]*models.Alumno, error) {
	sql, args, err := r.sb.Select("a.id", "a.nombre", "a.apellido", "a.fecha_nacimiento", "a.direccion", "a.foto").
		From("alumnos_materias am").
		Join("alumnos a ON a.id = am.alumno_id").
		Where(squirrel.Eq{"am.materia_id": materiaID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get alumnos by materia SQL")
		return nil, fmt.Errorf("failed to build get alumnos by materia query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("materiaID", materiaID).Msg("Error executing get alumnos by materia query")
		return nil, fmt.Errorf("error querying alumnos by materia: %w", err)
	}
	defer rows.Close()

	alumnos := []*models.Alumno{}
	for rows.Next() {
		alumno, err := scanAlumno(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning alumno row for materia")
			return nil, fmt.Errorf("error scanning alumno row: %w", err)
		}
		alumnos = append(alumnos, alumno)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating alumnos by materia rows")
		return nil, fmt.Errorf("error iterating alumno rows: %w", err)
	}

	return alumnos, nil
}

// GetMateriaIDs returns the distinct subjects that have at least one
// enrollment
func (r *InscripcionRepository) GetMateriaIDs(ctx context.Context) ([]int64, error) {
	sql, args, err := r.sb.Select("DISTINCT materia_id").
		From("alumnos_materias").
		OrderBy("materia_id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get enrolled materias SQL")
		return nil, fmt.Errorf("failed to build get enrolled materias query: %w", err)
	}

	return r.queryIDs(ctx, sql, args, "enrolled materia")
}

// GetAlumnoIDsWithCalificacion returns the distinct students that have at
// least one graded enrollment
func (r *InscripcionRepository) GetAlumnoIDsWithCalificacion(ctx context.Context) ([]int64, error) {
	sql, args, err := r.sb.Select("DISTINCT alumno_id").
		From("alumnos_materias").
		Where("calificacion IS NOT NULL").
		OrderBy("alumno_id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get graded alumnos SQL")
		return nil, fmt.Errorf("failed to build get graded alumnos query: %w", err)
	}

	return r.queryIDs(ctx, sql, args, "graded alumno")
}

// GetCalificacionesByAlumno returns the graded enrollments of a student
// together with the subject names. Ungraded enrollments are left out.
func (r *InscripcionRepository) GetCalificacionesByAlumno(ctx context.Context, alumnoID int64) ([]*models.CalificacionMateria, error) {
	sql, args, err := r.sb.Select("m.id", "m.nombre", "m.descripcion", "am.calificacion").
		From("alumnos_materias am").
		Join("materias m ON m.id = am.materia_id").
		Where(squirrel.And{
			squirrel.Eq{"am.alumno_id": alumnoID},
			squirrel.NotEq{"am.calificacion": nil},
		}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get calificaciones by alumno SQL")
		return nil, fmt.Errorf("failed to build get calificaciones query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("alumnoID", alumnoID).Msg("Error executing get calificaciones by alumno query")
		return nil, fmt.Errorf("error querying calificaciones by alumno: %w", err)
	}
	defer rows.Close()

	calificaciones := []*models.CalificacionMateria{}
	for rows.Next() {
		cal := &models.CalificacionMateria{}
		if err := rows.Scan(&cal.Materia.ID, &cal.Materia.Nombre, &cal.Materia.Descripcion, &cal.Calificacion); err != nil {
			logger.Error().Err(err).Msg("Error scanning calificacion row")
			return nil, fmt.Errorf("error scanning calificacion row: %w", err)
		}
		calificaciones = append(calificaciones, cal)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating calificacion rows")
		return nil, fmt.Errorf("error iterating calificacion rows: %w", err)
	}

	return calificaciones, nil
}

func (r *InscripcionRepository) queryIDs(ctx context.Context, sql string, args []interface{}, what string) ([]int64, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("query", what).Msg("Error executing id listing query")
		return nil, fmt.Errorf("error querying %s ids: %w", what, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			logger.Error().Err(err).Str("query", what).Msg("Error scanning id row")
			return nil, fmt.Errorf("error scanning %s id: %w", what, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Str("query", what).Msg("Error iterating id rows")
		return nil, fmt.Errorf("error iterating %s ids: %w", what, err)
	}

	return ids, nil
}
