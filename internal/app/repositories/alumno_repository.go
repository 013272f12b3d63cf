package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/db"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AlumnoRepository handles student database operations
type AlumnoRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAlumnoRepository creates a new AlumnoRepository
func NewAlumnoRepository(db *pgxpool.Pool) *AlumnoRepository {
	return &AlumnoRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var alumnoColumns = []string{"id", "nombre", "apellido", "fecha_nacimiento", "direccion", "foto"}

func scanAlumno(row pgx.Row) (*models.Alumno, error) {
	alumno := &models.Alumno{}
	err := row.Scan(&alumno.ID, &alumno.Nombre, &alumno.Apellido, &alumno.FechaNacimiento, &alumno.Direccion, &alumno.Foto)
	if err != nil {
		return nil, err
	}
	return alumno, nil
}

// Create inserts a new student and returns the generated id
func (r *AlumnoRepository) Create(ctx context.Context, alumno *models.Alumno) (int64, error) {
	sql, args, err := r.sb.Insert("alumnos").
		Columns("nombre", "apellido", "fecha_nacimiento", "direccion", "foto").
		Values(alumno.Nombre, alumno.Apellido, alumno.FechaNacimiento, alumno.Direccion, alumno.Foto).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create alumno SQL")
		return 0, fmt.Errorf("failed to build create alumno query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create alumno query")
		return 0, fmt.Errorf("error creating alumno: %w", err)
	}

	return id, nil
}

// GetByID retrieves a student by ID
func (r *AlumnoRepository) GetByID(ctx context.Context, id int64) (*models.Alumno, error) {
	sql, args, err := r.sb.Select(alumnoColumns...).
		From("alumnos").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get alumno by ID SQL")
		return nil, fmt.Errorf("failed to build get alumno query: %w", err)
	}

	alumno, err := scanAlumno(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAlumnoNotFound
		}
		logger.Error().Err(err).Int64("alumnoID", id).Msg("Error scanning alumno row")
		return nil, fmt.Errorf("error getting alumno by ID: %w", err)
	}

	return alumno, nil
}

// GetAll retrieves all students
func (r *AlumnoRepository) GetAll(ctx context.Context) ([]*models.Alumno, error) {
	sql, args, err := r.sb.Select(alumnoColumns...).
		From("alumnos").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all alumnos SQL")
		return nil, fmt.Errorf("failed to build get all alumnos query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all alumnos query")
		return nil, fmt.Errorf("error querying alumnos: %w", err)
	}
	defer rows.Close()

	alumnos := []*models.Alumno{}
	for rows.Next() {
		alumno, err := scanAlumno(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning alumno row during get all")
			return nil, fmt.Errorf("error scanning alumno row: %w", err)
		}
		alumnos = append(alumnos, alumno)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating alumno rows")
		return nil, fmt.Errorf("error iterating alumno rows: %w", err)
	}

	return alumnos, nil
}

// Update overwrites a student row with the merged record
func (r *AlumnoRepository) Update(ctx context.Context, alumno *models.Alumno) error {
	sql, args, err := r.sb.Update("alumnos").
		SetMap(map[string]interface{}{
			"nombre":           alumno.Nombre,
			"apellido":         alumno.Apellido,
			"fecha_nacimiento": alumno.FechaNacimiento,
			"direccion":        alumno.Direccion,
			"foto":             alumno.Foto,
		}).
		Where(squirrel.Eq{"id": alumno.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update alumno SQL")
		return fmt.Errorf("failed to build update alumno query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("alumnoID", alumno.ID).Msg("Error executing update alumno query")
		return fmt.Errorf("error updating alumno: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlumnoNotFound
	}

	return nil
}

// DeleteWithInscripciones deletes a student and every enrollment referencing
// it in a single transaction.
func (r *AlumnoRepository) DeleteWithInscripciones(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		delInscripciones, delArgs, err := r.sb.Delete("alumnos_materias").
			Where(squirrel.Eq{"alumno_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete inscripciones query: %w", err)
		}

		if _, err := tx.Exec(ctx, delInscripciones, delArgs...); err != nil {
			logger.Error().Err(err).Int64("alumnoID", id).Msg("Error deleting inscripciones for alumno")
			return fmt.Errorf("error deleting inscripciones for alumno: %w", err)
		}

		delAlumno, delAlumnoArgs, err := r.sb.Delete("alumnos").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete alumno query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, delAlumno, delAlumnoArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("alumnoID", id).Msg("Error executing delete alumno query")
			return fmt.Errorf("error deleting alumno: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrAlumnoNotFound
		}

		return nil
	})
}
