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

// ProfesorRepository handles teacher database operations
type ProfesorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfesorRepository creates a new ProfesorRepository
func NewProfesorRepository(db *pgxpool.Pool) *ProfesorRepository {
	return &ProfesorRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var profesorColumns = []string{"id", "nombre", "apellido", "fecha_nacimiento", "direccion", "especialidad"}

func scanProfesor(row pgx.Row) (*models.Profesor, error) {
	profesor := &models.Profesor{}
	err := row.Scan(&profesor.ID, &profesor.Nombre, &profesor.Apellido, &profesor.FechaNacimiento, &profesor.Direccion, &profesor.Especialidad)
	if err != nil {
		return nil, err
	}
	return profesor, nil
}

// CreateWithAsignacion inserts a new teacher together with its empty
// assignment record. Both writes share one transaction, so a failed second
// write leaves no orphaned teacher behind.
func (r *ProfesorRepository) CreateWithAsignacion(ctx context.Context, profesor *models.Profesor) (int64, error) {
	var id int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		insertProfesor, args, err := r.sb.Insert("profesores").
			Columns("nombre", "apellido", "fecha_nacimiento", "direccion", "especialidad").
			Values(profesor.Nombre, profesor.Apellido, profesor.FechaNacimiento, profesor.Direccion, profesor.Especialidad).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create profesor query: %w", err)
		}

		if err := tx.QueryRow(ctx, insertProfesor, args...).Scan(&id); err != nil {
			logger.Error().Err(err).Msg("Error executing create profesor query")
			return fmt.Errorf("error creating profesor: %w", err)
		}

		insertAsignacion, asigArgs, err := r.sb.Insert("profesores_materias").
			Columns("profesor_id").
			Values(id).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create asignacion record query: %w", err)
		}

		if _, err := tx.Exec(ctx, insertAsignacion, asigArgs...); err != nil {
			logger.Error().Err(err).Int64("profesorID", id).Msg("Error creating asignacion record for profesor")
			return fmt.Errorf("error creating asignacion record: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a teacher by ID
func (r *ProfesorRepository) GetByID(ctx context.Context, id int64) (*models.Profesor, error) {
	sql, args, err := r.sb.Select(profesorColumns...).
		From("profesores").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get profesor by ID SQL")
		return nil, fmt.Errorf("failed to build get profesor query: %w", err)
	}

	profesor, err := scanProfesor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfesorNotFound
		}
		logger.Error().Err(err).Int64("profesorID", id).Msg("Error scanning profesor row")
		return nil, fmt.Errorf("error getting profesor by ID: %w", err)
	}

	return profesor, nil
}

// GetAll retrieves all teachers
func (r *ProfesorRepository) GetAll(ctx context.Context) ([]*models.Profesor, error) {
	sql, args, err := r.sb.Select(profesorColumns...).
		From("profesores").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all profesores SQL")
		return nil, fmt.Errorf("failed to build get all profesores query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all profesores query")
		return nil, fmt.Errorf("error querying profesores: %w", err)
	}
	defer rows.Close()

	profesores := []*models.Profesor{}
	for rows.Next() {
		profesor, err := scanProfesor(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning profesor row during get all")
			return nil, fmt.Errorf("error scanning profesor row: %w", err)
		}
		profesores = append(profesores, profesor)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating profesor rows")
		return nil, fmt.Errorf("error iterating profesor rows: %w", err)
	}

	return profesores, nil
}

// Update overwrites a teacher row with the merged record
func (r *ProfesorRepository) Update(ctx context.Context, profesor *models.Profesor) error {
	sql, args, err := r.sb.Update("profesores").
		SetMap(map[string]interface{}{
			"nombre":           profesor.Nombre,
			"apellido":         profesor.Apellido,
			"fecha_nacimiento": profesor.FechaNacimiento,
			"direccion":        profesor.Direccion,
			"especialidad":     profesor.Especialidad,
		}).
		Where(squirrel.Eq{"id": profesor.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update profesor SQL")
		return fmt.Errorf("failed to build update profesor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("profesorID", profesor.ID).Msg("Error executing update profesor query")
		return fmt.Errorf("error updating profesor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProfesorNotFound
	}

	return nil
}

// DeleteWithAsignacion deletes a teacher, its assignment record and the
// subjects in that record in a single transaction. The teacher delete aborts
// when the assignment record is missing, matching the invariant that every
// teacher owns exactly one record.
func (r *ProfesorRepository) DeleteWithAsignacion(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		delMaterias, delMateriasArgs, err := r.sb.Delete("materias_asignadas").
			Where(squirrel.Eq{"profesor_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete materias asignadas query: %w", err)
		}

		if _, err := tx.Exec(ctx, delMaterias, delMateriasArgs...); err != nil {
			logger.Error().Err(err).Int64("profesorID", id).Msg("Error deleting materias asignadas for profesor")
			return fmt.Errorf("error deleting materias asignadas: %w", err)
		}

		delRecord, delRecordArgs, err := r.sb.Delete("profesores_materias").
			Where(squirrel.Eq{"profesor_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete asignacion record query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, delRecord, delRecordArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("profesorID", id).Msg("Error deleting asignacion record for profesor")
			return fmt.Errorf("error deleting asignacion record: %w", err)
		}

		// Exactly one record must go away, otherwise abort the whole delete.
		if cmdTag.RowsAffected() != 1 {
			return apperrors.ErrAsignacionNotFound
		}

		delProfesor, delProfesorArgs, err := r.sb.Delete("profesores").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete profesor query: %w", err)
		}

		cmdTag, err = tx.Exec(ctx, delProfesor, delProfesorArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("profesorID", id).Msg("Error executing delete profesor query")
			return fmt.Errorf("error deleting profesor: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrProfesorNotFound
		}

		return nil
	})
}
