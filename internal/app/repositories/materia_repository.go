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

// MateriaRepository handles subject database operations
type MateriaRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMateriaRepository creates a new MateriaRepository
func NewMateriaRepository(db *pgxpool.Pool) *MateriaRepository {
	return &MateriaRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new subject and returns the generated id
func (r *MateriaRepository) Create(ctx context.Context, materia *models.Materia) (int64, error) {
	sql, args, err := r.sb.Insert("materias").
		Columns("nombre", "descripcion").
		Values(materia.Nombre, materia.Descripcion).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create materia SQL")
		return 0, fmt.Errorf("failed to build create materia query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create materia query")
		return 0, fmt.Errorf("error creating materia: %w", err)
	}

	return id, nil
}

// GetByID retrieves a subject by ID
func (r *MateriaRepository) GetByID(ctx context.Context, id int64) (*models.Materia, error) {
	sql, args, err := r.sb.Select("id", "nombre", "descripcion").
		From("materias").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get materia by ID SQL")
		return nil, fmt.Errorf("failed to build get materia query: %w", err)
	}

	materia := &models.Materia{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&materia.ID, &materia.Nombre, &materia.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMateriaNotFound
		}
		logger.Error().Err(err).Int64("materiaID", id).Msg("Error scanning materia row")
		return nil, fmt.Errorf("error getting materia by ID: %w", err)
	}

	return materia, nil
}

// GetAll retrieves all subjects
func (r *MateriaRepository) GetAll(ctx context.Context) ([]*models.Materia, error) {
	sql, args, err := r.sb.Select("id", "nombre", "descripcion").
		From("materias").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all materias SQL")
		return nil, fmt.Errorf("failed to build get all materias query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all materias query")
		return nil, fmt.Errorf("error querying materias: %w", err)
	}
	defer rows.Close()

	materias := []*models.Materia{}
	for rows.Next() {
		materia := &models.Materia{}
		if err := rows.Scan(&materia.ID, &materia.Nombre, &materia.Descripcion); err != nil {
			logger.Error().Err(err).Msg("Error scanning materia row during get all")
			return nil, fmt.Errorf("error scanning materia row: %w", err)
		}
		materias = append(materias, materia)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating materia rows")
		return nil, fmt.Errorf("error iterating materia rows: %w", err)
	}

	return materias, nil
}

// Update overwrites a subject row with the merged record
func (r *MateriaRepository) Update(ctx context.Context, materia *models.Materia) error {
	sql, args, err := r.sb.Update("materias").
		SetMap(map[string]interface{}{
			"nombre":      materia.Nombre,
			"descripcion": materia.Descripcion,
		}).
		Where(squirrel.Eq{"id": materia.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update materia SQL")
		return fmt.Errorf("failed to build update materia query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("materiaID", materia.ID).Msg("Error executing update materia query")
		return fmt.Errorf("error updating materia: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMateriaNotFound
	}

	return nil
}

// DeleteWithRelations deletes a subject and cascades into both relation
// tables in a single transaction: the subject leaves every teacher's
// assignment set and every enrollment referencing it is removed.
func (r *MateriaRepository) DeleteWithRelations(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		delAsignadas, delAsignadasArgs, err := r.sb.Delete("materias_asignadas").
			Where(squirrel.Eq{"materia_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete materias asignadas query: %w", err)
		}

		if _, err := tx.Exec(ctx, delAsignadas, delAsignadasArgs...); err != nil {
			logger.Error().Err(err).Int64("materiaID", id).Msg("Error removing materia from asignaciones")
			return fmt.Errorf("error removing materia from asignaciones: %w", err)
		}

		delInscripciones, delInscripcionesArgs, err := r.sb.Delete("alumnos_materias").
			Where(squirrel.Eq{"materia_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete inscripciones query: %w", err)
		}

		if _, err := tx.Exec(ctx, delInscripciones, delInscripcionesArgs...); err != nil {
			logger.Error().Err(err).Int64("materiaID", id).Msg("Error deleting inscripciones for materia")
			return fmt.Errorf("error deleting inscripciones for materia: %w", err)
		}

		delMateria, delMateriaArgs, err := r.sb.Delete("materias").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete materia query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, delMateria, delMateriaArgs...)
		if err != nil {
			logger.Error().Err(err).Int64("materiaID", id).Msg("Error executing delete materia query")
			return fmt.Errorf("error deleting materia: %w", err)
		}

		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrMateriaNotFound
		}

		return nil
	})
}
