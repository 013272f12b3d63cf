package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// asignacionStore is the slice of the assignment repository the service needs
type asignacionStore interface {
	HasRecord(ctx context.Context, profesorID int64) (bool, error)
	Assign(ctx context.Context, profesorID, materiaID int64) error
	GetOwner(ctx context.Context, materiaID int64) (*models.Asignacion, error)
	GetMateriasByProfesor(ctx context.Context, profesorID int64) ([]*models.Materia, error)
	GetProfesorIDs(ctx context.Context) ([]int64, error)
}

// profesorReader resolves teacher ids for assignment operations
type profesorReader interface {
	GetByID(ctx context.Context, id int64) (*models.Profesor, error)
}

// materiaReader resolves subject ids for assignment operations
type materiaReader interface {
	GetByID(ctx context.Context, id int64) (*models.Materia, error)
}

// AsignacionService handles the exclusive teacher-subject assignment
type AsignacionService struct {
	asignacionRepo asignacionStore
	profesorRepo   profesorReader
	materiaRepo    materiaReader
	logger         zerolog.Logger
}

// NewAsignacionService creates a new AsignacionService
func NewAsignacionService(asignacionRepo asignacionStore, profesorRepo profesorReader, materiaRepo materiaReader, logger zerolog.Logger) *AsignacionService {
	return &AsignacionService{
		asignacionRepo: asignacionRepo,
		profesorRepo:   profesorRepo,
		materiaRepo:    materiaRepo,
		logger:         logger,
	}
}

// AssignMateria adds a subject to a teacher's assignment set. A subject may
// belong to at most one teacher across the whole system; a second assignment
// attempt reports the current owner in the conflict.
func (s *AsignacionService) AssignMateria(ctx context.Context, profesorID, materiaID int64) (*dto.ProfesorConMaterias, error) {
	if _, err := s.profesorRepo.GetByID(ctx, profesorID); err != nil {
		return nil, err
	}

	// The teacher must own an assignment record before subjects can be added.
	hasRecord, err := s.asignacionRepo.HasRecord(ctx, profesorID)
	if err != nil {
		return nil, err
	}
	if !hasRecord {
		return nil, apperrors.ErrAsignacionNotFound
	}

	if _, err := s.materiaRepo.GetByID(ctx, materiaID); err != nil {
		return nil, err
	}

	if err := s.asignacionRepo.Assign(ctx, profesorID, materiaID); err != nil {
		if errors.Is(err, apperrors.ErrMateriaYaAsignada) {
			owner, ownerErr := s.asignacionRepo.GetOwner(ctx, materiaID)
			if ownerErr != nil {
				return nil, apperrors.ErrMateriaYaAsignada
			}
			return nil, apperrors.NewConflictError(fmt.Sprintf("materia %d ya asignada al profesor %d", materiaID, owner.ProfesorID))
		}
		return nil, err
	}

	return s.GetProfesorConMaterias(ctx, profesorID)
}

// GetProfesorConMaterias returns a teacher with the subjects assigned to it
func (s *AsignacionService) GetProfesorConMaterias(ctx context.Context, profesorID int64) (*dto.ProfesorConMaterias, error) {
	profesor, err := s.profesorRepo.GetByID(ctx, profesorID)
	if err != nil {
		return nil, err
	}

	materias, err := s.asignacionRepo.GetMateriasByProfesor(ctx, profesorID)
	if err != nil {
		return nil, err
	}

	return buildProfesorConMaterias(profesor, materias), nil
}

// GetAllProfesoresConMaterias returns every teacher that owns an assignment
// record, each with its subjects
func (s *AsignacionService) GetAllProfesoresConMaterias(ctx context.Context) ([]*dto.ProfesorConMaterias, error) {
	ids, err := s.asignacionRepo.GetProfesorIDs(ctx)
	if err != nil {
		return nil, err
	}

	result := []*dto.ProfesorConMaterias{}
	for _, id := range ids {
		profesor, err := s.profesorRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrProfesorNotFound) {
				continue
			}
			return nil, err
		}

		materias, err := s.asignacionRepo.GetMateriasByProfesor(ctx, id)
		if err != nil {
			return nil, err
		}

		result = append(result, buildProfesorConMaterias(profesor, materias))
	}

	return result, nil
}

func buildProfesorConMaterias(profesor *models.Profesor, materias []*models.Materia) *dto.ProfesorConMaterias {
	proj := &dto.ProfesorConMaterias{
		Profesor: *profesor,
		Materias: []models.Materia{},
	}
	for _, m := range materias {
		proj.Materias = append(proj.Materias, *m)
	}
	return proj
}
