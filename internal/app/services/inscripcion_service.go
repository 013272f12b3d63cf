package services

import (
	"context"
	"errors"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// inscripcionStore is the slice of the enrollment repository the service needs
type inscripcionStore interface {
	Enroll(ctx context.Context, alumnoID, materiaID int64) (int64, error)
	UpdateCalificacion(ctx context.Context, alumnoID, materiaID int64, calificacion float64) error
	GetAlumnosByMateria(ctx context.Context, materiaID int64) ([]*models.Alumno, error)
	GetMateriaIDs(ctx context.Context) ([]int64, error)
	GetAlumnoIDsWithCalificacion(ctx context.Context) ([]int64, error)
	GetCalificacionesByAlumno(ctx context.Context, alumnoID int64) ([]*models.CalificacionMateria, error)
}

// alumnoReader resolves student ids for enrollment operations
type alumnoReader interface {
	GetByID(ctx context.Context, id int64) (*models.Alumno, error)
}

// InscripcionService handles enrollments, grades and the read projections
// built on top of them
type InscripcionService struct {
	inscripcionRepo inscripcionStore
	alumnoRepo      alumnoReader
	materiaRepo     materiaReader
	logger          zerolog.Logger
}

// NewInscripcionService creates a new InscripcionService
func NewInscripcionService(inscripcionRepo inscripcionStore, alumnoRepo alumnoReader, materiaRepo materiaReader, logger zerolog.Logger) *InscripcionService {
	return &InscripcionService{
		inscripcionRepo: inscripcionRepo,
		alumnoRepo:      alumnoRepo,
		materiaRepo:     materiaRepo,
		logger:          logger,
	}
}

// Enroll registers a student in a subject with no grade. Both sides must
// exist and a student enrolls in a given subject at most once.
func (s *InscripcionService) Enroll(ctx context.Context, req *dto.EnrollRequest) (*models.Inscripcion, error) {
	if _, err := s.alumnoRepo.GetByID(ctx, req.AlumnoID); err != nil {
		return nil, err
	}
	if _, err := s.materiaRepo.GetByID(ctx, req.MateriaID); err != nil {
		return nil, err
	}

	id, err := s.inscripcionRepo.Enroll(ctx, req.AlumnoID, req.MateriaID)
	if err != nil {
		return nil, err
	}

	return &models.Inscripcion{
		ID:        id,
		AlumnoID:  req.AlumnoID,
		MateriaID: req.MateriaID,
	}, nil
}

// SetCalificacion stores a grade on an existing enrollment. The grade must
// fall inside [0, 10], boundaries included.
func (s *InscripcionService) SetCalificacion(ctx context.Context, alumnoID, materiaID int64, calificacion float64) error {
	if calificacion < 0 || calificacion > 10 {
		return apperrors.ErrCalificacionInvalida
	}

	return s.inscripcionRepo.UpdateCalificacion(ctx, alumnoID, materiaID, calificacion)
}

// GetMateriaConAlumnos returns a subject with the students enrolled in it
func (s *InscripcionService) GetMateriaConAlumnos(ctx context.Context, materiaID int64) (*dto.MateriaConAlumnos, error) {
	materia, err := s.materiaRepo.GetByID(ctx, materiaID)
	if err != nil {
		return nil, err
	}

	alumnos, err := s.inscripcionRepo.GetAlumnosByMateria(ctx, materiaID)
	if err != nil {
		return nil, err
	}

	return buildMateriaConAlumnos(materia, alumnos), nil
}

// GetAllMateriasConAlumnos returns every subject that has at least one
// enrollment, each with its students. Enrollments pointing at a subject that
// no longer exists are skipped rather than failing the whole listing.
func (s *InscripcionService) GetAllMateriasConAlumnos(ctx context.Context) ([]*dto.MateriaConAlumnos, error) {
	ids, err := s.inscripcionRepo.GetMateriaIDs(ctx)
	if err != nil {
		return nil, err
	}

	result := []*dto.MateriaConAlumnos{}
	for _, id := range ids {
		materia, err := s.materiaRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrMateriaNotFound) {
				continue
			}
			return nil, err
		}

		alumnos, err := s.inscripcionRepo.GetAlumnosByMateria(ctx, id)
		if err != nil {
			return nil, err
		}

		result = append(result, buildMateriaConAlumnos(materia, alumnos))
	}

	return result, nil
}

// GetAlumnoConCalificaciones returns a student with the grades it earned.
// Enrollments without a grade are left out.
func (s *InscripcionService) GetAlumnoConCalificaciones(ctx context.Context, alumnoID int64) (*dto.AlumnoConCalificaciones, error) {
	alumno, err := s.alumnoRepo.GetByID(ctx, alumnoID)
	if err != nil {
		return nil, err
	}

	calificaciones, err := s.inscripcionRepo.GetCalificacionesByAlumno(ctx, alumnoID)
	if err != nil {
		return nil, err
	}

	return buildAlumnoConCalificaciones(alumno, calificaciones), nil
}

// GetAllAlumnosConCalificaciones returns every student that has at least one
// graded enrollment, each with its grades
func (s *InscripcionService) GetAllAlumnosConCalificaciones(ctx context.Context) ([]*dto.AlumnoConCalificaciones, error) {
	ids, err := s.inscripcionRepo.GetAlumnoIDsWithCalificacion(ctx)
	if err != nil {
		return nil, err
	}

	result := []*dto.AlumnoConCalificaciones{}
	for _, id := range ids {
		alumno, err := s.alumnoRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrAlumnoNotFound) {
				continue
			}
			return nil, err
		}

		calificaciones, err := s.inscripcionRepo.GetCalificacionesByAlumno(ctx, id)
		if err != nil {
			return nil, err
		}

		result = append(result, buildAlumnoConCalificaciones(alumno, calificaciones))
	}

	return result, nil
}

func buildMateriaConAlumnos(materia *models.Materia, alumnos []*models.Alumno) *dto.MateriaConAlumnos {
	proj := &dto.MateriaConAlumnos{
		Materia: *materia,
		Alumnos: []models.Alumno{},
	}
	for _, a := range alumnos {
		proj.Alumnos = append(proj.Alumnos, *a)
	}
	return proj
}

func buildAlumnoConCalificaciones(alumno *models.Alumno, calificaciones []*models.CalificacionMateria) *dto.AlumnoConCalificaciones {
	proj := &dto.AlumnoConCalificaciones{
		Alumno:         *alumno,
		Calificaciones: []models.CalificacionMateria{},
	}
	for _, c := range calificaciones {
		proj.Calificaciones = append(proj.Calificaciones, *c)
	}
	return proj
}
