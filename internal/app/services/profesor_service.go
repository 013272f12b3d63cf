package services

import (
	"context"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// profesorStore is the slice of the teacher repository the service needs
type profesorStore interface {
	CreateWithAsignacion(ctx context.Context, profesor *models.Profesor) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Profesor, error)
	GetAll(ctx context.Context) ([]*models.Profesor, error)
	Update(ctx context.Context, profesor *models.Profesor) error
	DeleteWithAsignacion(ctx context.Context, id int64) error
}

// ProfesorService handles teacher operations
type ProfesorService struct {
	profesorRepo profesorStore
	logger       zerolog.Logger
}

// NewProfesorService creates a new ProfesorService
func NewProfesorService(profesorRepo profesorStore, logger zerolog.Logger) *ProfesorService {
	return &ProfesorService{
		profesorRepo: profesorRepo,
		logger:       logger,
	}
}

// CreateProfesor inserts a teacher together with its empty assignment record
func (s *ProfesorService) CreateProfesor(ctx context.Context, req *dto.CreateProfesorRequest) (*models.Profesor, error) {
	profesor := &models.Profesor{
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		FechaNacimiento: req.FechaNacimiento,
		Direccion:       req.Direccion,
		Especialidad:    req.Especialidad,
	}

	id, err := s.profesorRepo.CreateWithAsignacion(ctx, profesor)
	if err != nil {
		return nil, err
	}

	profesor.ID = id
	return profesor, nil
}

// GetProfesor retrieves a teacher by ID
func (s *ProfesorService) GetProfesor(ctx context.Context, id int64) (*models.Profesor, error) {
	return s.profesorRepo.GetByID(ctx, id)
}

// GetAllProfesores retrieves all teachers
func (s *ProfesorService) GetAllProfesores(ctx context.Context) ([]*models.Profesor, error) {
	return s.profesorRepo.GetAll(ctx)
}

// UpdateProfesor merges the supplied fields into the stored record. Fields
// left out of the request keep their stored values.
func (s *ProfesorService) UpdateProfesor(ctx context.Context, id int64, req *dto.UpdateProfesorRequest) (*models.Profesor, error) {
	profesor, err := s.profesorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		profesor.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		profesor.Apellido = *req.Apellido
	}
	if req.FechaNacimiento != nil {
		profesor.FechaNacimiento = *req.FechaNacimiento
	}
	if req.Direccion != nil {
		profesor.Direccion = *req.Direccion
	}
	if req.Especialidad != nil {
		profesor.Especialidad = *req.Especialidad
	}

	if err := s.profesorRepo.Update(ctx, profesor); err != nil {
		return nil, err
	}

	return profesor, nil
}

// DeleteProfesor removes a teacher, its assignment record and the subjects in
// that record
func (s *ProfesorService) DeleteProfesor(ctx context.Context, id int64) error {
	return s.profesorRepo.DeleteWithAsignacion(ctx, id)
}
