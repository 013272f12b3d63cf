package services

import (
	"context"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/rs/zerolog"
)

// materiaStore is the slice of the subject repository the service needs
type materiaStore interface {
	Create(ctx context.Context, materia *models.Materia) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Materia, error)
	GetAll(ctx context.Context) ([]*models.Materia, error)
	Update(ctx context.Context, materia *models.Materia) error
	DeleteWithRelations(ctx context.Context, id int64) error
}

// MateriaService handles subject operations
type MateriaService struct {
	materiaRepo materiaStore
	logger      zerolog.Logger
}

// NewMateriaService creates a new MateriaService
func NewMateriaService(materiaRepo materiaStore, logger zerolog.Logger) *MateriaService {
	return &MateriaService{
		materiaRepo: materiaRepo,
		logger:      logger,
	}
}

// CreateMateria inserts a new subject
func (s *MateriaService) CreateMateria(ctx context.Context, req *dto.CreateMateriaRequest) (*models.Materia, error) {
	materia := &models.Materia{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
	}

	id, err := s.materiaRepo.Create(ctx, materia)
	if err != nil {
		return nil, err
	}

	materia.ID = id
	return materia, nil
}

// GetMateria retrieves a subject by ID
func (s *MateriaService) GetMateria(ctx context.Context, id int64) (*models.Materia, error) {
	return s.materiaRepo.GetByID(ctx, id)
}

// GetAllMaterias retrieves all subjects
func (s *MateriaService) GetAllMaterias(ctx context.Context) ([]*models.Materia, error) {
	return s.materiaRepo.GetAll(ctx)
}

// UpdateMateria merges the supplied fields into the stored record. Fields
// left out of the request keep their stored values.
func (s *MateriaService) UpdateMateria(ctx context.Context, id int64, req *dto.UpdateMateriaRequest) (*models.Materia, error) {
	materia, err := s.materiaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		materia.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		materia.Descripcion = *req.Descripcion
	}

	if err := s.materiaRepo.Update(ctx, materia); err != nil {
		return nil, err
	}

	return materia, nil
}

// DeleteMateria removes a subject and cascades into assignments and
// enrollments
func (s *MateriaService) DeleteMateria(ctx context.Context, id int64) error {
	return s.materiaRepo.DeleteWithRelations(ctx, id)
}
