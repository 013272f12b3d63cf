package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/filestorage"
	"github.com/rs/zerolog"
)

const alumnoPhotoDir = "alumnos"

// alumnoStore is the slice of the student repository the service needs
type alumnoStore interface {
	Create(ctx context.Context, alumno *models.Alumno) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Alumno, error)
	GetAll(ctx context.Context) ([]*models.Alumno, error)
	Update(ctx context.Context, alumno *models.Alumno) error
	DeleteWithInscripciones(ctx context.Context, id int64) error
}

// AlumnoService handles student operations, including the photo lifecycle
type AlumnoService struct {
	alumnoRepo alumnoStore
	storage    filestorage.PhotoStorage
	logger     zerolog.Logger
}

// NewAlumnoService creates a new AlumnoService
func NewAlumnoService(alumnoRepo alumnoStore, storage filestorage.PhotoStorage, logger zerolog.Logger) *AlumnoService {
	return &AlumnoService{
		alumnoRepo: alumnoRepo,
		storage:    storage,
		logger:     logger,
	}
}

// CreateAlumno saves the photo first and only then inserts the row. When the
// insert fails the saved photo is removed again so storage holds no file that
// no student references.
func (s *AlumnoService) CreateAlumno(ctx context.Context, req *dto.CreateAlumnoRequest, photo *multipart.FileHeader) (*models.Alumno, error) {
	fotoURL, err := s.storage.SaveFileWithPath(photo, alumnoPhotoDir)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", photo.Filename).Msg("Failed to store alumno photo")
		return nil, fmt.Errorf("%w: could not store photo", apperrors.ErrStorageFailure)
	}

	alumno := &models.Alumno{
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		FechaNacimiento: req.FechaNacimiento,
		Direccion:       req.Direccion,
		Foto:            fotoURL,
	}

	id, err := s.alumnoRepo.Create(ctx, alumno)
	if err != nil {
		if delErr := s.storage.DeleteFile(fotoURL); delErr != nil {
			s.logger.Error().Err(delErr).Str("foto", fotoURL).Msg("Failed to remove photo after aborted alumno insert")
		}
		return nil, err
	}

	alumno.ID = id
	return alumno, nil
}

// GetAlumno retrieves a student by ID
func (s *AlumnoService) GetAlumno(ctx context.Context, id int64) (*models.Alumno, error) {
	return s.alumnoRepo.GetByID(ctx, id)
}

// GetAllAlumnos retrieves all students
func (s *AlumnoService) GetAllAlumnos(ctx context.Context) ([]*models.Alumno, error) {
	return s.alumnoRepo.GetAll(ctx)
}

// UpdateAlumno merges the supplied fields into the stored record. Fields left
// out of the request keep their stored values. A new photo replaces the old
// one, and the old file is deleted only after the row update succeeded.
func (s *AlumnoService) UpdateAlumno(ctx context.Context, id int64, req *dto.UpdateAlumnoRequest, photo *multipart.FileHeader) (*models.Alumno, error) {
	alumno, err := s.alumnoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		alumno.Nombre = *req.Nombre
	}
	if req.Apellido != nil {
		alumno.Apellido = *req.Apellido
	}
	if req.FechaNacimiento != nil {
		alumno.FechaNacimiento = *req.FechaNacimiento
	}
	if req.Direccion != nil {
		alumno.Direccion = *req.Direccion
	}

	oldFoto := alumno.Foto
	if photo != nil {
		fotoURL, err := s.storage.SaveFileWithPath(photo, alumnoPhotoDir)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", photo.Filename).Msg("Failed to store replacement alumno photo")
			return nil, fmt.Errorf("%w: could not store photo", apperrors.ErrStorageFailure)
		}
		alumno.Foto = fotoURL
	}

	if err := s.alumnoRepo.Update(ctx, alumno); err != nil {
		if photo != nil {
			if delErr := s.storage.DeleteFile(alumno.Foto); delErr != nil {
				s.logger.Error().Err(delErr).Str("foto", alumno.Foto).Msg("Failed to remove photo after aborted alumno update")
			}
		}
		return nil, err
	}

	if photo != nil && oldFoto != "" {
		if err := s.storage.DeleteFile(oldFoto); err != nil {
			s.logger.Warn().Err(err).Str("foto", oldFoto).Msg("Failed to remove replaced alumno photo")
		}
	}

	return alumno, nil
}

// DeleteAlumno removes the photo first and aborts when that fails, then
// deletes the row together with the student's enrollments.
func (s *AlumnoService) DeleteAlumno(ctx context.Context, id int64) error {
	alumno, err := s.alumnoRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if alumno.Foto != "" {
		if err := s.storage.DeleteFile(alumno.Foto); err != nil {
			s.logger.Error().Err(err).Str("foto", alumno.Foto).Int64("alumnoID", id).Msg("Failed to delete alumno photo")
			return fmt.Errorf("%w: could not delete photo", apperrors.ErrStorageFailure)
		}
	}

	if err := s.alumnoRepo.DeleteWithInscripciones(ctx, id); err != nil {
		// The photo is already gone at this point. The row stays behind with a
		// dangling foto reference, which the next delete attempt tolerates.
		s.logger.Error().Err(err).Int64("alumnoID", id).Msg("Alumno row delete failed after photo removal")
		return err
	}

	return nil
}
