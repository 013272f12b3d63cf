package services

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeAlumnoRepo struct {
	nextID    int64
	alumnos   map[int64]*models.Alumno
	createErr error
	updateErr error
}

func newFakeAlumnoRepo() *fakeAlumnoRepo {
	return &fakeAlumnoRepo{nextID: 1, alumnos: map[int64]*models.Alumno{}}
}

func (f *fakeAlumnoRepo) Create(_ context.Context, alumno *models.Alumno) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	id := f.nextID
	f.nextID++
	copied := *alumno
	copied.ID = id
	f.alumnos[id] = &copied
	return id, nil
}

func (f *fakeAlumnoRepo) GetByID(_ context.Context, id int64) (*models.Alumno, error) {
	alumno, ok := f.alumnos[id]
	if !ok {
		return nil, apperrors.ErrAlumnoNotFound
	}
	copied := *alumno
	return &copied, nil
}

func (f *fakeAlumnoRepo) GetAll(_ context.Context) ([]*models.Alumno, error) {
	all := []*models.Alumno{}
	for _, a := range f.alumnos {
		copied := *a
		all = append(all, &copied)
	}
	return all, nil
}

func (f *fakeAlumnoRepo) Update(_ context.Context, alumno *models.Alumno) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.alumnos[alumno.ID]; !ok {
		return apperrors.ErrAlumnoNotFound
	}
	copied := *alumno
	f.alumnos[alumno.ID] = &copied
	return nil
}

func (f *fakeAlumnoRepo) DeleteWithInscripciones(_ context.Context, id int64) error {
	if _, ok := f.alumnos[id]; !ok {
		return apperrors.ErrAlumnoNotFound
	}
	delete(f.alumnos, id)
	return nil
}

type fakePhotoStorage struct {
	saved     []string
	deleted   []string
	saveErr   error
	deleteErr error
	counter   int
}

func (f *fakePhotoStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.counter++
	url := "http://localhost:8000/uploads/" + subPath + "/foto-" + string(rune('0'+f.counter)) + ".jpg"
	f.saved = append(f.saved, url)
	return url, nil
}

func (f *fakePhotoStorage) DeleteFile(filePath string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, filePath)
	return nil
}

func createRequest() *dto.CreateAlumnoRequest {
	return &dto.CreateAlumnoRequest{
		Nombre:          "Ana",
		Apellido:        "Lopez",
		FechaNacimiento: time.Date(2005, 3, 14, 0, 0, 0, 0, time.UTC),
		Direccion:       "Calle 1",
	}
}

func TestCreateAlumnoStoresPhotoFirst(t *testing.T) {
	repo := newFakeAlumnoRepo()
	storage := &fakePhotoStorage{}
	service := NewAlumnoService(repo, storage, zerolog.Nop())

	alumno, err := service.CreateAlumno(context.Background(), createRequest(), &multipart.FileHeader{Filename: "ana.jpg"})
	require.NoError(t, err)
	require.Equal(t, int64(1), alumno.ID)
	require.Len(t, storage.saved, 1)
	require.Equal(t, storage.saved[0], alumno.Foto)
}

func TestCreateAlumnoStorageFailure(t *testing.T) {
	repo := newFakeAlumnoRepo()
	storage := &fakePhotoStorage{saveErr: errors.New("disk full")}
	service := NewAlumnoService(repo, storage, zerolog.Nop())

	_, err := service.CreateAlumno(context.Background(), createRequest(), &multipart.FileHeader{Filename: "ana.jpg"})
	require.ErrorIs(t, err, apperrors.ErrStorageFailure)
	require.Empty(t, repo.alumnos)
}

func TestCreateAlumnoInsertFailureRemovesPhoto(t *testing.T) {
	repo := newFakeAlumnoRepo()
	repo.createErr = errors.New("db down")
	storage := &fakePhotoStorage{}
	service := NewAlumnoService(repo, storage, zerolog.Nop())

	_, err := service.CreateAlumno(context.Background(), createRequest(), &multipart.FileHeader{Filename: "ana.jpg"})
	require.Error(t, err)
	require.Len(t, storage.saved, 1)
	require.Equal(t, storage.saved, storage.deleted)
}

func TestUpdateAlumnoMergesSuppliedFields(t *testing.T) {
	repo := newFakeAlumnoRepo()
	storage := &fakePhotoStorage{}
	service := NewAlumnoService(repo, storage, zerolog.Nop())

	created, err := service.CreateAlumno(context.Background(), createRequest(), &multipart.FileHeader{Filename: "ana.jpg"})
	require.NoError(t, err)

	nombre := "Ana Maria"
	updated, err := service.UpdateAlumno(context.Background(), created.ID, &dto.UpdateAlumnoRequest{Nombre: &nombre}, nil)
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", updated.Nombre)
	// Fields left out keep their stored values.
	require.Equal(t, "Lopez", updated.Apellido)
	require.Equal(t, created.Foto, updated.Foto)
}

func TestUpdateAlumnoReplacesPhoto(t *testing.T) {
	repo := newFakeAlumnoRepo()
	storage := &fakePhotoStorage{}
	service := NewAlumnoService(repo, storage, zerolog.Nop())

	created, err := service.CreateAlumno(context.Background(), createRequest(), &multipart.FileHeader{Filename: "ana.jpg"})
	require.NoError(t, err)

	updated, err := service.UpdateAlumno(context.Background(), created.ID, &dto.UpdateAlumnoRequest{}, &multipart.FileHeader{Filename: "nueva.jpg"})
	require.NoError(t, err)
	require.NotEqual(t, created.Foto, updated.Foto)
	// The replaced file is removed after the row update succeeds.
	require.Equal(t, []string{created.Foto}, storage.deleted)
}

func TestUpdateAlumnoNotFound(t *testing.T) {
	service := NewAlumnoService(newFakeAlumnoRepo(), &fakePhotoStorage{}, zerolog.Nop())

	_, err := service.UpdateAlumno(context.Background(), 99, &dto.UpdateAlumnoRequest{}, nil)
	require.ErrorIs(t, err, apperrors.ErrAlumnoNotFound)
}

func TestDeleteAlumnoRemovesPhotoFirst(t *testing.T) {
	repo := newFakeAlumnoRepo()
	storage := &fakePhotoStorage{}
	service := NewAlumnoService(repo, storage, zerolog.Nop())

	created, err := service.CreateAlumno(context.Background(), createRequest(), &multipart.FileHeader{Filename: "ana.jpg"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAlumno(context.Background(), created.ID))
	require.Equal(t, []string{created.Foto}, storage.deleted)
	require.Empty(t, repo.alumnos)
}

func TestDeleteAlumnoAbortsOnStorageFailure(t *testing.T) {
	repo := newFakeAlumnoRepo()
	storage := &fakePhotoStorage{}
	service := NewAlumnoService(repo, storage, zerolog.Nop())

	created, err := service.CreateAlumno(context.Background(), createRequest(), &multipart.FileHeader{Filename: "ana.jpg"})
	require.NoError(t, err)

	storage.deleteErr = errors.New("storage unreachable")
	err = service.DeleteAlumno(context.Background(), created.ID)
	require.ErrorIs(t, err, apperrors.ErrStorageFailure)
	// The row is still there.
	require.Len(t, repo.alumnos, 1)
}
