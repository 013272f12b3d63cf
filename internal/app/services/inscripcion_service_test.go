package services

import (
	"context"
	"testing"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeAlumnoReader struct {
	alumnos map[int64]*models.Alumno
}

func (f *fakeAlumnoReader) GetByID(_ context.Context, id int64) (*models.Alumno, error) {
	alumno, ok := f.alumnos[id]
	if !ok {
		return nil, apperrors.ErrAlumnoNotFound
	}
	copied := *alumno
	return &copied, nil
}

type fakeMateriaReader struct {
	materias map[int64]*models.Materia
}

func (f *fakeMateriaReader) GetByID(_ context.Context, id int64) (*models.Materia, error) {
	materia, ok := f.materias[id]
	if !ok {
		return nil, apperrors.ErrMateriaNotFound
	}
	copied := *materia
	return &copied, nil
}

type fakeInscripcionRepo struct {
	nextID         int64
	enrolled       map[[2]int64]*float64
	materiaIDs     []int64
	gradedAlumnos  []int64
	alumnosByMat   map[int64][]*models.Alumno
	calificaciones map[int64][]*models.CalificacionMateria
}

func newFakeInscripcionRepo() *fakeInscripcionRepo {
	return &fakeInscripcionRepo{
		nextID:         1,
		enrolled:       map[[2]int64]*float64{},
		alumnosByMat:   map[int64][]*models.Alumno{},
		calificaciones: map[int64][]*models.CalificacionMateria{},
	}
}

func (f *fakeInscripcionRepo) Enroll(_ context.Context, alumnoID, materiaID int64) (int64, error) {
	key := [2]int64{alumnoID, materiaID}
	if _, ok := f.enrolled[key]; ok {
		return 0, apperrors.ErrInscripcionExists
	}
	f.enrolled[key] = nil
	id := f.nextID
	f.nextID++
	return id, nil
}

func (f *fakeInscripcionRepo) UpdateCalificacion(_ context.Context, alumnoID, materiaID int64, calificacion float64) error {
	key := [2]int64{alumnoID, materiaID}
	if _, ok := f.enrolled[key]; !ok {
		return apperrors.ErrInscripcionNotFound
	}
	f.enrolled[key] = &calificacion
	return nil
}

func (f *fakeInscripcionRepo) GetAlumnosByMateria(_ context.Context, materiaID int64) ([]*models.Alumno, error) {
	return f.alumnosByMat[materiaID], nil
}

func (f *fakeInscripcionRepo) GetMateriaIDs(_ context.Context) ([]int64, error) {
	return f.materiaIDs, nil
}

func (f *fakeInscripcionRepo) GetAlumnoIDsWithCalificacion(_ context.Context) ([]int64, error) {
	return f.gradedAlumnos, nil
}

func (f *fakeInscripcionRepo) GetCalificacionesByAlumno(_ context.Context, alumnoID int64) ([]*models.CalificacionMateria, error) {
	return f.calificaciones[alumnoID], nil
}

func newTestInscripcionService(repo *fakeInscripcionRepo, alumnos *fakeAlumnoReader, materias *fakeMateriaReader) *InscripcionService {
	return NewInscripcionService(repo, alumnos, materias, zerolog.Nop())
}

func TestEnroll(t *testing.T) {
	repo := newFakeInscripcionRepo()
	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{1: {ID: 1, Nombre: "Ana"}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{2: {ID: 2, Nombre: "Algebra"}}},
	)

	inscripcion, err := service.Enroll(context.Background(), &dto.EnrollRequest{AlumnoID: 1, MateriaID: 2})
	require.NoError(t, err)
	require.Equal(t, int64(1), inscripcion.AlumnoID)
	require.Equal(t, int64(2), inscripcion.MateriaID)
	require.Nil(t, inscripcion.Calificacion)

	// Same pair again is a conflict.
	_, err = service.Enroll(context.Background(), &dto.EnrollRequest{AlumnoID: 1, MateriaID: 2})
	require.ErrorIs(t, err, apperrors.ErrInscripcionExists)
}

func TestEnrollMissingSides(t *testing.T) {
	repo := newFakeInscripcionRepo()
	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{1: {ID: 1}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{2: {ID: 2}}},
	)

	_, err := service.Enroll(context.Background(), &dto.EnrollRequest{AlumnoID: 99, MateriaID: 2})
	require.ErrorIs(t, err, apperrors.ErrAlumnoNotFound)

	_, err = service.Enroll(context.Background(), &dto.EnrollRequest{AlumnoID: 1, MateriaID: 99})
	require.ErrorIs(t, err, apperrors.ErrMateriaNotFound)
}

func TestSetCalificacionBounds(t *testing.T) {
	repo := newFakeInscripcionRepo()
	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{1: {ID: 1}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{2: {ID: 2}}},
	)

	_, err := service.Enroll(context.Background(), &dto.EnrollRequest{AlumnoID: 1, MateriaID: 2})
	require.NoError(t, err)

	// Boundary values are accepted.
	require.NoError(t, service.SetCalificacion(context.Background(), 1, 2, 0))
	require.NoError(t, service.SetCalificacion(context.Background(), 1, 2, 10))
	require.NoError(t, service.SetCalificacion(context.Background(), 1, 2, 8.5))

	require.ErrorIs(t, service.SetCalificacion(context.Background(), 1, 2, -0.1), apperrors.ErrCalificacionInvalida)
	require.ErrorIs(t, service.SetCalificacion(context.Background(), 1, 2, 10.1), apperrors.ErrCalificacionInvalida)
}

func TestSetCalificacionMissingInscripcion(t *testing.T) {
	repo := newFakeInscripcionRepo()
	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{}},
	)

	err := service.SetCalificacion(context.Background(), 1, 2, 7)
	require.ErrorIs(t, err, apperrors.ErrInscripcionNotFound)
}

func TestGetMateriaConAlumnos(t *testing.T) {
	repo := newFakeInscripcionRepo()
	repo.alumnosByMat[2] = []*models.Alumno{{ID: 1, Nombre: "Ana"}, {ID: 3, Nombre: "Luis"}}

	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{2: {ID: 2, Nombre: "Algebra"}}},
	)

	materia, err := service.GetMateriaConAlumnos(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "Algebra", materia.Nombre)
	require.Len(t, materia.Alumnos, 2)

	_, err = service.GetMateriaConAlumnos(context.Background(), 99)
	require.ErrorIs(t, err, apperrors.ErrMateriaNotFound)
}

func TestGetAllMateriasConAlumnosSkipsMissing(t *testing.T) {
	repo := newFakeInscripcionRepo()
	repo.materiaIDs = []int64{2, 5}
	repo.alumnosByMat[2] = []*models.Alumno{{ID: 1}}

	// Materia 5 has enrollments but the subject itself is gone; the listing
	// skips it instead of failing.
	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{2: {ID: 2, Nombre: "Algebra"}}},
	)

	materias, err := service.GetAllMateriasConAlumnos(context.Background())
	require.NoError(t, err)
	require.Len(t, materias, 1)
	require.Equal(t, int64(2), materias[0].ID)
}

func TestGetAlumnoConCalificaciones(t *testing.T) {
	repo := newFakeInscripcionRepo()
	repo.calificaciones[1] = []*models.CalificacionMateria{
		{Materia: models.Materia{ID: 2, Nombre: "Algebra"}, Calificacion: 9.5},
	}

	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{1: {ID: 1, Nombre: "Ana"}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{}},
	)

	alumno, err := service.GetAlumnoConCalificaciones(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Ana", alumno.Nombre)
	require.Len(t, alumno.Calificaciones, 1)
	require.Equal(t, 9.5, alumno.Calificaciones[0].Calificacion)
}

func TestGetAllAlumnosConCalificacionesSkipsMissing(t *testing.T) {
	repo := newFakeInscripcionRepo()
	repo.gradedAlumnos = []int64{1, 7}
	repo.calificaciones[1] = []*models.CalificacionMateria{
		{Materia: models.Materia{ID: 2}, Calificacion: 6},
	}

	service := newTestInscripcionService(repo,
		&fakeAlumnoReader{alumnos: map[int64]*models.Alumno{1: {ID: 1, Nombre: "Ana"}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{}},
	)

	alumnos, err := service.GetAllAlumnosConCalificaciones(context.Background())
	require.NoError(t, err)
	require.Len(t, alumnos, 1)
	require.Equal(t, int64(1), alumnos[0].ID)
}
