package services

import (
	"context"
	"testing"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeProfesorReader struct {
	profesores map[int64]*models.Profesor
}

func (f *fakeProfesorReader) GetByID(_ context.Context, id int64) (*models.Profesor, error) {
	profesor, ok := f.profesores[id]
	if !ok {
		return nil, apperrors.ErrProfesorNotFound
	}
	copied := *profesor
	return &copied, nil
}

type fakeAsignacionRepo struct {
	owners      map[int64]int64              // materiaID -> profesorID
	materias    map[int64][]*models.Materia  // profesorID -> materias
	records     map[int64]bool               // profesorID -> has assignment record
	recordOrder []int64
	catalog     map[int64]*models.Materia
}

func newFakeAsignacionRepo() *fakeAsignacionRepo {
	return &fakeAsignacionRepo{
		owners:   map[int64]int64{},
		materias: map[int64][]*models.Materia{},
		records:  map[int64]bool{},
		catalog:  map[int64]*models.Materia{},
	}
}

func (f *fakeAsignacionRepo) HasRecord(_ context.Context, profesorID int64) (bool, error) {
	return f.records[profesorID], nil
}

func (f *fakeAsignacionRepo) Assign(_ context.Context, profesorID, materiaID int64) error {
	if _, ok := f.owners[materiaID]; ok {
		return apperrors.ErrMateriaYaAsignada
	}
	f.owners[materiaID] = profesorID
	f.materias[profesorID] = append(f.materias[profesorID], f.catalog[materiaID])
	return nil
}

func (f *fakeAsignacionRepo) GetOwner(_ context.Context, materiaID int64) (*models.Asignacion, error) {
	owner, ok := f.owners[materiaID]
	if !ok {
		return nil, apperrors.ErrAsignacionNotFound
	}
	return &models.Asignacion{ProfesorID: owner, MateriaID: materiaID}, nil
}

func (f *fakeAsignacionRepo) GetMateriasByProfesor(_ context.Context, profesorID int64) ([]*models.Materia, error) {
	return f.materias[profesorID], nil
}

func (f *fakeAsignacionRepo) GetProfesorIDs(_ context.Context) ([]int64, error) {
	return f.recordOrder, nil
}

func newTestAsignacionService(repo *fakeAsignacionRepo, profesores *fakeProfesorReader, materias *fakeMateriaReader) *AsignacionService {
	return NewAsignacionService(repo, profesores, materias, zerolog.Nop())
}

func TestAssignMateria(t *testing.T) {
	repo := newFakeAsignacionRepo()
	repo.catalog[10] = &models.Materia{ID: 10, Nombre: "Algebra"}
	repo.records[1] = true

	service := newTestAsignacionService(repo,
		&fakeProfesorReader{profesores: map[int64]*models.Profesor{1: {ID: 1, Nombre: "Rosa"}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{10: {ID: 10, Nombre: "Algebra"}}},
	)

	profesor, err := service.AssignMateria(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), profesor.ID)
	require.Len(t, profesor.Materias, 1)
	require.Equal(t, "Algebra", profesor.Materias[0].Nombre)
}

func TestAssignMateriaConflictReportsOwner(t *testing.T) {
	repo := newFakeAsignacionRepo()
	repo.catalog[10] = &models.Materia{ID: 10, Nombre: "Algebra"}
	repo.records[1] = true
	repo.records[2] = true

	service := newTestAsignacionService(repo,
		&fakeProfesorReader{profesores: map[int64]*models.Profesor{
			1: {ID: 1, Nombre: "Rosa"},
			2: {ID: 2, Nombre: "Juan"},
		}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{10: {ID: 10, Nombre: "Algebra"}}},
	)

	_, err := service.AssignMateria(context.Background(), 1, 10)
	require.NoError(t, err)

	// Same subject under a different teacher is a conflict naming the owner.
	_, err = service.AssignMateria(context.Background(), 2, 10)
	require.ErrorIs(t, err, apperrors.ErrConflict)
	require.Contains(t, err.Error(), "profesor 1")
}

func TestAssignMateriaMissingSides(t *testing.T) {
	repo := newFakeAsignacionRepo()
	repo.records[1] = true
	service := newTestAsignacionService(repo,
		&fakeProfesorReader{profesores: map[int64]*models.Profesor{1: {ID: 1}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{10: {ID: 10}}},
	)

	_, err := service.AssignMateria(context.Background(), 99, 10)
	require.ErrorIs(t, err, apperrors.ErrProfesorNotFound)

	_, err = service.AssignMateria(context.Background(), 1, 99)
	require.ErrorIs(t, err, apperrors.ErrMateriaNotFound)
}

func TestAssignMateriaMissingRecord(t *testing.T) {
	repo := newFakeAsignacionRepo()
	repo.catalog[10] = &models.Materia{ID: 10, Nombre: "Algebra"}

	service := newTestAsignacionService(repo,
		&fakeProfesorReader{profesores: map[int64]*models.Profesor{1: {ID: 1, Nombre: "Rosa"}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{10: {ID: 10, Nombre: "Algebra"}}},
	)

	// The teacher row exists but its assignment record is gone.
	_, err := service.AssignMateria(context.Background(), 1, 10)
	require.ErrorIs(t, err, apperrors.ErrAsignacionNotFound)
	require.Empty(t, repo.owners)
}

func TestGetProfesorConMaterias(t *testing.T) {
	repo := newFakeAsignacionRepo()
	repo.materias[1] = []*models.Materia{{ID: 10, Nombre: "Algebra"}}

	service := newTestAsignacionService(repo,
		&fakeProfesorReader{profesores: map[int64]*models.Profesor{1: {ID: 1, Nombre: "Rosa"}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{}},
	)

	profesor, err := service.GetProfesorConMaterias(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Rosa", profesor.Nombre)
	require.Len(t, profesor.Materias, 1)

	_, err = service.GetProfesorConMaterias(context.Background(), 99)
	require.ErrorIs(t, err, apperrors.ErrProfesorNotFound)
}

func TestGetAllProfesoresConMateriasSkipsMissing(t *testing.T) {
	repo := newFakeAsignacionRepo()
	repo.recordOrder = []int64{1, 9}
	repo.materias[1] = []*models.Materia{{ID: 10, Nombre: "Algebra"}}

	service := newTestAsignacionService(repo,
		&fakeProfesorReader{profesores: map[int64]*models.Profesor{1: {ID: 1, Nombre: "Rosa"}}},
		&fakeMateriaReader{materias: map[int64]*models.Materia{}},
	)

	profesores, err := service.GetAllProfesoresConMaterias(context.Background())
	require.NoError(t, err)
	require.Len(t, profesores, 1)
	require.Equal(t, int64(1), profesores[0].ID)
}
