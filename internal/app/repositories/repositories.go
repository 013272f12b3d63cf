package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	AlumnoRepository      *AlumnoRepository
	ProfesorRepository    *ProfesorRepository
	MateriaRepository     *MateriaRepository
	AsignacionRepository  *AsignacionRepository
	InscripcionRepository *InscripcionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		AlumnoRepository:      NewAlumnoRepository(db),
		ProfesorRepository:    NewProfesorRepository(db),
		MateriaRepository:     NewMateriaRepository(db),
		AsignacionRepository:  NewAsignacionRepository(db),
		InscripcionRepository: NewInscripcionRepository(db),
	}
}
