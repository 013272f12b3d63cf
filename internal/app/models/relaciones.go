package models

// Inscripcion defines a student's registration in a subject, based on the
// 'alumnos_materias' table. Calificacion is NULL until a grade is set.
type Inscripcion struct {
	ID           int64    `json:"id" db:"id"`
	AlumnoID     int64    `json:"alumno_id" db:"alumno_id"`
	MateriaID    int64    `json:"materia_id" db:"materia_id"`
	Calificacion *float64 `json:"calificacion,omitempty" db:"calificacion"`
}

// CalificacionMateria pairs a grade with the subject it was earned in
type CalificacionMateria struct {
	Materia      Materia `json:"materia"`
	Calificacion float64 `json:"calificacion"`
}

// Asignacion defines the exclusive binding of a subject to one teacher, based
// on the 'materias_asignadas' table. A materia_id may appear at most once
// across the whole table (unique index).
type Asignacion struct {
	ID         int64 `json:"id" db:"id"`
	ProfesorID int64 `json:"profesor_id" db:"profesor_id"`
	MateriaID  int64 `json:"materia_id" db:"materia_id"`
}
