package dto

import "github.com/MiiguelHG/escolar-api/internal/app/models"

// EnrollRequest represents an enrollment of a student in a subject
type EnrollRequest struct {
	AlumnoID  int64 `json:"alumno_id" binding:"required,min=1"`
	MateriaID int64 `json:"materia_id" binding:"required,min=1"`
}

// AssignMateriaRequest represents the subject to assign to a teacher
type AssignMateriaRequest struct {
	MateriaID int64 `json:"materia_id" binding:"required,min=1"`
}

// SetCalificacionRequest carries a grade in [0, 10]
type SetCalificacionRequest struct {
	Calificacion *float64 `json:"calificacion" binding:"required"`
}

// MateriaConAlumnos is the subject-with-enrolled-students projection
type MateriaConAlumnos struct {
	models.Materia
	Alumnos []models.Alumno `json:"alumnos"`
}

// ProfesorConMaterias is the teacher-with-assigned-subjects projection
type ProfesorConMaterias struct {
	models.Profesor
	Materias []models.Materia `json:"materias"`
}

// AlumnoConCalificaciones is the student-with-grades projection. Only
// enrollments whose grade has been set are included.
type AlumnoConCalificaciones struct {
	models.Alumno
	Calificaciones []models.CalificacionMateria `json:"calificaciones"`
}
