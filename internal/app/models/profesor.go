package models

import "time"

// Profesor defines the teacher model based on the 'profesores' table
type Profesor struct {
	ID              int64     `json:"id" db:"id"`
	Nombre          string    `json:"nombre" db:"nombre"`
	Apellido        string    `json:"apellido" db:"apellido"`
	FechaNacimiento time.Time `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Direccion       string    `json:"direccion" db:"direccion"`
	Especialidad    string    `json:"especialidad" db:"especialidad"`
}
