package models

import "time"

// Alumno defines the student model based on the 'alumnos' table. Each alumno
// owns exactly one photo object in storage, referenced by URL.
type Alumno struct {
	ID              int64     `json:"id" db:"id"`
	Nombre          string    `json:"nombre" db:"nombre"`
	Apellido        string    `json:"apellido" db:"apellido"`
	FechaNacimiento time.Time `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	Direccion       string    `json:"direccion" db:"direccion"`
	Foto            string    `json:"foto" db:"foto"`
}
