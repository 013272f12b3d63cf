package dto

import "time"

// CreateProfesorRequest carries the fields for teacher creation
type CreateProfesorRequest struct {
	Nombre          string    `json:"nombre" binding:"required"`
	Apellido        string    `json:"apellido" binding:"required"`
	FechaNacimiento time.Time `json:"fecha_nacimiento" binding:"required"`
	Direccion       string    `json:"direccion" binding:"required"`
	Especialidad    string    `json:"especialidad" binding:"required"`
}

// UpdateProfesorRequest carries the optional fields for partial teacher updates
type UpdateProfesorRequest struct {
	Nombre          *string    `json:"nombre"`
	Apellido        *string    `json:"apellido"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Direccion       *string    `json:"direccion"`
	Especialidad    *string    `json:"especialidad"`
}
