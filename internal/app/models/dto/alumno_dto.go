package dto

import "time"

// CreateAlumnoRequest carries the multipart form fields for student creation.
// The photo file travels separately in the request.
type CreateAlumnoRequest struct {
	Nombre          string    `form:"nombre" binding:"required"`
	Apellido        string    `form:"apellido" binding:"required"`
	FechaNacimiento time.Time `form:"fecha_nacimiento" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Direccion       string    `form:"direccion" binding:"required"`
}

// UpdateAlumnoRequest carries the optional multipart form fields for partial
// student updates. Only fields explicitly supplied overwrite stored values.
type UpdateAlumnoRequest struct {
	Nombre          *string    `form:"nombre"`
	Apellido        *string    `form:"apellido"`
	FechaNacimiento *time.Time `form:"fecha_nacimiento" time_format:"2006-01-02T15:04:05Z07:00"`
	Direccion       *string    `form:"direccion"`
}
