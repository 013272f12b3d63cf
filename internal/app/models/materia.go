package models

// Materia defines the subject model based on the 'materias' table
type Materia struct {
	ID          int64  `json:"id" db:"id"`
	Nombre      string `json:"nombre" db:"nombre"`
	Descripcion string `json:"descripcion" db:"descripcion"`
}
