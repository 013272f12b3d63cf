package dto

// CreateMateriaRequest carries the fields for subject creation
type CreateMateriaRequest struct {
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
}

// UpdateMateriaRequest carries the optional fields for partial subject updates
type UpdateMateriaRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}
