package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/app/services"
	"github.com/MiiguelHG/escolar-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// MateriaController handles subject operations
type MateriaController struct {
	materiaService *services.MateriaService
}

// NewMateriaController creates a new MateriaController
func NewMateriaController(materiaService *services.MateriaService) *MateriaController {
	return &MateriaController{
		materiaService: materiaService,
	}
}

// CreateMateria handles subject creation
func (c *MateriaController) CreateMateria(ctx *gin.Context) {
	var req dto.CreateMateriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materia, err := c.materiaService.CreateMateria(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      materia,
		Timestamp: time.Now(),
	})
}

// GetMateriaByID retrieves a subject by ID
func (c *MateriaController) GetMateriaByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia ID")
		errorDetail = errorDetail.WithDetails("Materia ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materia, err := c.materiaService.GetMateria(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      materia,
		Timestamp: time.Now(),
	})
}

// GetAllMaterias retrieves all subjects
func (c *MateriaController) GetAllMaterias(ctx *gin.Context) {
	materias, err := c.materiaService.GetAllMaterias(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      materias,
		Timestamp: time.Now(),
	})
}

// UpdateMateria handles partial subject updates
func (c *MateriaController) UpdateMateria(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia ID")
		errorDetail = errorDetail.WithDetails("Materia ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateMateriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materia, err := c.materiaService.UpdateMateria(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      materia,
		Timestamp: time.Now(),
	})
}

// DeleteMateria removes a subject and every assignment and enrollment
// referencing it
func (c *MateriaController) DeleteMateria(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia ID")
		errorDetail = errorDetail.WithDetails("Materia ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.materiaService.DeleteMateria(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
