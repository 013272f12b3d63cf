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

// AsignacionController handles the teacher-subject assignment endpoints
type AsignacionController struct {
	asignacionService *services.AsignacionService
}

// NewAsignacionController creates a new AsignacionController
func NewAsignacionController(asignacionService *services.AsignacionService) *AsignacionController {
	return &AsignacionController{
		asignacionService: asignacionService,
	}
}

// AssignMateria adds a subject to a teacher's assignment set. Subjects
// already owned by another teacher are rejected with a conflict.
func (c *AsignacionController) AssignMateria(ctx *gin.Context) {
	profesorID, err := strconv.ParseInt(ctx.Param("profesor_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profesor ID")
		errorDetail = errorDetail.WithDetails("Profesor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.AssignMateriaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid asignacion data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profesor, err := c.asignacionService.AssignMateria(ctx, profesorID, req.MateriaID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profesor,
		Timestamp: time.Now(),
	})
}

// GetProfesorConMaterias retrieves a teacher with its assigned subjects
func (c *AsignacionController) GetProfesorConMaterias(ctx *gin.Context) {
	profesorID, err := strconv.ParseInt(ctx.Param("profesor_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profesor ID")
		errorDetail = errorDetail.WithDetails("Profesor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profesor, err := c.asignacionService.GetProfesorConMaterias(ctx, profesorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profesor,
		Timestamp: time.Now(),
	})
}

// GetAllProfesoresConMaterias retrieves every teacher with its assigned
// subjects
func (c *AsignacionController) GetAllProfesoresConMaterias(ctx *gin.Context) {
	profesores, err := c.asignacionService.GetAllProfesoresConMaterias(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profesores,
		Timestamp: time.Now(),
	})
}
