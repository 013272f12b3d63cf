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

// ProfesorController handles teacher operations
type ProfesorController struct {
	profesorService *services.ProfesorService
}

// NewProfesorController creates a new ProfesorController
func NewProfesorController(profesorService *services.ProfesorService) *ProfesorController {
	return &ProfesorController{
		profesorService: profesorService,
	}
}

// CreateProfesor handles teacher creation
func (c *ProfesorController) CreateProfesor(ctx *gin.Context) {
	var req dto.CreateProfesorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profesor data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profesor, err := c.profesorService.CreateProfesor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      profesor,
		Timestamp: time.Now(),
	})
}

// GetProfesorByID retrieves a teacher by ID
func (c *ProfesorController) GetProfesorByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profesor ID")
		errorDetail = errorDetail.WithDetails("Profesor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profesor, err := c.profesorService.GetProfesor(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profesor,
		Timestamp: time.Now(),
	})
}

// GetAllProfesores retrieves all teachers
func (c *ProfesorController) GetAllProfesores(ctx *gin.Context) {
	profesores, err := c.profesorService.GetAllProfesores(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profesores,
		Timestamp: time.Now(),
	})
}

// UpdateProfesor handles partial teacher updates
func (c *ProfesorController) UpdateProfesor(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profesor ID")
		errorDetail = errorDetail.WithDetails("Profesor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateProfesorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profesor data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	profesor, err := c.profesorService.UpdateProfesor(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profesor,
		Timestamp: time.Now(),
	})
}

// DeleteProfesor removes a teacher together with its assignment record
func (c *ProfesorController) DeleteProfesor(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid profesor ID")
		errorDetail = errorDetail.WithDetails("Profesor ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.profesorService.DeleteProfesor(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
