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

// InscripcionController handles enrollment and grade endpoints
type InscripcionController struct {
	inscripcionService *services.InscripcionService
}

// NewInscripcionController creates a new InscripcionController
func NewInscripcionController(inscripcionService *services.InscripcionService) *InscripcionController {
	return &InscripcionController{
		inscripcionService: inscripcionService,
	}
}

// Enroll registers a student in a subject
func (c *InscripcionController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid inscripcion data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	inscripcion, err := c.inscripcionService.Enroll(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      inscripcion,
		Timestamp: time.Now(),
	})
}

// GetMateriaConAlumnos retrieves a subject with its enrolled students
func (c *InscripcionController) GetMateriaConAlumnos(ctx *gin.Context) {
	materiaID, err := strconv.ParseInt(ctx.Param("materia_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia ID")
		errorDetail = errorDetail.WithDetails("Materia ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materia, err := c.inscripcionService.GetMateriaConAlumnos(ctx, materiaID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      materia,
		Timestamp: time.Now(),
	})
}

// GetAllMateriasConAlumnos retrieves every enrolled subject with its students
func (c *InscripcionController) GetAllMateriasConAlumnos(ctx *gin.Context) {
	materias, err := c.inscripcionService.GetAllMateriasConAlumnos(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      materias,
		Timestamp: time.Now(),
	})
}

// SetCalificacion stores a grade on an existing enrollment
func (c *InscripcionController) SetCalificacion(ctx *gin.Context) {
	alumnoID, err := strconv.ParseInt(ctx.Param("alumno_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumno ID")
		errorDetail = errorDetail.WithDetails("Alumno ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	materiaID, err := strconv.ParseInt(ctx.Param("materia_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid materia ID")
		errorDetail = errorDetail.WithDetails("Materia ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.SetCalificacionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid calificacion data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.inscripcionService.SetCalificacion(ctx, alumnoID, materiaID, *req.Calificacion); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Calificación actualizada"},
		Timestamp: time.Now(),
	})
}

// GetAlumnoConCalificaciones retrieves a student with its grades
func (c *InscripcionController) GetAlumnoConCalificaciones(ctx *gin.Context) {
	alumnoID, err := strconv.ParseInt(ctx.Param("alumno_id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumno ID")
		errorDetail = errorDetail.WithDetails("Alumno ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	alumno, err := c.inscripcionService.GetAlumnoConCalificaciones(ctx, alumnoID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      alumno,
		Timestamp: time.Now(),
	})
}

// GetAllAlumnosConCalificaciones retrieves every graded student with its
// grades
func (c *InscripcionController) GetAllAlumnosConCalificaciones(ctx *gin.Context) {
	alumnos, err := c.inscripcionService.GetAllAlumnosConCalificaciones(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      alumnos,
		Timestamp: time.Now(),
	})
}
