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

// AlumnoController handles student operations
type AlumnoController struct {
	alumnoService *services.AlumnoService
}

// NewAlumnoController creates a new AlumnoController
func NewAlumnoController(alumnoService *services.AlumnoService) *AlumnoController {
	return &AlumnoController{
		alumnoService: alumnoService,
	}
}

// CreateAlumno handles multipart student creation. The photo file is
// mandatory and travels in the "foto" form field.
func (c *AlumnoController) CreateAlumno(ctx *gin.Context) {
	var req dto.CreateAlumnoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumno data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	photo, err := ctx.FormFile("foto")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing alumno photo")
		errorDetail = errorDetail.WithField("foto")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	alumno, err := c.alumnoService.CreateAlumno(ctx, &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      alumno,
		Timestamp: time.Now(),
	})
}

// GetAlumnoByID retrieves a student by ID
func (c *AlumnoController) GetAlumnoByID(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumno ID")
		errorDetail = errorDetail.WithDetails("Alumno ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	alumno, err := c.alumnoService.GetAlumno(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      alumno,
		Timestamp: time.Now(),
	})
}

// GetAllAlumnos retrieves all students
func (c *AlumnoController) GetAllAlumnos(ctx *gin.Context) {
	alumnos, err := c.alumnoService.GetAllAlumnos(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      alumnos,
		Timestamp: time.Now(),
	})
}

// UpdateAlumno handles multipart partial updates. Only form fields present in
// the request overwrite stored values; a "foto" file, when present, replaces
// the stored photo.
func (c *AlumnoController) UpdateAlumno(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumno ID")
		errorDetail = errorDetail.WithDetails("Alumno ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UpdateAlumnoRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumno data")
		errorDetail = errorDetail.WithDetails(middleware.ValidationDetails(err))
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// An absent file is a valid partial update, so the error is ignored.
	photo, _ := ctx.FormFile("foto")

	alumno, err := c.alumnoService.UpdateAlumno(ctx, id, &req, photo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      alumno,
		Timestamp: time.Now(),
	})
}

// DeleteAlumno removes a student, its photo and its enrollments
func (c *AlumnoController) DeleteAlumno(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid alumno ID")
		errorDetail = errorDetail.WithDetails("Alumno ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.alumnoService.DeleteAlumno(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
