package routes

import (
	"net/http"

	"github.com/MiiguelHG/escolar-api/internal/app/controllers"
	"github.com/MiiguelHG/escolar-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	alumnoController *controllers.AlumnoController,
	profesorController *controllers.ProfesorController,
	materiaController *controllers.MateriaController,
	asignacionController *controllers.AsignacionController,
	inscripcionController *controllers.InscripcionController,
	authMiddleware *middleware.AuthMiddleware,
	uploadsPath string,
) {
	// --- Public routes ---
	router.POST("/token", authController.Token)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Stored photos are served straight from disk.
	router.Static("/uploads", uploadsPath)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/", authController.Root)

		alumnos := authenticated.Group("/alumno")
		{
			alumnos.POST("", alumnoController.CreateAlumno)
			alumnos.GET("", alumnoController.GetAllAlumnos)
			alumnos.GET("/:id", alumnoController.GetAlumnoByID)
			alumnos.PUT("/:id", alumnoController.UpdateAlumno)
			alumnos.DELETE("/:id", alumnoController.DeleteAlumno)
		}

		profesores := authenticated.Group("/profesor")
		{
			profesores.POST("", profesorController.CreateProfesor)
			profesores.GET("", profesorController.GetAllProfesores)
			profesores.GET("/:id", profesorController.GetProfesorByID)
			profesores.PUT("/:id", profesorController.UpdateProfesor)
			profesores.DELETE("/:id", profesorController.DeleteProfesor)
		}

		materias := authenticated.Group("/materia")
		{
			materias.POST("", materiaController.CreateMateria)
			materias.GET("", materiaController.GetAllMaterias)
			materias.GET("/:id", materiaController.GetMateriaByID)
			materias.PUT("/:id", materiaController.UpdateMateria)
			materias.DELETE("/:id", materiaController.DeleteMateria)
		}

		// Enrollments and their subject-with-students projections.
		materiaAlumno := authenticated.Group("/materia_alumno")
		{
			materiaAlumno.POST("", inscripcionController.Enroll)
			materiaAlumno.GET("", inscripcionController.GetAllMateriasConAlumnos)
			materiaAlumno.GET("/:materia_id", inscripcionController.GetMateriaConAlumnos)
		}

		calificaciones := authenticated.Group("/calificaciones")
		{
			calificaciones.PUT("/:alumno_id/materia/:materia_id", inscripcionController.SetCalificacion)
			calificaciones.GET("", inscripcionController.GetAllAlumnosConCalificaciones)
			calificaciones.GET("/:alumno_id", inscripcionController.GetAlumnoConCalificaciones)
		}

		profesorMateria := authenticated.Group("/profesor_materia")
		{
			profesorMateria.PUT("/:profesor_id", asignacionController.AssignMateria)
			profesorMateria.GET("", asignacionController.GetAllProfesoresConMaterias)
			profesorMateria.GET("/:profesor_id", asignacionController.GetProfesorConMaterias)
		}
	}
}
