package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/onelife-dev/one-backend/internal/handlers"
	"github.com/onelife-dev/one-backend/internal/middleware"
	"github.com/onelife-dev/one-backend/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/register", handlers.CreateUser)
		api.POST("/login", handlers.LoginUser)
		api.POST("/logout", handlers.LogoutUser)
		api.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		api.GET("/streak", middleware.OptionalAuth(), handlers.Streak)

		// POST /users is a registration alias kept for older frontends.
		api.POST("/users", handlers.CreateUser)
		api.GET("/users", middleware.OptionalAuth(), handlers.ListUsers)

		api.GET("/spaces", middleware.OptionalAuth(), handlers.ListSpaces)
		spaces := api.Group("/spaces", middleware.AuthMiddleware())
		{
			spaces.POST("", handlers.CreateSpace)
			spaces.PATCH("/:space_id", handlers.UpdateSpace)
			spaces.PUT("/:space_id", handlers.UpdateSpace)
			spaces.DELETE("/:space_id", handlers.DeleteSpace)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.GET("", handlers.ListTasks)
			tasks.POST("", handlers.CreateTask)
			tasks.GET("/:task_id", handlers.GetTask)
			tasks.PATCH("/:task_id", handlers.UpdateTask)
			tasks.PUT("/:task_id", handlers.UpdateTask)
			tasks.DELETE("/:task_id", handlers.DeleteTask)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.GET("", handlers.ListProjects)
			projects.POST("", handlers.CreateProject)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.PUT("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)
		}

		habits := api.Group("/habits", middleware.AuthMiddleware())
		{
			habits.GET("", handlers.ListHabits)
			habits.POST("", handlers.CreateHabit)
			habits.GET("/:habit_id", handlers.GetHabit)
			habits.PATCH("/:habit_id", handlers.UpdateHabit)
			habits.PUT("/:habit_id", handlers.UpdateHabit)
			habits.DELETE("/:habit_id", handlers.DeleteHabit)
		}

		gastos := api.Group("/gastos", middleware.AuthMiddleware())
		{
			gastos.GET("", handlers.ListGastos)
			gastos.POST("", handlers.CreateGasto)
			gastos.GET("/:gasto_id", handlers.GetGasto)
			gastos.PATCH("/:gasto_id", handlers.UpdateGasto)
			gastos.PUT("/:gasto_id", handlers.UpdateGasto)
			gastos.DELETE("/:gasto_id", handlers.DeleteGasto)
		}

		presupuestos := api.Group("/presupuestos", middleware.AuthMiddleware())
		{
			presupuestos.GET("", handlers.ListPresupuestos)
			presupuestos.POST("", handlers.CreatePresupuesto)
			presupuestos.GET("/:presupuesto_id", handlers.GetPresupuesto)
			presupuestos.PATCH("/:presupuesto_id", handlers.UpdatePresupuesto)
			presupuestos.PUT("/:presupuesto_id", handlers.UpdatePresupuesto)
			presupuestos.DELETE("/:presupuesto_id", handlers.DeletePresupuesto)
		}

		clases := api.Group("/clases", middleware.AuthMiddleware())
		{
			clases.GET("", handlers.ListClases)
			clases.POST("", handlers.CreateClase)
			clases.GET("/:clase_id", handlers.GetClase)
			clases.PATCH("/:clase_id", handlers.UpdateClase)
			clases.PUT("/:clase_id", handlers.UpdateClase)
			clases.DELETE("/:clase_id", handlers.DeleteClase)
		}
	}

	return r
}
