package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/onelife-dev/one-backend/db"
	"github.com/onelife-dev/one-backend/internal/models"
	"github.com/onelife-dev/one-backend/internal/services"
	"github.com/onelife-dev/one-backend/internal/types"
	"github.com/onelife-dev/one-backend/internal/utils"
	"gorm.io/gorm"
)

// HabitRequest carries the full-resync log mapping under "registros". A nil
// map means the key was absent and logs are left alone; an empty map is an
// authoritative "no logs".
type HabitRequest struct {
	ID              types.FlexID                      `json:"id"`
	Nombre          *string                           `json:"nombre"`
	Color           *string                           `json:"color"`
	ObjetivoSemanal *int                              `json:"objetivoSemanal"`
	Espacio         *string                           `json:"espacio"`
	Registros       map[string]services.RegistroEntry `json:"registros"`
}

type HabitResponse struct {
	ID              string                       `json:"id"`
	Nombre          string                       `json:"nombre"`
	Color           string                       `json:"color"`
	ObjetivoSemanal int                          `json:"objetivoSemanal"`
	Espacio         *string                      `json:"espacio"`
	EspacioNombre   *string                      `json:"espacio_nombre"`
	Registros       map[string]services.Registro `json:"registros"`
	OwnerEmail      string                       `json:"owner_email"`
	Version         int                          `json:"version"`
	Deleted         bool                         `json:"deleted"`
}

func habitResponse(habit models.Habit, spaceName *string, logs []models.HabitLog, ownerEmail string) HabitResponse {
	return HabitResponse{
		ID:              habit.ID,
		Nombre:          habit.Name,
		Color:           habit.Color,
		ObjetivoSemanal: habit.GoalPerWeek,
		Espacio:         spaceName,
		EspacioNombre:   spaceName,
		Registros:       services.LogsToRegistros(logs),
		OwnerEmail:      ownerEmail,
		Version:         habit.Version,
		Deleted:         habit.Deleted,
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, services.ErrInvalidRegistros)
}

func ListHabits(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var habits []models.Habit

	if err := db.DB.Preload("Space").Preload("Logs").Where("owner_id = ?", currentUser.ID).Find(&habits).Error; err != nil {
		log.Printf("Failed to list habits: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve habits"})
		return
	}

	response := make([]HabitResponse, 0, len(habits))

	for _, habit := range habits {
		var spaceName *string
		if habit.Space != nil {
			spaceName = &habit.Space.Name
		}
		response = append(response, habitResponse(habit, spaceName, habit.Logs, currentUser.Email))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateHabit(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req HabitRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Nombre == nil || *req.Nombre == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "nombre is required"})
		return
	}

	id := string(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	var habit models.Habit
	var spaceName *string

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		habit = models.Habit{
			ID:          id,
			OwnerID:     currentUser.ID,
			Name:        *req.Nombre,
			Color:       "#FFFFFF",
			GoalPerWeek: 7,
			SyncFields:  models.SyncFields{Version: 1},
		}

		// Space is optional for habits; no default bucket.
		if req.Espacio != nil && *req.Espacio != "" {
			space, err := services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, *req.Espacio)
			if err != nil {
				return err
			}
			habit.SpaceID = &space.ID
			spaceName = &space.Name
		}

		if req.Color != nil {
			habit.Color = *req.Color
		}

		if req.ObjetivoSemanal != nil {
			habit.GoalPerWeek = *req.ObjetivoSemanal
		}

		if err := tx.Create(&habit).Error; err != nil {
			return err
		}

		return services.ReconcileLogs(tx, habit.ID, req.Registros)
	})

	if err != nil {
		if isValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to create habit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create habit"})
		return
	}

	logs, err := habitLogs(habit.ID)

	if err != nil {
		log.Printf("Failed to load habit logs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve habit"})
		return
	}

	ctx.JSON(http.StatusCreated, habitResponse(habit, spaceName, logs, currentUser.Email))
}

func GetHabit(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var habit models.Habit
	habitID := ctx.Param("habit_id")

	if err := db.DB.Preload("Space").Preload("Logs").Where("id = ? AND owner_id = ?", habitID, currentUser.ID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve habit"})
		}
		return
	}

	var spaceName *string
	if habit.Space != nil {
		spaceName = &habit.Space.Name
	}

	ctx.JSON(http.StatusOK, habitResponse(habit, spaceName, habit.Logs, currentUser.Email))
}

func UpdateHabit(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req HabitRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var habit models.Habit
	habitID := ctx.Param("habit_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", habitID, currentUser.ID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve habit"})
		}
		return
	}

	var spaceName *string

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if req.Espacio != nil && *req.Espacio != "" {
			space, err := services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, *req.Espacio)
			if err != nil {
				return err
			}
			habit.SpaceID = &space.ID
			spaceName = &space.Name
		}

		if req.Nombre != nil {
			habit.Name = *req.Nombre
		}

		if req.Color != nil {
			habit.Color = *req.Color
		}

		if req.ObjetivoSemanal != nil {
			habit.GoalPerWeek = *req.ObjetivoSemanal
		}

		habit.Version++

		if err := tx.Save(&habit).Error; err != nil {
			return err
		}

		return services.ReconcileLogs(tx, habit.ID, req.Registros)
	})

	if err != nil {
		if isValidationError(err) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Failed to update habit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update habit"})
		return
	}

	if spaceName == nil && habit.SpaceID != nil {
		var space models.Space
		if err := db.DB.First(&space, "id = ?", *habit.SpaceID).Error; err == nil {
			spaceName = &space.Name
		}
	}

	logs, err := habitLogs(habit.ID)

	if err != nil {
		log.Printf("Failed to load habit logs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve habit"})
		return
	}

	ctx.JSON(http.StatusOK, habitResponse(habit, spaceName, logs, currentUser.Email))
}

func DeleteHabit(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var habit models.Habit
	habitID := ctx.Param("habit_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", habitID, currentUser.ID).First(&habit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve habit"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&habit).Error
	})

	if err != nil {
		log.Printf("Failed to delete habit: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete habit"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func habitLogs(habitID string) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	err := db.DB.Where("habit_id = ?", habitID).Find(&logs).Error
	return logs, err
}
