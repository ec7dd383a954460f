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

// TaskRequest is the wire shape: Spanish field names, flexible id, and
// pointer fields so omitted keys are left untouched on update.
type TaskRequest struct {
	ID         types.FlexID     `json:"id"`
	Titulo     *string          `json:"titulo"`
	Fecha      *types.DateOnly  `json:"fecha"`
	HoraInicio *types.ClockTime `json:"horaInicio"`
	HoraFin    *types.ClockTime `json:"horaFin"`
	Color      *string          `json:"color"`
	Espacio    *string          `json:"espacio"`
	Completada *bool            `json:"completada"`
	Notes      *string          `json:"notes"`
	Status     *string          `json:"status"`
}

type TaskResponse struct {
	ID            string  `json:"id"`
	Titulo        string  `json:"titulo"`
	Fecha         string  `json:"fecha"`
	HoraInicio    *string `json:"horaInicio"`
	HoraFin       *string `json:"horaFin"`
	Color         string  `json:"color"`
	Espacio       string  `json:"espacio"`
	EspacioNombre string  `json:"espacio_nombre"`
	Completada    bool    `json:"completada"`
	Notes         string  `json:"notes"`
	Status        string  `json:"status"`
	OwnerEmail    string  `json:"owner_email"`
	Version       int     `json:"version"`
}

func taskResponse(task models.Task, spaceName, ownerEmail string) TaskResponse {
	return TaskResponse{
		ID:            task.ID,
		Titulo:        task.Title,
		Fecha:         task.Date.Format("2006-01-02"),
		HoraInicio:    task.StartTime,
		HoraFin:       task.EndTime,
		Color:         task.Color,
		Espacio:       spaceName,
		EspacioNombre: spaceName,
		Completada:    task.Status == "done",
		Notes:         task.Notes,
		Status:        task.Status,
		OwnerEmail:    ownerEmail,
		Version:       task.Version,
	}
}

func clockString(c *types.ClockTime) *string {
	if c == nil {
		return nil
	}
	s := string(*c)
	return &s
}

// taskStatus resolves the stored status: an inbound completada boolean wins
// over a directly supplied status string.
func taskStatus(req TaskRequest, current string) string {
	status := current
	if req.Status != nil {
		status = *req.Status
	}
	if req.Completada != nil {
		if *req.Completada {
			status = "done"
		} else {
			status = "todo"
		}
	}
	return status
}

func ListTasks(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var tasks []models.Task

	if err := db.DB.Preload("Space").Where("owner_id = ?", currentUser.ID).Find(&tasks).Error; err != nil {
		log.Printf("Failed to list tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, taskResponse(task, task.Space.Name, currentUser.Email))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req TaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Titulo == nil || *req.Titulo == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "titulo is required"})
		return
	}

	if req.Fecha == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "fecha is required"})
		return
	}

	id := string(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	var task models.Task
	var space models.Space

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		space, err = services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, services.SpaceName(req.Espacio, services.DefaultSpaceName))

		if err != nil {
			return err
		}

		task = models.Task{
			ID:          id,
			OwnerID:     currentUser.ID,
			SpaceID:     space.ID,
			Title:       *req.Titulo,
			Date:        req.Fecha.Time,
			StartTime:   clockString(req.HoraInicio),
			EndTime:     clockString(req.HoraFin),
			DurationMin: 60,
			Color:       "verde",
			Status:      taskStatus(req, "todo"),
			SyncFields:  models.SyncFields{Version: 1},
		}

		if req.Color != nil {
			task.Color = *req.Color
		}

		if req.Notes != nil {
			task.Notes = *req.Notes
		}

		return tx.Create(&task).Error
	})

	if err != nil {
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, taskResponse(task, space.Name, currentUser.Email))
}

func GetTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var task models.Task
	taskID := ctx.Param("task_id")

	if err := db.DB.Preload("Space").Where("id = ? AND owner_id = ?", taskID, currentUser.ID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	ctx.JSON(http.StatusOK, taskResponse(task, task.Space.Name, currentUser.Email))
}

func UpdateTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req TaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task
	taskID := ctx.Param("task_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", taskID, currentUser.ID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	var spaceName string

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if req.Espacio != nil {
			space, err := services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, *req.Espacio)
			if err != nil {
				return err
			}
			task.SpaceID = space.ID
			spaceName = space.Name
		}

		if req.Titulo != nil {
			task.Title = *req.Titulo
		}

		if req.Fecha != nil {
			task.Date = req.Fecha.Time
		}

		if req.HoraInicio != nil {
			task.StartTime = clockString(req.HoraInicio)
		}

		if req.HoraFin != nil {
			task.EndTime = clockString(req.HoraFin)
		}

		if req.Color != nil {
			task.Color = *req.Color
		}

		if req.Notes != nil {
			task.Notes = *req.Notes
		}

		task.Status = taskStatus(req, task.Status)
		task.Version++

		return tx.Save(&task).Error
	})

	if err != nil {
		log.Printf("Failed to update task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	if spaceName == "" {
		var space models.Space
		if err := db.DB.First(&space, "id = ?", task.SpaceID).Error; err == nil {
			spaceName = space.Name
		}
	}

	ctx.JSON(http.StatusOK, taskResponse(task, spaceName, currentUser.Email))
}

func DeleteTask(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var task models.Task
	taskID := ctx.Param("task_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", taskID, currentUser.ID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	if err := db.DB.Delete(&task).Error; err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
