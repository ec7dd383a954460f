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

type ProjectRequest struct {
	ID          types.FlexID    `json:"id"`
	Titulo      *string         `json:"titulo"`
	Objetivo    *types.DateOnly `json:"objetivo"`
	Progreso    *int            `json:"progreso"`
	Color       *string         `json:"color"`
	Espacio     *string         `json:"espacio"`
	Description *string         `json:"description"`
	Etiquetas   *string         `json:"etiquetas"`
}

type ProjectResponse struct {
	ID            string  `json:"id"`
	Titulo        string  `json:"titulo"`
	Objetivo      *string `json:"objetivo"`
	Progreso      int     `json:"progreso"`
	Color         string  `json:"color"`
	Espacio       string  `json:"espacio"`
	EspacioNombre string  `json:"espacio_nombre"`
	Description   string  `json:"description"`
	Etiquetas     string  `json:"etiquetas"`
	OwnerEmail    string  `json:"owner_email"`
	Version       int     `json:"version"`
}

func projectResponse(project models.Project, spaceName, ownerEmail string) ProjectResponse {
	var objetivo *string
	if project.DueDate != nil {
		s := project.DueDate.Format("2006-01-02")
		objetivo = &s
	}

	return ProjectResponse{
		ID:            project.ID,
		Titulo:        project.Title,
		Objetivo:      objetivo,
		Progreso:      project.Progress,
		Color:         project.Color,
		Espacio:       spaceName,
		EspacioNombre: spaceName,
		Description:   project.Description,
		Etiquetas:     project.Etiquetas,
		OwnerEmail:    ownerEmail,
		Version:       project.Version,
	}
}

func ListProjects(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Preload("Space").Where("owner_id = ?", currentUser.ID).Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project, project.Space.Name, currentUser.Email))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Titulo == nil || *req.Titulo == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "titulo is required"})
		return
	}

	id := string(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	var project models.Project
	var space models.Space

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		space, err = services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, services.SpaceName(req.Espacio, services.DefaultSpaceName))

		if err != nil {
			return err
		}

		project = models.Project{
			ID:         id,
			OwnerID:    currentUser.ID,
			SpaceID:    space.ID,
			Title:      *req.Titulo,
			Color:      "#8B5CF6",
			IsActive:   true,
			SyncFields: models.SyncFields{Version: 1},
		}

		if req.Objetivo != nil {
			due := req.Objetivo.Time
			project.DueDate = &due
		}

		if req.Progreso != nil {
			project.Progress = *req.Progreso
		}

		if req.Color != nil {
			project.Color = *req.Color
		}

		if req.Description != nil {
			project.Description = *req.Description
		}

		if req.Etiquetas != nil {
			project.Etiquetas = *req.Etiquetas
		}

		return tx.Create(&project).Error
	})

	if err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project, space.Name, currentUser.Email))
}

func GetProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project
	projectID := ctx.Param("project_id")

	if err := db.DB.Preload("Space").Where("id = ? AND owner_id = ?", projectID, currentUser.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project, project.Space.Name, currentUser.Email))
}

func UpdateProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project
	projectID := ctx.Param("project_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", projectID, currentUser.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
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
			project.SpaceID = space.ID
			spaceName = space.Name
		}

		if req.Titulo != nil {
			project.Title = *req.Titulo
		}

		if req.Objetivo != nil {
			due := req.Objetivo.Time
			project.DueDate = &due
		}

		if req.Progreso != nil {
			project.Progress = *req.Progreso
		}

		if req.Color != nil {
			project.Color = *req.Color
		}

		if req.Description != nil {
			project.Description = *req.Description
		}

		if req.Etiquetas != nil {
			project.Etiquetas = *req.Etiquetas
		}

		project.Version++

		return tx.Save(&project).Error
	})

	if err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	if spaceName == "" {
		var space models.Space
		if err := db.DB.First(&space, "id = ?", project.SpaceID).Error; err == nil {
			spaceName = space.Name
		}
	}

	ctx.JSON(http.StatusOK, projectResponse(project, spaceName, currentUser.Email))
}

func DeleteProject(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var project models.Project
	projectID := ctx.Param("project_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", projectID, currentUser.ID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
