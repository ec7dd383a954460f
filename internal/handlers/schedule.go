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

type ClaseRequest struct {
	ID         types.FlexID     `json:"id"`
	Materia    *string          `json:"materia"`
	Profesor   *string          `json:"profesor"`
	Salon      *string          `json:"salon"`
	DiaSemana  *int             `json:"diaSemana"`
	HoraInicio *types.ClockTime `json:"horaInicio"`
	HoraFin    *types.ClockTime `json:"horaFin"`
	Color      *string          `json:"color"`
	Espacio    *string          `json:"espacio"`
}

type ClaseResponse struct {
	ID            string `json:"id"`
	Materia       string `json:"materia"`
	Profesor      string `json:"profesor"`
	Salon         string `json:"salon"`
	DiaSemana     int    `json:"diaSemana"`
	HoraInicio    string `json:"horaInicio"`
	HoraFin       string `json:"horaFin"`
	Color         string `json:"color"`
	Espacio       string `json:"espacio"`
	EspacioNombre string `json:"espacio_nombre"`
	OwnerEmail    string `json:"owner_email"`
	Version       int    `json:"version"`
}

func claseResponse(clase models.Clase, spaceName, ownerEmail string) ClaseResponse {
	return ClaseResponse{
		ID:            clase.ID,
		Materia:       clase.Materia,
		Profesor:      clase.Profesor,
		Salon:         clase.Salon,
		DiaSemana:     clase.DiaSemana,
		HoraInicio:    clase.HoraInicio,
		HoraFin:       clase.HoraFin,
		Color:         clase.Color,
		Espacio:       spaceName,
		EspacioNombre: spaceName,
		OwnerEmail:    ownerEmail,
		Version:       clase.Version,
	}
}

func ListClases(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var clases []models.Clase

	if err := db.DB.Preload("Space").Where("owner_id = ?", currentUser.ID).Find(&clases).Error; err != nil {
		log.Printf("Failed to list clases: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clases"})
		return
	}

	response := make([]ClaseResponse, 0, len(clases))

	for _, clase := range clases {
		response = append(response, claseResponse(clase, clase.Space.Name, currentUser.Email))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateClase(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ClaseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Materia == nil || *req.Materia == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "materia is required"})
		return
	}

	if req.DiaSemana == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "diaSemana is required"})
		return
	}

	if req.HoraInicio == nil || req.HoraFin == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "horaInicio and horaFin are required"})
		return
	}

	id := string(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	var clase models.Clase
	var space models.Space

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Class blocks default into the school space, not the personal one.
		space, err = services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, services.SpaceName(req.Espacio, services.DefaultScheduleSpace))

		if err != nil {
			return err
		}

		clase = models.Clase{
			ID:         id,
			OwnerID:    currentUser.ID,
			SpaceID:    space.ID,
			Materia:    *req.Materia,
			DiaSemana:  *req.DiaSemana,
			HoraInicio: string(*req.HoraInicio),
			HoraFin:    string(*req.HoraFin),
			Color:      "#429155",
			SyncFields: models.SyncFields{Version: 1},
		}

		if req.Profesor != nil {
			clase.Profesor = *req.Profesor
		}

		if req.Salon != nil {
			clase.Salon = *req.Salon
		}

		if req.Color != nil {
			clase.Color = *req.Color
		}

		return tx.Create(&clase).Error
	})

	if err != nil {
		log.Printf("Failed to create clase: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create clase"})
		return
	}

	ctx.JSON(http.StatusCreated, claseResponse(clase, space.Name, currentUser.Email))
}

func GetClase(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var clase models.Clase
	claseID := ctx.Param("clase_id")

	if err := db.DB.Preload("Space").Where("id = ? AND owner_id = ?", claseID, currentUser.ID).First(&clase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Clase not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clase"})
		}
		return
	}

	ctx.JSON(http.StatusOK, claseResponse(clase, clase.Space.Name, currentUser.Email))
}

func UpdateClase(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req ClaseRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var clase models.Clase
	claseID := ctx.Param("clase_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", claseID, currentUser.ID).First(&clase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Clase not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clase"})
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
			clase.SpaceID = space.ID
			spaceName = space.Name
		}

		if req.Materia != nil {
			clase.Materia = *req.Materia
		}

		if req.Profesor != nil {
			clase.Profesor = *req.Profesor
		}

		if req.Salon != nil {
			clase.Salon = *req.Salon
		}

		if req.DiaSemana != nil {
			clase.DiaSemana = *req.DiaSemana
		}

		if req.HoraInicio != nil {
			clase.HoraInicio = string(*req.HoraInicio)
		}

		if req.HoraFin != nil {
			clase.HoraFin = string(*req.HoraFin)
		}

		if req.Color != nil {
			clase.Color = *req.Color
		}

		clase.Version++

		return tx.Save(&clase).Error
	})

	if err != nil {
		log.Printf("Failed to update clase: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update clase"})
		return
	}

	if spaceName == "" {
		var space models.Space
		if err := db.DB.First(&space, "id = ?", clase.SpaceID).Error; err == nil {
			spaceName = space.Name
		}
	}

	ctx.JSON(http.StatusOK, claseResponse(clase, spaceName, currentUser.Email))
}

func DeleteClase(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var clase models.Clase
	claseID := ctx.Param("clase_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", claseID, currentUser.ID).First(&clase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Clase not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clase"})
		}
		return
	}

	if err := db.DB.Delete(&clase).Error; err != nil {
		log.Printf("Failed to delete clase: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete clase"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
