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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GastoRequest struct {
	ID          types.FlexID     `json:"id"`
	Descripcion *string          `json:"descripcion"`
	Categoria   *string          `json:"categoria"`
	Fecha       *types.DateOnly  `json:"fecha"`
	Monto       *decimal.Decimal `json:"monto"`
	Espacio     *string          `json:"espacio"`
}

type GastoResponse struct {
	ID            string          `json:"id"`
	Descripcion   string          `json:"descripcion"`
	Categoria     string          `json:"categoria"`
	Fecha         string          `json:"fecha"`
	Monto         decimal.Decimal `json:"monto"`
	Espacio       string          `json:"espacio"`
	EspacioNombre string          `json:"espacio_nombre"`
	OwnerEmail    string          `json:"owner_email"`
	Version       int             `json:"version"`
}

func gastoResponse(gasto models.Gasto, spaceName, ownerEmail string) GastoResponse {
	return GastoResponse{
		ID:            gasto.ID,
		Descripcion:   gasto.Descripcion,
		Categoria:     gasto.Categoria,
		Fecha:         gasto.Fecha.Format("2006-01-02"),
		Monto:         gasto.Monto,
		Espacio:       spaceName,
		EspacioNombre: spaceName,
		OwnerEmail:    ownerEmail,
		Version:       gasto.Version,
	}
}

func ListGastos(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var gastos []models.Gasto

	if err := db.DB.Preload("Space").Where("owner_id = ?", currentUser.ID).Find(&gastos).Error; err != nil {
		log.Printf("Failed to list gastos: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gastos"})
		return
	}

	response := make([]GastoResponse, 0, len(gastos))

	for _, gasto := range gastos {
		response = append(response, gastoResponse(gasto, gasto.Space.Name, currentUser.Email))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateGasto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req GastoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Descripcion == nil || *req.Descripcion == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "descripcion is required"})
		return
	}

	if req.Fecha == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "fecha is required"})
		return
	}

	if req.Monto == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "monto is required"})
		return
	}

	id := string(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	var gasto models.Gasto
	var space models.Space

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		space, err = services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, services.SpaceName(req.Espacio, services.DefaultSpaceName))

		if err != nil {
			return err
		}

		gasto = models.Gasto{
			ID:          id,
			OwnerID:     currentUser.ID,
			SpaceID:     space.ID,
			Descripcion: *req.Descripcion,
			Fecha:       req.Fecha.Time,
			Monto:       *req.Monto,
			SyncFields:  models.SyncFields{Version: 1},
		}

		if req.Categoria != nil {
			gasto.Categoria = *req.Categoria
		}

		return tx.Create(&gasto).Error
	})

	if err != nil {
		log.Printf("Failed to create gasto: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gasto"})
		return
	}

	ctx.JSON(http.StatusCreated, gastoResponse(gasto, space.Name, currentUser.Email))
}

func GetGasto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var gasto models.Gasto
	gastoID := ctx.Param("gasto_id")

	if err := db.DB.Preload("Space").Where("id = ? AND owner_id = ?", gastoID, currentUser.ID).First(&gasto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Gasto not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gasto"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gastoResponse(gasto, gasto.Space.Name, currentUser.Email))
}

func UpdateGasto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req GastoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var gasto models.Gasto
	gastoID := ctx.Param("gasto_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", gastoID, currentUser.ID).First(&gasto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Gasto not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gasto"})
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
			gasto.SpaceID = space.ID
			spaceName = space.Name
		}

		if req.Descripcion != nil {
			gasto.Descripcion = *req.Descripcion
		}

		if req.Categoria != nil {
			gasto.Categoria = *req.Categoria
		}

		if req.Fecha != nil {
			gasto.Fecha = req.Fecha.Time
		}

		if req.Monto != nil {
			gasto.Monto = *req.Monto
		}

		gasto.Version++

		return tx.Save(&gasto).Error
	})

	if err != nil {
		log.Printf("Failed to update gasto: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gasto"})
		return
	}

	if spaceName == "" {
		var space models.Space
		if err := db.DB.First(&space, "id = ?", gasto.SpaceID).Error; err == nil {
			spaceName = space.Name
		}
	}

	ctx.JSON(http.StatusOK, gastoResponse(gasto, spaceName, currentUser.Email))
}

func DeleteGasto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var gasto models.Gasto
	gastoID := ctx.Param("gasto_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", gastoID, currentUser.ID).First(&gasto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Gasto not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gasto"})
		}
		return
	}

	if err := db.DB.Delete(&gasto).Error; err != nil {
		log.Printf("Failed to delete gasto: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete gasto"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

type PresupuestoRequest struct {
	ID      types.FlexID     `json:"id"`
	Mes     *int             `json:"mes"`
	Anio    *int             `json:"anio"`
	Monto   *decimal.Decimal `json:"monto"`
	Espacio *string          `json:"espacio"`
}

type PresupuestoResponse struct {
	ID            string          `json:"id"`
	Mes           int             `json:"mes"`
	Anio          int             `json:"anio"`
	Monto         decimal.Decimal `json:"monto"`
	Espacio       string          `json:"espacio"`
	EspacioNombre string          `json:"espacio_nombre"`
	OwnerEmail    string          `json:"owner_email"`
	Version       int             `json:"version"`
}

func presupuestoResponse(presupuesto models.Presupuesto, spaceName, ownerEmail string) PresupuestoResponse {
	return PresupuestoResponse{
		ID:            presupuesto.ID,
		Mes:           presupuesto.Mes,
		Anio:          presupuesto.Anio,
		Monto:         presupuesto.Monto,
		Espacio:       spaceName,
		EspacioNombre: spaceName,
		OwnerEmail:    ownerEmail,
		Version:       presupuesto.Version,
	}
}

func ListPresupuestos(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var presupuestos []models.Presupuesto

	if err := db.DB.Preload("Space").Where("owner_id = ?", currentUser.ID).Find(&presupuestos).Error; err != nil {
		log.Printf("Failed to list presupuestos: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve presupuestos"})
		return
	}

	response := make([]PresupuestoResponse, 0, len(presupuestos))

	for _, presupuesto := range presupuestos {
		response = append(response, presupuestoResponse(presupuesto, presupuesto.Space.Name, currentUser.Email))
	}

	ctx.JSON(http.StatusOK, response)
}

// CreatePresupuesto upserts: a second budget for the same
// (owner, space, mes, anio) replaces the amount instead of duplicating the
// period.
func CreatePresupuesto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PresupuestoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Mes == nil || req.Anio == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "mes and anio are required"})
		return
	}

	if req.Monto == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "monto is required"})
		return
	}

	var presupuesto models.Presupuesto
	var space models.Space
	updated := false

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		space, err = services.ResolveSpace(ctx.Request.Context(), tx, currentUser.ID, services.SpaceName(req.Espacio, services.DefaultSpaceName))

		if err != nil {
			return err
		}

		err := tx.Where("owner_id = ? AND space_id = ? AND mes = ? AND anio = ?",
			currentUser.ID, space.ID, *req.Mes, *req.Anio).First(&presupuesto).Error

		if err == nil {
			presupuesto.Monto = *req.Monto
			presupuesto.Version++
			updated = true
			return tx.Save(&presupuesto).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id := string(req.ID)
		if id == "" {
			id = uuid.NewString()
		}

		presupuesto = models.Presupuesto{
			ID:         id,
			OwnerID:    currentUser.ID,
			SpaceID:    space.ID,
			Mes:        *req.Mes,
			Anio:       *req.Anio,
			Monto:      *req.Monto,
			SyncFields: models.SyncFields{Version: 1},
		}

		return tx.Create(&presupuesto).Error
	})

	if err != nil {
		log.Printf("Failed to create presupuesto: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create presupuesto"})
		return
	}

	status := http.StatusCreated
	if updated {
		status = http.StatusOK
	}

	ctx.JSON(status, presupuestoResponse(presupuesto, space.Name, currentUser.Email))
}

func GetPresupuesto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var presupuesto models.Presupuesto
	presupuestoID := ctx.Param("presupuesto_id")

	if err := db.DB.Preload("Space").Where("id = ? AND owner_id = ?", presupuestoID, currentUser.ID).First(&presupuesto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Presupuesto not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve presupuesto"})
		}
		return
	}

	ctx.JSON(http.StatusOK, presupuestoResponse(presupuesto, presupuesto.Space.Name, currentUser.Email))
}

func UpdatePresupuesto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PresupuestoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var presupuesto models.Presupuesto
	presupuestoID := ctx.Param("presupuesto_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", presupuestoID, currentUser.ID).First(&presupuesto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Presupuesto not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve presupuesto"})
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
			presupuesto.SpaceID = space.ID
			spaceName = space.Name
		}

		if req.Mes != nil {
			presupuesto.Mes = *req.Mes
		}

		if req.Anio != nil {
			presupuesto.Anio = *req.Anio
		}

		if req.Monto != nil {
			presupuesto.Monto = *req.Monto
		}

		presupuesto.Version++

		return tx.Save(&presupuesto).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "mes/anio: a budget for that period already exists"})
			return
		}
		log.Printf("Failed to update presupuesto: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update presupuesto"})
		return
	}

	if spaceName == "" {
		var space models.Space
		if err := db.DB.First(&space, "id = ?", presupuesto.SpaceID).Error; err == nil {
			spaceName = space.Name
		}
	}

	ctx.JSON(http.StatusOK, presupuestoResponse(presupuesto, spaceName, currentUser.Email))
}

func DeletePresupuesto(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var presupuesto models.Presupuesto
	presupuestoID := ctx.Param("presupuesto_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", presupuestoID, currentUser.ID).First(&presupuesto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Presupuesto not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve presupuesto"})
		}
		return
	}

	if err := db.DB.Delete(&presupuesto).Error; err != nil {
		log.Printf("Failed to delete presupuesto: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete presupuesto"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
