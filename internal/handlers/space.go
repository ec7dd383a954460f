package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/onelife-dev/one-backend/db"
	"github.com/onelife-dev/one-backend/internal/models"
	"github.com/onelife-dev/one-backend/internal/services"
	"github.com/onelife-dev/one-backend/internal/types"
	"github.com/onelife-dev/one-backend/internal/utils"
	"gorm.io/gorm"
)

type SpaceRequest struct {
	ID    types.FlexID `json:"id"`
	Name  *string      `json:"name"`
	Color *string      `json:"color"`
}

type SpaceResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Version    int    `json:"version"`
	Deleted    bool   `json:"deleted"`
	OwnerEmail string `json:"owner_email"`
}

func spaceResponse(space models.Space, ownerEmail string) SpaceResponse {
	return SpaceResponse{
		ID:         space.ID,
		Name:       space.Name,
		Color:      space.Color,
		Version:    space.Version,
		Deleted:    space.Deleted,
		OwnerEmail: ownerEmail,
	}
}

// ListSpaces is owner-scoped. Anonymous callers are rejected unless the
// OPEN_LISTINGS flag is set, in which case they get an empty list rather
// than anyone else's rows.
func ListSpaces(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		if types.OpenListings() {
			ctx.JSON(http.StatusOK, []SpaceResponse{})
			return
		}
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var spaces []models.Space

	if err := db.DB.Where("owner_id = ?", currentUser.ID).Find(&spaces).Error; err != nil {
		log.Printf("Failed to list spaces: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spaces"})
		return
	}

	response := make([]SpaceResponse, 0, len(spaces))

	for _, space := range spaces {
		response = append(response, spaceResponse(space, currentUser.Email))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateSpace(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SpaceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == nil || *req.Name == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	// Creating a space by name is the same get-or-create the resources use,
	// so posting an existing name never duplicates it.
	space, err := services.ResolveSpace(ctx.Request.Context(), db.DB, currentUser.ID, *req.Name)

	if err != nil {
		log.Printf("Failed to resolve space: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create space"})
		return
	}

	if req.Color != nil && *req.Color != space.Color {
		space.Color = *req.Color
		space.Version++
		if err := db.DB.Model(&space).Updates(map[string]interface{}{
			"color":   space.Color,
			"version": space.Version,
		}).Error; err != nil {
			log.Printf("Failed to update space color: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create space"})
			return
		}
	}

	ctx.JSON(http.StatusCreated, spaceResponse(space, currentUser.Email))
}

func UpdateSpace(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SpaceRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var space models.Space
	spaceID := ctx.Param("space_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", spaceID, currentUser.ID).First(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Space not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve space"})
		}
		return
	}

	if req.Name != nil && *req.Name != "" {
		space.Name = *req.Name
	}

	if req.Color != nil {
		space.Color = *req.Color
	}

	space.Version++

	if err := db.DB.Save(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "name: a space with that name already exists"})
			return
		}
		log.Printf("Failed to update space: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update space"})
		return
	}

	ctx.JSON(http.StatusOK, spaceResponse(space, currentUser.Email))
}

func DeleteSpace(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var space models.Space
	spaceID := ctx.Param("space_id")

	if err := db.DB.Where("id = ? AND owner_id = ?", spaceID, currentUser.ID).First(&space).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Space not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve space"})
		}
		return
	}

	if err := db.DB.Delete(&space).Error; err != nil {
		log.Printf("Failed to delete space: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete space"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
