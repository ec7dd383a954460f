package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/onelife-dev/one-backend/db"
	"github.com/onelife-dev/one-backend/internal/auth"
	"github.com/onelife-dev/one-backend/internal/models"
	"github.com/onelife-dev/one-backend/internal/types"
	"github.com/onelife-dev/one-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID          uint           `json:"id"`
	Username    string         `json:"username"`
	Nombre      string         `json:"nombre"`
	Email       string         `json:"email"`
	Streak      int            `json:"streak"`
	EnergyLevel int            `json:"energy_level"`
	Preferences datatypes.JSON `json:"preferences,omitempty"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

func userResponse(user models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Nombre:      user.Nombre,
		Email:       user.Email,
		Streak:      user.Streak,
		EnergyLevel: user.EnergyLevel,
		Preferences: user.Preferences,
	}
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func CreateUser(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// The frontend registers with the email as the username.
	if req.Username == "" {
		req.Username = req.Email
	}

	var existing models.User

	err := db.DB.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email or username already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		EnergyLevel:  100,
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setSessionCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusCreated, gin.H{"user": userResponse(newUser)})
}

func LoginUser(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identifier := strings.ToLower(strings.TrimSpace(req.Email))
	if identifier == "" {
		identifier = strings.TrimSpace(req.Username)
	}

	if identifier == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "email or username is required"})
		return
	}

	var user models.User

	err := db.DB.Where("email = ? OR username = ?", identifier, identifier).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := touchLoginStreak(&user); err != nil {
		log.Printf("Failed to update login streak: %v", err)
	}

	token, err := auth.GenerateJWT(user.ID, user.Email)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	setSessionCookie(ctx, token, 60*60*24*7)

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// touchLoginStreak advances the consecutive-day counter: same day keeps it,
// the day after the last login increments it, anything else resets to 1.
func touchLoginStreak(user *models.User) error {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if user.LastLoginStreak != nil {
		last := *user.LastLoginStreak
		last = time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)

		switch {
		case last.Equal(today):
			return nil
		case today.Sub(last) == 24*time.Hour:
			user.Streak++
		default:
			user.Streak = 1
		}
	} else {
		user.Streak = 1
	}

	user.LastLoginStreak = &today

	return db.DB.Model(user).Updates(map[string]interface{}{
		"streak":            user.Streak,
		"last_login_streak": today,
	}).Error
}

func LogoutUser(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// Streak stays reachable without a session and answers with the defaults for
// anonymous callers, matching what onboarding frontends expect.
func Streak(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusOK, gin.H{"streak": 0, "energy": 100})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"streak": user.Streak, "energy": user.EnergyLevel})
}

// ListUsers is the user directory. Closed unless the caller is authenticated
// or the OPEN_LISTINGS policy flag is set.
func ListUsers(ctx *gin.Context) {
	if _, err := utils.GetCurrentUser(ctx); err != nil && !types.OpenListings() {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var users []models.User

	if err := db.DB.Find(&users).Error; err != nil {
		log.Printf("Failed to list users: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]UserResponse, 0, len(users))

	for _, user := range users {
		// Directory rows stay slim; no preferences.
		response = append(response, UserResponse{
			ID:          user.ID,
			Username:    user.Username,
			Nombre:      user.Nombre,
			Email:       user.Email,
			Streak:      user.Streak,
			EnergyLevel: user.EnergyLevel,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
