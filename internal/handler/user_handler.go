package handler

import (
	"errors"
	"fmt"
	"net/http"

	"fiyo/backend/internal/auth"
	"fiyo/backend/internal/models"
	"fiyo/backend/internal/relation"
	"fiyo/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler covers registration, login and profile endpoints. These are
// thin collaborators around the relation engines: the interesting state lives
// in the relation package.
type UserHandler struct {
	db        *gorm.DB
	relations *relation.RelationService
	tokens    *jwt.TokenManager
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(db *gorm.DB, relations *relation.RelationService, tokens *jwt.TokenManager) *UserHandler {
	return &UserHandler{db: db, relations: relations, tokens: tokens}
}

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username    string `json:"username" binding:"required" example:"testuser"`
	Password    string `json:"password" binding:"required,min=8" example:"password123"`
	FullName    string `json:"full_name" binding:"required" example:"Test User"`
	AccountType string `json:"account_type" binding:"required" example:"personal"`
	DeviceName  string `json:"device_name" binding:"required" example:"Pixel 8"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username   string `json:"username" binding:"required" example:"testuser"`
	Password   string `json:"password" binding:"required" example:"password123"`
	DeviceName string `json:"device_name" binding:"required" example:"Pixel 8"`
}

// TokenSet carries the credentials issued at registration and login.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	DeviceID     string `json:"device_id"`
}

// AuthResponse is the payload returned by register and login.
type AuthResponse struct {
	ID       uint     `json:"id" example:"1"`
	Username string   `json:"username" example:"testuser"`
	Avatar   string   `json:"avatar"`
	Tokens   TokenSet `json:"tokens"`
}

// ProfileResponse is a user profile with relationship context for the viewer.
type ProfileResponse struct {
	ID             uint               `json:"id" example:"1"`
	Username       string             `json:"username" example:"testuser"`
	FullName       string             `json:"full_name" example:"Test User"`
	Bio            string             `json:"bio"`
	Avatar         string             `json:"avatar"`
	Banner         string             `json:"banner"`
	FollowersCount int64              `json:"followers_count"`
	FollowingCount int64              `json:"following_count"`
	MatesCount     int64              `json:"mates_count"`
	Relation       *relation.Relation `json:"relation,omitempty"`
}

// BulkUsersInput defines the structure for a bulk user fetch.
type BulkUsersInput struct {
	UserIDs []uint `json:"user_ids" binding:"required"`
}

// UpdateUserInput defines the structure for a profile update. Only the
// fields present in the request are applied; credentials, tokens and device
// data are not updatable through this endpoint.
type UpdateUserInput struct {
	Username    *string `json:"username" example:"newname"`
	FullName    *string `json:"full_name" example:"New Name"`
	AccountType *string `json:"account_type" example:"personal"`
	Bio         *string `json:"bio"`
	Avatar      *string `json:"avatar"`
	Banner      *string `json:"banner"`
}

// endregion

// region --- Auth ---

// RegisterUser godoc
// @Summary      Register a new user
// @Description  Creates a new user and returns access/refresh tokens for the device.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body RegisterInput true "Registration Info"
// @Success      200  {object}  APIResponse{data=AuthResponse}
// @Failure      400  {object}  ErrorResponse "Username already taken"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to check username availability.")
		return
	}
	if count > 0 {
		respond(c, http.StatusBadRequest, nil, "Username is already taken.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to hash password.")
		return
	}

	user := models.User{
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: string(hashedPassword),
		AccountType:  input.AccountType,
		SignupIP:     c.ClientIP(),
		DeviceName:   input.DeviceName,
	}
	if err := h.db.Create(&user).Error; err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to create user.")
		return
	}

	tokens, err := h.issueTokens(&user)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to generate tokens.")
		return
	}

	respond(c, http.StatusOK, AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Tokens:   tokens,
	}, "User registered successfully.")
}

// LoginUser godoc
// @Summary      Log in a user
// @Description  Authenticates a user and issues a fresh token pair for the device.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  APIResponse{data=AuthResponse}
// @Failure      401  {object}  ErrorResponse "Incorrect password"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /auth/login [post]
func (h *UserHandler) LoginUser(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}

	var user models.User
	err := h.db.Where("username = ?", input.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond(c, http.StatusNotFound, nil, fmt.Sprintf("User '%s' not found.", input.Username))
			return
		}
		respond(c, http.StatusInternalServerError, nil, "Failed to look up user.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		respond(c, http.StatusUnauthorized, nil, "Incorrect password.")
		return
	}

	user.DeviceName = input.DeviceName
	tokens, err := h.issueTokens(&user)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to generate tokens.")
		return
	}

	respond(c, http.StatusOK, AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
		Tokens:   tokens,
	}, "Login successful.")
}

// issueTokens mints a fresh token pair for a new device session and persists
// the refresh token on the user row.
func (h *UserHandler) issueTokens(user *models.User) (TokenSet, error) {
	deviceID := uuid.NewString()
	payload := jwt.TokenPayload{UserID: user.ID, DeviceID: deviceID}

	refreshToken, err := h.tokens.GenerateRefreshToken(payload)
	if err != nil {
		return TokenSet{}, err
	}
	accessToken, err := h.tokens.GenerateAccessToken(payload)
	if err != nil {
		return TokenSet{}, err
	}

	user.RefreshToken = refreshToken
	user.DeviceID = deviceID
	if err := h.db.Model(user).Updates(map[string]interface{}{
		"refresh_token": refreshToken,
		"device_id":     deviceID,
		"device_name":   user.DeviceName,
	}).Error; err != nil {
		return TokenSet{}, err
	}

	return TokenSet{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		DeviceID:     deviceID,
	}, nil
}

// endregion

// region --- Profiles ---

// GetMe godoc
// @Summary      Get the caller's own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse{data=ProfileResponse}
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	callerID := auth.CallerID(c)

	var user models.User
	if err := h.db.First(&user, callerID).Error; err != nil {
		respond(c, http.StatusNotFound, nil, "User not found.")
		return
	}

	profile, err := h.buildProfile(c, user, callerID)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to build profile.")
		return
	}
	respond(c, http.StatusOK, profile, "User found successfully.")
}

// GetUserProfile godoc
// @Summary      Get a user's profile by username
// @Description  Returns the profile with follower/following/mate counts and the caller's relation to the user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  APIResponse{data=ProfileResponse}
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/{username} [get]
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	callerID := auth.CallerID(c)
	username := c.Param("username")

	var user models.User
	err := h.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond(c, http.StatusNotFound, nil, fmt.Sprintf("User '@%s' not found.", username))
			return
		}
		respond(c, http.StatusInternalServerError, nil, "Failed to look up user.")
		return
	}

	profile, err := h.buildProfile(c, user, callerID)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to build profile.")
		return
	}
	respond(c, http.StatusOK, profile, "User found successfully.")
}

// SearchUsers godoc
// @Summary      Search users
// @Description  Case-insensitive search over username and full name.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q       query  string  true   "Search query"
// @Param        limit   query  int     false  "Page size" default(20)
// @Param        offset  query  int     false  "Page offset" default(0)
// @Success      200  {object}  APIResponse{data=[]PublicUser}
// @Failure      404  {object}  ErrorResponse "No results"
// @Router       /users [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	limit, offset := pageParams(c)

	pattern := "%" + query + "%"
	var users []models.User
	err := h.db.
		Where("LOWER(username) LIKE LOWER(?) OR LOWER(full_name) LIKE LOWER(?)", pattern, pattern).
		Order("username").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to search users.")
		return
	}
	if len(users) == 0 {
		respond(c, http.StatusNotFound, []PublicUser{}, fmt.Sprintf("No results found for '%s'.", query))
		return
	}

	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, newPublicUser(u))
	}
	respond(c, http.StatusOK, out, "Search results found successfully.")
}

// GetBulkUsers godoc
// @Summary      Fetch multiple users by ID
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body BulkUsersInput true "User IDs"
// @Success      200  {object}  APIResponse{data=[]PublicUser}
// @Failure      404  {object}  ErrorResponse "Users not found"
// @Router       /users/bulk [post]
func (h *UserHandler) GetBulkUsers(c *gin.Context) {
	var input BulkUsersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, "A 'user_ids' field is required.")
		return
	}

	var users []models.User
	if err := h.db.Where("id IN ?", input.UserIDs).Find(&users).Error; err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to fetch users.")
		return
	}
	if len(users) == 0 {
		respond(c, http.StatusNotFound, []PublicUser{}, "Users not found.")
		return
	}

	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, newPublicUser(u))
	}
	respond(c, http.StatusOK, out, "Users found successfully.")
}

// UpdateUser godoc
// @Summary      Update the caller's profile
// @Description  Applies the provided profile fields. Unknown fields are ignored.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateUserInput true "Profile fields"
// @Success      200  {object}  APIResponse{data=ProfileResponse}
// @Failure      400  {object}  ErrorResponse "No updatable fields or username taken"
// @Router       /users/update [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	callerID := auth.CallerID(c)

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.Username != nil {
		var count int64
		err := h.db.Model(&models.User{}).
			Where("username = ? AND id <> ?", *input.Username, callerID).
			Count(&count).Error
		if err != nil {
			respond(c, http.StatusInternalServerError, nil, "Failed to check username availability.")
			return
		}
		if count > 0 {
			respond(c, http.StatusBadRequest, nil, "Username is already taken.")
			return
		}
		updates["username"] = *input.Username
	}
	if input.FullName != nil {
		updates["full_name"] = *input.FullName
	}
	if input.AccountType != nil {
		updates["account_type"] = *input.AccountType
	}
	if input.Bio != nil {
		updates["bio"] = *input.Bio
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Banner != nil {
		updates["banner"] = *input.Banner
	}
	if len(updates) == 0 {
		respond(c, http.StatusBadRequest, nil, "No updatable fields provided.")
		return
	}

	if err := h.db.Model(&models.User{}).Where("id = ?", callerID).Updates(updates).Error; err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to update user.")
		return
	}

	var user models.User
	if err := h.db.First(&user, callerID).Error; err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to load updated user.")
		return
	}
	profile, err := h.buildProfile(c, user, callerID)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to build profile.")
		return
	}
	respond(c, http.StatusOK, profile, "User updated successfully.")
}

// DeleteUser godoc
// @Summary      Delete the caller's account
// @Description  Removes the account together with every follow and mate edge it participates in.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /users/delete [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID := auth.CallerID(c)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Edge rows go first; not every driver enforces the FK cascade.
		err := tx.Where("follower_id = ? OR following_id = ?", callerID, callerID).
			Delete(&models.FollowEdge{}).Error
		if err != nil {
			return err
		}
		err = tx.Where("initiator_id = ? OR mate_id = ?", callerID, callerID).
			Delete(&models.MateEdge{}).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, callerID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond(c, http.StatusNotFound, nil, "User not found.")
			return
		}
		respond(c, http.StatusInternalServerError, nil, "Failed to delete user.")
		return
	}
	respond(c, http.StatusOK, nil, "User deleted successfully.")
}

func (h *UserHandler) buildProfile(c *gin.Context, user models.User, viewerID uint) (ProfileResponse, error) {
	ctx := c.Request.Context()

	followers, err := h.relations.CountFollowers(ctx, user.ID)
	if err != nil {
		return ProfileResponse{}, err
	}
	following, err := h.relations.CountFollowing(ctx, user.ID)
	if err != nil {
		return ProfileResponse{}, err
	}
	mates, err := h.relations.CountMates(ctx, user.ID)
	if err != nil {
		return ProfileResponse{}, err
	}

	profile := ProfileResponse{
		ID:             user.ID,
		Username:       user.Username,
		FullName:       user.FullName,
		Bio:            user.Bio,
		Avatar:         user.Avatar,
		Banner:         user.Banner,
		FollowersCount: followers,
		FollowingCount: following,
		MatesCount:     mates,
	}

	if viewerID != user.ID {
		rel, err := h.relations.GetRelation(ctx, viewerID, user.ID)
		if err != nil {
			return ProfileResponse{}, err
		}
		profile.Relation = &rel
	}
	return profile, nil
}

// endregion
