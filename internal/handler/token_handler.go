package handler

import (
	"errors"
	"net/http"

	"fiyo/backend/internal/models"
	"fiyo/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Token headers, named after the client contract: access token, refresh
// token and device id.
const (
	HeaderAccessToken  = "fiyoat"
	HeaderRefreshToken = "fiyort"
	HeaderDeviceID     = "fiyodid"
)

// TokenHandler covers token validation, rotation and revocation.
type TokenHandler struct {
	db     *gorm.DB
	tokens *jwt.TokenManager
}

// NewTokenHandler creates a TokenHandler.
func NewTokenHandler(db *gorm.DB, tokens *jwt.TokenManager) *TokenHandler {
	return &TokenHandler{db: db, tokens: tokens}
}

// RotatedTokens is returned when an expired access token gets refreshed.
type RotatedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CheckTokens godoc
// @Summary      Validate and rotate tokens
// @Description  Verifies the access/refresh token pair. An expired access token is rotated together with the refresh token when the refresh token is still valid and stored for the user.
// @Tags         tokens
// @Produce      json
// @Param        fiyoat   header  string  true   "Access token"
// @Param        fiyort   header  string  true   "Refresh token"
// @Param        fiyodid  header  string  false  "Device ID"
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  ErrorResponse "Tokens missing or invalid"
// @Router       /tokens/check [post]
func (h *TokenHandler) CheckTokens(c *gin.Context) {
	accessToken := c.GetHeader(HeaderAccessToken)
	refreshToken := c.GetHeader(HeaderRefreshToken)
	if accessToken == "" || refreshToken == "" {
		respond(c, http.StatusUnauthorized, nil, "Tokens missing.")
		return
	}

	payload, err := h.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		respond(c, http.StatusUnauthorized, nil, "Invalid or expired refresh token.")
		return
	}

	// When the client sends its device id it must be the one the tokens
	// were issued to.
	if deviceID := c.GetHeader(HeaderDeviceID); deviceID != "" && deviceID != payload.DeviceID {
		respond(c, http.StatusUnauthorized, nil, "Tokens do not belong to this device.")
		return
	}

	// The refresh token must still be the one bound to the account.
	var user models.User
	err = h.db.Where("id = ? AND refresh_token = ?", payload.UserID, refreshToken).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond(c, http.StatusUnauthorized, nil, "Invalid or expired refresh token.")
			return
		}
		respond(c, http.StatusInternalServerError, nil, "Failed to verify refresh token.")
		return
	}

	_, err = h.tokens.ParseAccessToken(accessToken)
	if err == nil {
		respond(c, http.StatusOK, nil, "Tokens are valid.")
		return
	}
	if !errors.Is(err, jwt.ErrExpired) {
		respond(c, http.StatusUnauthorized, nil, "Invalid access token.")
		return
	}

	rotated, err := h.rotate(&user, payload.DeviceID)
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to rotate tokens.")
		return
	}
	respond(c, http.StatusOK, rotated, "Tokens were refreshed.")
}

// RevokeTokens godoc
// @Summary      Revoke the caller's tokens
// @Description  Clears the stored refresh token so neither token of the pair can be used again.
// @Tags         tokens
// @Produce      json
// @Param        fiyort  header  string  true  "Refresh token"
// @Success      200  {object}  APIResponse
// @Failure      401  {object}  ErrorResponse "Refresh token missing or invalid"
// @Router       /tokens/revoke [post]
func (h *TokenHandler) RevokeTokens(c *gin.Context) {
	refreshToken := c.GetHeader(HeaderRefreshToken)
	if refreshToken == "" {
		respond(c, http.StatusUnauthorized, nil, "Refresh token is missing.")
		return
	}

	payload, err := h.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		respond(c, http.StatusUnauthorized, nil, "Failed to revoke tokens.")
		return
	}

	err = h.db.Model(&models.User{}).Where("id = ?", payload.UserID).
		Update("refresh_token", "").Error
	if err != nil {
		respond(c, http.StatusInternalServerError, nil, "Failed to revoke tokens.")
		return
	}
	respond(c, http.StatusOK, nil, "Tokens revoked successfully.")
}

func (h *TokenHandler) rotate(user *models.User, deviceID string) (RotatedTokens, error) {
	payload := jwt.TokenPayload{UserID: user.ID, DeviceID: deviceID}

	newRefresh, err := h.tokens.GenerateRefreshToken(payload)
	if err != nil {
		return RotatedTokens{}, err
	}
	newAccess, err := h.tokens.GenerateAccessToken(payload)
	if err != nil {
		return RotatedTokens{}, err
	}

	err = h.db.Model(user).Update("refresh_token", newRefresh).Error
	if err != nil {
		return RotatedTokens{}, err
	}
	return RotatedTokens{AccessToken: newAccess, RefreshToken: newRefresh}, nil
}
