package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"fiyo/backend/internal/auth"
	"fiyo/backend/internal/handler"
	"fiyo/backend/internal/relation"
	"fiyo/backend/internal/testutil"
	"fiyo/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// env wires the full API against an in-memory database, mirroring the
// route layout of cmd/server.
type env struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *jwt.TokenManager
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	tokens := jwt.NewTokenManager("test-access-secret", "test-refresh-secret")

	followService := relation.NewFollowService(db)
	mateService := relation.NewMateService(db)
	relationService := relation.NewRelationService(db)

	userHandler := handler.NewUserHandler(db, relationService, tokens)
	connectionHandler := handler.NewConnectionHandler(followService, mateService)
	tokenHandler := handler.NewTokenHandler(db, tokens)

	router := gin.New()
	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	authRoutes.POST("/register", userHandler.RegisterUser)
	authRoutes.POST("/login", userHandler.LoginUser)

	tokenRoutes := apiV1.Group("/tokens")
	tokenRoutes.POST("/check", tokenHandler.CheckTokens)
	tokenRoutes.POST("/revoke", tokenHandler.RevokeTokens)

	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth.AuthMiddleware(tokens))
	userRoutes.GET("", userHandler.SearchUsers)
	userRoutes.GET("/me", userHandler.GetMe)
	userRoutes.POST("/bulk", userHandler.GetBulkUsers)
	userRoutes.PUT("/update", userHandler.UpdateUser)
	userRoutes.DELETE("/delete", userHandler.DeleteUser)
	userRoutes.GET("/:username", userHandler.GetUserProfile)

	connRoutes := apiV1.Group("")
	connRoutes.Use(auth.AuthMiddleware(tokens))
	connRoutes.GET("/followers/:id", connectionHandler.GetFollowers)
	connRoutes.GET("/following/:id", connectionHandler.GetFollowing)
	connRoutes.GET("/pending/follow_requests", connectionHandler.GetPendingFollowRequests)
	connRoutes.POST("/send/follow_request", connectionHandler.SendFollowRequest)
	connRoutes.POST("/unsend/follow_request", connectionHandler.UnsendFollowRequest)
	connRoutes.POST("/accept/follow_request", connectionHandler.AcceptFollowRequest)
	connRoutes.POST("/reject/follow_request", connectionHandler.RejectFollowRequest)
	connRoutes.POST("/unfollow", connectionHandler.Unfollow)
	connRoutes.GET("/mates", connectionHandler.GetMates)
	connRoutes.GET("/pending/mate_requests", connectionHandler.GetPendingMateRequests)
	connRoutes.POST("/send/mate_request", connectionHandler.SendMateRequest)
	connRoutes.POST("/unsend/mate_request", connectionHandler.UnsendMateRequest)
	connRoutes.POST("/accept/mate_request", connectionHandler.AcceptMateRequest)
	connRoutes.POST("/reject/mate_request", connectionHandler.RejectMateRequest)
	connRoutes.POST("/remove/mate", connectionHandler.RemoveMate)

	return &env{router: router, db: db, tokens: tokens}
}

// accessToken mints a valid access token for the given user.
func (e *env) accessToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := e.tokens.GenerateAccessToken(jwt.TokenPayload{UserID: userID, DeviceID: "test-device"})
	require.NoError(t, err)
	return token
}

// do performs a request as the given user (0 = unauthenticated).
func (e *env) do(t *testing.T, method, path string, body interface{}, userID uint) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", e.accessToken(t, userID)))
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// envelope is the response wrapper with the data left raw for per-test decoding.
type envelope struct {
	Status  int             `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
