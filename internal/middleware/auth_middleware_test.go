package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"family-gifts/internal/model"
	"family-gifts/internal/repository"
	"family-gifts/pkg/config"
	"family-gifts/pkg/db"
	"family-gifts/pkg/logger"
	"family-gifts/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthTest(t *testing.T) *model.User {
	t.Helper()
	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if logger.L == nil {
		if err := logger.InitLogger(config.GlobalConfig.Log.Level, config.GlobalConfig.Log.ProductionMode); err != nil {
			t.Logf("Logger init failed (using default): %v", err)
		}
	}
	if err := db.InitDB(); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	cleanup := func() {
		db.DB.Where("email = ?", "authmw@example.com").Delete(&model.User{})
	}
	cleanup()
	t.Cleanup(cleanup)

	user := &model.User{
		Name:     "authmw",
		Email:    "authmw@example.com",
		Password: "$2a$10$testhashtesthashtesthashte",
	}
	require.NoError(t, repository.NewUserRepository().Create(user))
	return user
}

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		userID := c.GetUint("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	user := setupAuthTest(t)
	r := newAuthTestRouter()

	token, err := utils.GenerateToken(user.ID)
	require.NoError(t, err)

	staleToken, err := utils.GenerateToken(user.ID + 100000)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"Valid token", "Bearer " + token, http.StatusOK},
		{"Missing header", "", http.StatusUnauthorized},
		{"Wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"No scheme", token, http.StatusUnauthorized},
		{"Garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"Token for unknown user", "Bearer " + staleToken, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
