package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jmuhoro/todo-api/internal/services"
	"github.com/jmuhoro/todo-api/internal/storage/memory"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zerolog.Nop()

	tokenService := services.NewTokenService(
		"todo-api-test",
		[]byte("test-signing-key"),
		time.Minute,
		time.Hour,
	)
	authService := services.NewAuthService(logger, memory.NewUserStore(), tokenService)
	taskService := services.NewTaskService(logger, memory.NewTaskStore())

	handler := New(logger, authService, tokenService, taskService)

	router := gin.New()
	router.POST("/register", handler.HandleRegister)
	router.POST("/login", handler.HandleLogin)
	router.POST("/refresh", handler.HandleRefresh)
	router.POST("/add", handler.HandleAuthMiddleware, handler.HandleAddTodo)
	router.GET("/todos", handler.HandleAuthMiddleware, handler.HandleGetTodos)
	router.GET("/todos/:id", handler.HandleAuthMiddleware, handler.HandleGetTodo)
	router.PUT("/update/:id", handler.HandleAuthMiddleware, handler.HandleUpdateTodo)
	router.DELETE("/delete/:id", handler.HandleAuthMiddleware, handler.HandleDeleteTodo)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return body
}

func registerAndLogin(t *testing.T, router *gin.Engine, name, email string) (accessToken, refreshToken string) {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodPost, "/login", "", gin.H{
		"email":    email,
		"password": "secret123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	accessToken, _ = body["access_token"].(string)
	refreshToken, _ = body["refresh_token"].(string)
	if accessToken == "" || refreshToken == "" {
		t.Fatalf("login response missing tokens: %v", body)
	}
	return accessToken, refreshToken
}
