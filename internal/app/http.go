package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/jmuhoro/todo-api/internal/config"
	v1 "github.com/jmuhoro/todo-api/internal/delivery/http/v1"
	"github.com/jmuhoro/todo-api/internal/services"
	"github.com/jmuhoro/todo-api/internal/storage/postgres"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT

	userStore := postgres.NewUserStore(globalLogger, globalPostgresPool)
	taskStore := postgres.NewTaskStore(globalLogger, globalPostgresPool)

	tokenService := services.NewTokenService(
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.AccessTokenTTL,
		jwtCfg.RefreshTokenTTL,
	)
	authService := services.NewAuthService(globalLogger, userStore, tokenService)
	taskService := services.NewTaskService(globalLogger, taskStore)

	handler := v1.New(globalLogger, authService, tokenService, taskService)

	router.POST("/register", handler.HandleRegister)
	router.POST("/login", handler.HandleLogin)
	router.POST("/refresh", handler.HandleRefresh)

	router.POST("/add", handler.HandleAuthMiddleware, handler.HandleAddTodo)
	router.GET("/todos", handler.HandleAuthMiddleware, handler.HandleGetTodos)
	router.GET("/todos/:id", handler.HandleAuthMiddleware, handler.HandleGetTodo)
	router.PUT("/update/:id", handler.HandleAuthMiddleware, handler.HandleUpdateTodo)
	router.DELETE("/delete/:id", handler.HandleAuthMiddleware, handler.HandleDeleteTodo)
}
