package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmuhoro/todo-api/internal/config"
)

var globalPostgresPool *pgxpool.Pool

func MustConnectPostgres() {
	cfg := config.Global().Postgres
	connURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host,
		cfg.Port, cfg.Database, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(connURL)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	globalPostgresPool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = globalPostgresPool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
}

// MustMigratePostgres bootstraps the schema on startup.
func MustMigratePostgres() {
	const createUsersTableQuery = `
CREATE TABLE IF NOT EXISTS users (
    id         uuid PRIMARY KEY,
    name       varchar(100) NOT NULL,
    email      varchar(100) NOT NULL UNIQUE,
    password   varchar(150) NOT NULL,
    created_at timestamptz NOT NULL
)
`
	const createTasksTableQuery = `
CREATE TABLE IF NOT EXISTS tasks (
    id          bigserial PRIMARY KEY,
    user_id     uuid NOT NULL REFERENCES users (id),
    title       varchar(100) NOT NULL,
    description text NOT NULL,
    completed   boolean NOT NULL DEFAULT false,
    created_at  timestamptz NOT NULL
)
`
	for _, query := range []string{
		createUsersTableQuery,
		createTasksTableQuery,
	} {
		_, err := globalPostgresPool.Exec(context.Background(), query)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to migrate postgres")
			panic(err)
		}
	}
	globalLogger.Info().Msg("migrated postgres")
}

func DisconnectPostgres() {
	globalPostgresPool.Close()
	globalLogger.Info().Msg("disconnected from postgres")
}
