package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/auth"
	"github.com/amirhosseinghanipour/todoapi/internal/application/guard"
	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/application/todo"
	"github.com/amirhosseinghanipour/todoapi/internal/application/user"
	"github.com/amirhosseinghanipour/todoapi/internal/config"
	infraauth "github.com/amirhosseinghanipour/todoapi/internal/infrastructure/auth"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/cache"
	httprouter "github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/persistence/memory"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/security"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/webhook"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := newLogger(cfg.Log)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if cfg.UsesDevSecret() {
		log.Warn().Msg("JWT_SECRET not set; using the development secret")
	}

	ctx := context.Background()
	checks := make(map[string]handlers.Check)

	var (
		users ports.UserStore
		todos ports.TodoStore
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		store, err := postgres.Open(ctx, postgres.PoolConfig{URL: cfg.Storage.DatabaseURL})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to database")
		}
		defer store.Close()
		if cfg.Storage.AutoMigrate {
			if err := postgres.Migrate(ctx, store.DB); err != nil {
				log.Fatal().Err(err).Msg("run migrations")
			}
		}
		users, todos = store.Users, store.Todos
		checks["database"] = store.Pool.Ping
	default:
		users, todos = memory.NewUserStore(), memory.NewTodoStore()
		log.Warn().Msg("using in-memory storage; data is lost on restart")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.Connect(ctx, cache.Config{URL: cfg.Redis.URL})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable; continuing without cache and queue")
			redisClient = nil
		} else {
			defer redisClient.Close()
			checks["redis"] = handlers.RedisCheck(redisClient)
			todos = cache.NewTodoStore(todos, redisClient, cfg.Redis.TodoCacheTTL, log)
		}
	}

	var emitter ports.WebhookEmitter = webhook.NewLogEmitter(log)
	if cfg.Webhook.URL != "" {
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, webhook.WithSigningSecret(cfg.Webhook.Secret))
	}

	var taskEnqueuer ports.TaskEnqueuer = queue.NewNoopEnqueuer()
	var asynqWorker *queue.Worker
	if redisClient != nil {
		asynqOpt, err := asynq.ParseRedisURI(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL for asynq")
		}
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	}

	key, err := infraauth.SigningKeyFromSecret(cfg.JWT.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("JWT secret")
	}
	tokens := infraauth.NewTokenService(key, cfg.JWT.Issuer, cfg.JWT.Audience, time.Duration(cfg.JWT.TTL)*time.Second)
	hasher := security.NewPBKDF2Hasher(security.PBKDF2Params{
		Iterations: cfg.PBKDF2.Iterations,
		SaltLength: cfg.PBKDF2.SaltLength,
		KeyLength:  cfg.PBKDF2.KeyLength,
	})
	g := guard.New(tokens, todos)

	authHandler := handlers.NewAuthHandler(
		auth.NewRegisterUser(users, hasher, tokens, taskEnqueuer),
		auth.NewLogin(users, hasher, tokens),
		tokens, taskEnqueuer, log,
	)
	usersHandler := handlers.NewUsersHandler(
		user.NewGetProfile(users),
		user.NewUpdateProfile(users),
		user.NewVerifyEmail(users),
		user.NewDeleteAccount(users, todos),
		taskEnqueuer, log,
	)
	todosHandler := handlers.NewTodosHandler(
		todo.NewCreateTodo(todos, users),
		todo.NewListTodos(todos),
		todo.NewGetTodo(g),
		todo.NewUpdateTodo(g, todos),
		todo.NewSetCompletion(g, todos),
		todo.NewDeleteTodo(g, todos),
		log,
	)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		UsersHandler:  usersHandler,
		TodosHandler:  todosHandler,
		HealthHandler: handlers.NewHealthHandler(users, todos, checks),
		RequireJWT:    middleware.NewAuthValidator(g, log).Handler,
		Log:           log,
		Secure:        middleware.NewSecure(middleware.SecureOptions(!cfg.IsProduction())),
		CORSOrigins:   cfg.CORS.AllowedOrigins,
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("storage", cfg.Storage.Backend).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}

func newLogger(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
