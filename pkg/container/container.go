package container

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"

	"library-backend/internal/config"
	authorRepo "library-backend/internal/domains/author/repository"
	bookRepo "library-backend/internal/domains/book/repository"
	catalogService "library-backend/internal/domains/catalog/service"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
	"library-backend/internal/graph"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/pubsub"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency. It is the root of the
// dependency graph and is built once at startup.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config     *config.Config
	Postgres   *database.PostgresDB // set when DB_DRIVER=postgres
	SQLite     *database.SQLiteDB   // set when DB_DRIVER=sqlite
	Cache      cache.Cache          // nil when Redis is disabled or unreachable
	JWTManager *jwt.Manager
	Bus        *pubsub.Bus

	redis *infraCache.RedisCache

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	UserRepo   userRepo.RepositoryInterface

	// ========================================
	// SERVICE LAYER
	// ========================================

	CatalogService   catalogService.ServiceInterface
	UserService      userService.ServiceInterface
	IdentityResolver userService.IdentityResolverInterface

	// ========================================
	// TRANSPORT LAYER
	// ========================================

	Schema       *graphql.Schema
	GraphHandler http.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads the config from the environment and builds the container.
func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("[CONTAINER] Config loaded (Environment: %s, Driver: %s)", cfg.App.Environment, cfg.Database.Driver)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return Build(ctx, cfg)
}

// Build wires the dependency graph in order: storage, cache, repositories,
// services, transport. On error everything opened so far is released.
func Build(ctx context.Context, cfg *config.Config) (_ *Container, err error) {
	c := &Container{Config: cfg}
	defer func() {
		if err != nil {
			c.Cleanup()
		}
	}()

	// STEP 1: STORAGE
	if err := c.initStorage(ctx); err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// STEP 2: CACHE (optional)
	c.initCache(ctx)

	// STEP 3: REPOSITORIES
	c.initRepositories()
	log.Println("[CONTAINER] Repositories initialized")

	// STEP 4: SERVICES
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.TokenTTL())
	c.Bus = pubsub.NewBus()
	c.initServices()
	log.Println("[CONTAINER] Services initialized")

	// STEP 5: GRAPH
	schema, err := graph.NewSchema(graph.NewResolver(c.CatalogService, c.UserService, c.Bus))
	if err != nil {
		return nil, fmt.Errorf("failed to parse graph schema: %w", err)
	}
	c.Schema = schema
	c.GraphHandler = graph.NewHandler(schema)

	log.Println("[CONTAINER] Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverPostgres:
		dbConfig, err := c.Config.PostgresConfig()
		if err != nil {
			return err
		}

		db := database.NewPostgresDB(dbConfig)
		if err := db.Connect(ctx); err != nil {
			return err
		}
		c.Postgres = db

		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		if err := db.ApplySchema(ctx); err != nil {
			return err
		}

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, c.Config.SQLiteConfig())
		if err != nil {
			return err
		}
		c.SQLite = db

		// authors first, books reference them
		var tables []database.TableModel
		tables = append(tables, authorRepo.SQLiteTables()...)
		tables = append(tables, bookRepo.SQLiteTables()...)
		tables = append(tables, userRepo.SQLiteTables()...)
		if err := db.CreateTables(ctx, tables...); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown storage driver %q", c.Config.Database.Driver)
	}

	log.Printf("[CONTAINER] Storage ready (%s)", c.Config.Database.Driver)
	return nil
}

// initCache connects Redis when configured. Redis is not critical: on
// failure the user lookups simply go to storage.
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Redis.Enabled() {
		log.Println("[CONTAINER] Redis disabled, identity cache off")
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		_ = rc.Close()
		return
	}

	c.redis = rc
	c.Cache = rc
}

func (c *Container) initRepositories() {
	if c.Postgres != nil {
		pool := c.Postgres.Pool
		c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
		c.BookRepo = bookRepo.NewPostgresRepository(pool)
		c.UserRepo = userRepo.NewPostgresRepository(pool)
	} else {
		db := c.SQLite.DB
		c.AuthorRepo = authorRepo.NewSQLiteRepository(db)
		c.BookRepo = bookRepo.NewSQLiteRepository(db)
		c.UserRepo = userRepo.NewSQLiteRepository(db)
	}

	if c.Cache != nil {
		c.UserRepo = userRepo.NewCachedRepository(c.UserRepo, c.Cache)
	}
}

func (c *Container) initServices() {
	c.CatalogService = catalogService.NewCatalogService(c.AuthorRepo, c.BookRepo, c.Bus)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Config.Security.BcryptCost)
	c.IdentityResolver = userService.NewIdentityResolver(c.UserRepo, c.JWTManager)
}

// ========================================
// HEALTH & CLEANUP
// ========================================

// StorageHealth pings whichever store is in use.
func (c *Container) StorageHealth(ctx context.Context) error {
	switch {
	case c.Postgres != nil && c.Postgres.Pool != nil:
		return c.Postgres.HealthCheck(ctx)
	case c.SQLite != nil:
		return c.SQLite.HealthCheck(ctx)
	default:
		return fmt.Errorf("storage not initialized")
	}
}

// Cleanup releases resources on shutdown. Open subscriptions are ended first.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up container resources...")

	if c.Bus != nil {
		c.Bus.Close()
	}

	if c.Postgres != nil {
		if err := c.Postgres.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close PostgreSQL: %v", err)
		}
	}
	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close SQLite: %v", err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close Redis: %v", err)
		} else {
			log.Println("[CONTAINER] Redis connections closed")
		}
	}

	log.Println("[CONTAINER] Container cleanup completed")
}
