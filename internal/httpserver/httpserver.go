// Package httpserver arma el servidor HTTP con todas sus dependencias,
// siguiendo un enfoque de capas: plattform -> repositorios -> servicios ->
// handlers -> rutas.
package httpserver

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"movierec/internal/auth"
	"movierec/internal/cache"
	"movierec/internal/catalog"
	"movierec/internal/config"
	"movierec/internal/data"
	"movierec/internal/engine"
	"movierec/internal/health"
	"movierec/internal/matrix"
	"movierec/internal/model"
	"movierec/internal/plattform"
	"movierec/internal/ratings"
	"movierec/internal/recommend"
	"movierec/internal/store"
)

// Server orquesta las dependencias del servidor HTTP.
type Server struct {
	router *gin.Engine
	cfg    config.Config

	mongoClient *mongo.Client
	repo        store.Repository
	recSvc      *recommend.TitleRecommender
}

// New construye una instancia de Server inicializando dependencias y rutas.
// El modelo de similitud NO se construye acá: es un batch pesado que corre
// aparte vía BuildModel, fuera del camino de los requests.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	client, err := plattform.NewMongoClient(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("httpserver: conectar a mongo: %w", err)
	}

	repo := store.NewMongoRepository(client, cfg.MongoDB)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("httpserver: índices: %w", err)
	}

	cat, err := loadCatalog(ctx, cfg, repo)
	if err != nil {
		return nil, err
	}

	redisClient := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	audit := cache.NewAudit(redisClient, 20)

	usersColl := client.Database(cfg.MongoDB).Collection("users")
	countersColl := client.Database(cfg.MongoDB).Collection("counters")
	if err := auth.EnsureIndexes(ctx, usersColl); err != nil {
		return nil, fmt.Errorf("httpserver: índices de auth: %w", err)
	}
	tokens := auth.NewJWTTokenManager(cfg.JWTSecret)
	authSvc := auth.NewService(auth.NewMongoRepository(usersColl, countersColl), tokens)
	authHandler := auth.NewHandler(authSvc)

	recSvc := recommend.NewService(cat, audit, cfg.Query.KPerSeed, cfg.Query.MaxResults)
	recHandler := recommend.NewHandler(recSvc)

	ratingsHandler := ratings.NewHandler(ratings.NewService(cat, repo))

	healthSvc := health.NewService(client, recSvc)

	router := gin.Default()
	api := router.Group("/api/v1")
	authHandler.RegisterRoutes(api.Group("/auth"))
	recHandler.RegisterPublicRoutes(api.Group("/movies"))

	protected := api.Group("")
	protected.Use(auth.Middleware(tokens))
	recHandler.RegisterRoutes(protected.Group("/recommendations"))
	ratingsHandler.RegisterRoutes(protected.Group("/ratings"))

	router.GET("/health", func(c *gin.Context) {
		status := healthSvc.Check(c.Request.Context())
		code := http.StatusOK
		if status.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	return &Server{
		router:      router,
		cfg:         cfg,
		mongoClient: client,
		repo:        repo,
		recSvc:      recSvc,
	}, nil
}

// loadCatalog carga el catálogo desde el store; si está vacío hace el
// bootstrap desde el CSV de películas y lo persiste.
func loadCatalog(ctx context.Context, cfg config.Config, repo store.Repository) (*catalog.Catalog, error) {
	movies, err := repo.FindAllMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("httpserver: cargando catálogo: %w", err)
	}
	if len(movies) == 0 {
		log.Printf("[CATALOG] catálogo vacío en el store, importando %s", cfg.Data.MoviesPath)
		movies, err = data.LoadMovies(cfg.Data.MoviesPath)
		if err != nil {
			return nil, fmt.Errorf("httpserver: importando catálogo: %w", err)
		}
		if err := repo.ReplaceAllMovies(ctx, movies); err != nil {
			return nil, fmt.Errorf("httpserver: persistiendo catálogo: %w", err)
		}
	}
	return catalog.New(movies)
}

// BuildModel construye la matriz y el modelo en memoria y lo publica en el
// servicio de recomendación. Hasta que termina, las consultas responden 503.
func (s *Server) BuildModel() error {
	log.Printf("[MODEL] cargando ratings desde %s", s.cfg.Data.RatingsPath)
	ratingRows, err := data.LoadRatings(s.cfg.Data.RatingsPath)
	if err != nil {
		return fmt.Errorf("httpserver: cargando ratings: %w", err)
	}

	log.Printf("[MODEL] construyendo matriz con %d ratings", len(ratingRows))
	mx := matrix.Build(ratingRows)

	mdl := model.New(mx, s.cfg.Model)
	log.Printf("[MODEL] partición de alto soporte: %d de %d películas", mdl.HighSupportCount(), mx.Items())

	s.recSvc.SetEngine(engine.New(mdl, s.repo, engine.Options{
		MinSeeds:            s.cfg.Query.MinSeeds,
		HighRatingThreshold: s.cfg.Query.HighRatingThreshold,
	}))
	log.Printf("[MODEL] modelo publicado, consultas habilitadas")
	return nil
}

// Router expone el *gin.Engine subyacente (útil para pruebas).
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run inicia el servidor HTTP en la dirección configurada.
func (s *Server) Run() error {
	addr := s.cfg.HTTPAddr
	if addr == "" {
		addr = ":8080"
	}
	return s.router.Run(addr)
}

// Shutdown libera la conexión a MongoDB.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.mongoClient == nil {
		return nil
	}
	return s.mongoClient.Disconnect(ctx)
}
