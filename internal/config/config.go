// Package config carga la configuración del sistema: un JSON opcional con
// defaults razonables, más overrides por variables de entorno para lo que
// cambia entre despliegues (URIs, secretos, direcciones).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"movierec/internal/engine"
	"movierec/internal/model"
)

// DataConfig ubica los CSV estilo MovieLens de la ingesta.
type DataConfig struct {
	MoviesPath  string `json:"movies_path"`
	RatingsPath string `json:"ratings_path"`
}

// QueryConfig controla la consulta de recomendación.
type QueryConfig struct {
	MinSeeds            int     `json:"min_seeds"`
	HighRatingThreshold float64 `json:"high_rating_threshold"`
	KPerSeed            int     `json:"k_per_seed"`
	MaxResults          int     `json:"max_results"`
}

// Config es la configuración completa del sistema.
type Config struct {
	HTTPAddr string `json:"http_addr"`

	MongoURI string `json:"mongo_uri"`
	MongoDB  string `json:"mongo_db"`

	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	JWTSecret string `json:"jwt_secret"`

	Data  DataConfig   `json:"data"`
	Model model.Params `json:"model"`
	Query QueryConfig  `json:"query"`
}

// Default retorna la configuración por defecto.
func Default() Config {
	return Config{
		HTTPAddr:  ":8080",
		MongoDB:   "movierec",
		RedisAddr: "localhost:6379",
		Data: DataConfig{
			MoviesPath:  "dataset/ml-latest-small/movies.csv",
			RatingsPath: "dataset/ml-latest-small/ratings.csv",
		},
		Model: model.DefaultParams(),
		Query: QueryConfig{
			MinSeeds:            engine.DefaultOptions().MinSeeds,
			HighRatingThreshold: engine.DefaultOptions().HighRatingThreshold,
			KPerSeed:            10,
			MaxResults:          10,
		},
	}
}

// Load lee el JSON si existe, aplica defaults donde falten valores y después
// pisa con las variables de entorno. Un path vacío o inexistente no es error:
// queda la configuración por defecto más el entorno.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case os.IsNotExist(err):
			// sin archivo: defaults + entorno
		case err != nil:
			return Config{}, fmt.Errorf("config: abriendo %s: %w", path, err)
		default:
			defer f.Close()
			if err := json.NewDecoder(f).Decode(&cfg); err != nil {
				return Config{}, fmt.Errorf("config: decodificando %s: %w", path, err)
			}
			cfg.backfill()
		}
	}

	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.MongoURI = getenv("MONGODB_URI", cfg.MongoURI)
	cfg.MongoDB = getenv("MONGODB_DB", cfg.MongoDB)
	cfg.RedisAddr = getenv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getenv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getint("REDIS_DB", cfg.RedisDB)
	cfg.JWTSecret = getenv("JWT_SECRET", cfg.JWTSecret)
	cfg.Data.MoviesPath = getenv("MOVIES_CSV", cfg.Data.MoviesPath)
	cfg.Data.RatingsPath = getenv("RATINGS_CSV", cfg.Data.RatingsPath)

	return cfg, nil
}

// backfill repone defaults para campos que el JSON dejó en cero.
func (c *Config) backfill() {
	def := Default()
	if c.HTTPAddr == "" {
		c.HTTPAddr = def.HTTPAddr
	}
	if c.MongoDB == "" {
		c.MongoDB = def.MongoDB
	}
	if c.RedisAddr == "" {
		c.RedisAddr = def.RedisAddr
	}
	if c.Data.MoviesPath == "" {
		c.Data.MoviesPath = def.Data.MoviesPath
	}
	if c.Data.RatingsPath == "" {
		c.Data.RatingsPath = def.Data.RatingsPath
	}
	if c.Model.HighSupportN <= 0 {
		c.Model.HighSupportN = def.Model.HighSupportN
	}
	if c.Model.K <= 0 {
		c.Model.K = def.Model.K
	}
	if c.Model.Alpha <= 0 {
		c.Model.Alpha = def.Model.Alpha
	}
	if c.Model.Workers <= 0 {
		c.Model.Workers = def.Model.Workers
	}
	if c.Query.MinSeeds <= 0 {
		c.Query.MinSeeds = def.Query.MinSeeds
	}
	if c.Query.HighRatingThreshold <= 0 {
		c.Query.HighRatingThreshold = def.Query.HighRatingThreshold
	}
	if c.Query.KPerSeed <= 0 {
		c.Query.KPerSeed = def.Query.KPerSeed
	}
	if c.Query.MaxResults <= 0 {
		c.Query.MaxResults = def.Query.MaxResults
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
