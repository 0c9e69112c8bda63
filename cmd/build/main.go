// El job offline de construcción del modelo: importa los CSV, calcula las
// similitudes item-item y reemplaza la tabla persistida completa de forma
// atómica. Se corre al desplegar o cuando llegan ratings nuevos en volumen.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"movierec/internal/config"
	"movierec/internal/data"
	"movierec/internal/matrix"
	"movierec/internal/model"
	"movierec/internal/plattform"
	"movierec/internal/store"
	"movierec/pkg/styles"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "ruta del JSON de configuración")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fail("configuración: %v", err)
	}

	styles.Header("movierec · build del modelo de similitud")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client, err := plattform.NewMongoClient(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		fail("mongo: %v", err)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	repo := store.NewMongoRepository(client, cfg.MongoDB)
	bg := context.Background()
	if err := repo.EnsureIndexes(bg); err != nil {
		fail("índices: %v", err)
	}

	styles.PrintFS("info", "Cargando catálogo desde %s", cfg.Data.MoviesPath)
	movies, err := data.LoadMovies(cfg.Data.MoviesPath)
	if err != nil {
		fail("movies: %v", err)
	}
	if err := repo.ReplaceAllMovies(bg, movies); err != nil {
		fail("persistiendo catálogo: %v", err)
	}
	styles.PrintFS("success", "Catálogo: %d películas", len(movies))

	styles.PrintFS("info", "Cargando ratings desde %s", cfg.Data.RatingsPath)
	ratings, err := data.LoadRatings(cfg.Data.RatingsPath)
	if err != nil {
		fail("ratings: %v", err)
	}
	styles.PrintFS("success", "Ratings: %d filas", len(ratings))

	styles.PrintFS("info", "Construyendo matriz dispersa…")
	start := time.Now()
	mx := matrix.Build(ratings)
	styles.PrintFS("success", "Matriz %dx%d en %v", mx.Users(), mx.Items(), time.Since(start).Round(time.Millisecond))

	mdl := model.New(mx, cfg.Model)
	styles.PrintFS("info", "Alto soporte: %d películas · K=%d · alpha=%.0f · %d workers",
		mdl.HighSupportCount(), cfg.Model.K, cfg.Model.Alpha, cfg.Model.Workers)

	styles.PrintFS("info", "Calculando similitudes…")
	start = time.Now()
	edges := mdl.BuildEdges()
	styles.PrintFS("success", "%d aristas en %v", len(edges), time.Since(start).Round(time.Millisecond))

	styles.PrintFS("info", "Reemplazando la tabla persistida…")
	if err := repo.ReplaceAllSimilarityEdges(bg, edges); err != nil {
		fail("persistiendo similitudes: %v", err)
	}
	styles.PrintFS("success", "Tabla reemplazada. Listo.")
}

func fail(format string, a ...interface{}) {
	styles.PrintFS("error", format, a...)
	os.Exit(1)
}
