// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	categoriesfeature "github.com/pbfagundes/escolinha/internal/app/features/categories"
	gamesfeature "github.com/pbfagundes/escolinha/internal/app/features/games"
	healthfeature "github.com/pbfagundes/escolinha/internal/app/features/health"
	studentsfeature "github.com/pbfagundes/escolinha/internal/app/features/students"
	trainingsfeature "github.com/pbfagundes/escolinha/internal/app/features/trainings"
	categorystore "github.com/pbfagundes/escolinha/internal/app/store/categories"
	gamestore "github.com/pbfagundes/escolinha/internal/app/store/games"
	studentstore "github.com/pbfagundes/escolinha/internal/app/store/students"
	trainingstore "github.com/pbfagundes/escolinha/internal/app/store/trainings"
	"github.com/pbfagundes/escolinha/internal/app/system/membership"
	"github.com/pbfagundes/escolinha/internal/app/system/renames"
	"github.com/pbfagundes/escolinha/internal/app/system/roster"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. The consistency engine is wired
// here: the membership index reads students and writes the category
// cache, the rename propagator sits over both stores, and the roster
// validator guards every game and training write.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	catStore := categorystore.New(deps.MongoDatabase)
	stuStore := studentstore.New(deps.SQL)
	gameStore := gamestore.New(deps.MongoDatabase)
	trainingStore := trainingstore.New(deps.MongoDatabase)

	index := membership.NewIndex(stuStore, catStore)
	propagator := renames.NewPropagator(stuStore, catStore, index, logger)
	validator := roster.NewValidator(catStore, stuStore, index)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Mount("/health", healthfeature.Routes(
		healthfeature.NewHandler(deps.MongoClient, deps.SQL, logger)))
	r.Mount("/categories", categoriesfeature.Routes(
		categoriesfeature.NewHandler(catStore, stuStore, index, propagator, logger)))
	r.Mount("/students", studentsfeature.Routes(
		studentsfeature.NewHandler(stuStore, catStore, index, logger)))
	r.Mount("/games", gamesfeature.Routes(
		gamesfeature.NewHandler(gameStore, validator, logger)))
	r.Mount("/trainings", trainingsfeature.Routes(
		trainingsfeature.NewHandler(trainingStore, validator, logger)))

	return r, nil
}
