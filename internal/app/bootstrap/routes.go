// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	automationfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/automation"
	contactfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/contact"
	ecofriendlyfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/ecofriendly"
	facilitiesfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/facilities"
	healthfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/health"
	jobsfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/jobs"
	machineryfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/machinery"
	newsfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/news"
	productsfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/products"
	programsfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/programs"
	uploadsfeature "github.com/tranchon2702/saigon3-cms/internal/app/features/uploads"
	automationstore "github.com/tranchon2702/saigon3-cms/internal/app/store/automation"
	contactstore "github.com/tranchon2702/saigon3-cms/internal/app/store/contact"
	ecostore "github.com/tranchon2702/saigon3-cms/internal/app/store/ecofriendly"
	facilitystore "github.com/tranchon2702/saigon3-cms/internal/app/store/facilities"
	jobstore "github.com/tranchon2702/saigon3-cms/internal/app/store/jobs"
	machinerystore "github.com/tranchon2702/saigon3-cms/internal/app/store/machinery"
	newsstore "github.com/tranchon2702/saigon3-cms/internal/app/store/news"
	productstore "github.com/tranchon2702/saigon3-cms/internal/app/store/products"
	programstore "github.com/tranchon2702/saigon3-cms/internal/app/store/programs"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/apicors"
	"github.com/tranchon2702/saigon3-cms/internal/app/system/imaging"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. The whole surface is a JSON API:
// the public website and the admin frontend are separate origins that
// consume it, so apicors handles cross-origin access and there are no
// sessions or CSRF tokens.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	pipeline := imaging.New(deps.FileStorage, logger)

	r := chi.NewRouter()

	// Global middleware. The timeout bounds slow Mongo calls; security
	// headers come from the shared WAFFLE config.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	if len(appCfg.APIOrigins) > 0 {
		r.Use(apicors.MiddlewareWithOrigins(appCfg.APIOrigins...))
	} else {
		r.Use(apicors.Middleware())
	}

	// Health endpoints for load balancers and Kubernetes probes.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Content API.
	r.Route("/api", func(r chi.Router) {
		r.Mount("/facilities", facilitiesfeature.Routes(
			facilitiesfeature.NewHandler(facilitystore.New(deps.MongoDatabase), logger)))
		r.Mount("/machinery", machineryfeature.Routes(
			machineryfeature.NewHandler(machinerystore.New(deps.MongoDatabase), logger)))
		r.Mount("/automation", automationfeature.Routes(
			automationfeature.NewHandler(automationstore.New(deps.MongoDatabase), logger)))
		r.Mount("/eco-friendly", ecofriendlyfeature.Routes(
			ecofriendlyfeature.NewHandler(ecostore.New(deps.MongoDatabase), logger)))
		r.Mount("/products", productsfeature.Routes(
			productsfeature.NewHandler(productstore.New(deps.MongoDatabase), logger)))
		r.Mount("/news", newsfeature.Routes(
			newsfeature.NewHandler(newsstore.New(deps.MongoDatabase), logger)))
		r.Mount("/programs", programsfeature.Routes(
			programsfeature.NewHandler(programstore.New(deps.MongoDatabase), logger)))
		r.Mount("/jobs", jobsfeature.Routes(
			jobsfeature.NewHandler(jobstore.New(deps.MongoDatabase), logger)))
		r.Mount("/contact", contactfeature.Routes(
			contactfeature.NewHandler(contactstore.New(deps.MongoDatabase), notifier, appCfg.AppName, appCfg.AdminURL, logger)))
		r.Mount("/uploads", uploadsfeature.Routes(
			uploadsfeature.NewHandler(deps.FileStorage, pipeline, logger)))
	})

	// Serve locally stored uploads when the local storage backend is in
	// use. With S3/CloudFront the variant URLs point at the CDN instead.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	return r, nil
}
