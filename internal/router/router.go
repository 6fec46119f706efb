package router

import (
	"database/sql"
	"net/http"

	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/authz"
	_ "pet-adoption/internal/docs"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/identity"
	"pet-adoption/internal/domain/images"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/profiles"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Provider habilita /auth/signup|login|logout y verifica los bearer tokens.
	// Si es nil se usa AuthVerifier; si ambos son nil, modo dev con headers X-Debug-User-*.
	Provider     auth.Provider
	AuthVerifier auth.AuthVerifier

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	AdminEmail string

	// ImageHost nil deja /admin/images respondiendo 502.
	ImageHost      images.ImageHost
	Images         images.Options
	MaxUploadBytes int64

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	verifier := opts.AuthVerifier
	if opts.Provider != nil {
		verifier = opts.Provider
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(verifier))
	r.Use(middleware.Observe(log, opts.Metrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		petRepo     pets.Repository
		appRepo     adoptions.Repository
		cascadeLog  adoptions.CascadeLog
		profileRepo profiles.Repository
	)
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
		appRepo = pg.NewApplicationsRepo(opts.DB)
		cascadeLog = pg.NewCascadeLog(opts.DB)
		profileRepo = pg.NewProfilesRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
		appRepo = mem.NewApplicationRepo()
		cascadeLog = mem.NewCascadeLog()
		profileRepo = mem.NewProfileRepo()
	}

	gate := authz.NewGate(opts.AdminEmail)

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	adoptionsSvc := adoptions.NewService(appRepo, petsSvc, cascadeLog, log, opts.Metrics)
	reconciler := adoptions.NewReconciler(cascadeLog, petsSvc, log, opts.Metrics)
	profilesSvc := profiles.NewService(profileRepo, gate)
	imagesSvc := images.NewService(opts.ImageHost, opts.Images, log, opts.Metrics)

	// Públicas
	pets.RegisterRoutes(r, petsSvc, log)
	identity.RegisterRoutes(r, opts.Provider, gate, log)

	// Con sesión
	r.Group(func(ar chi.Router) {
		ar.Use(authz.RequireAuth)
		adoptions.RegisterRoutes(ar, adoptionsSvc, log)
		profiles.RegisterRoutes(ar, profilesSvc, log)
	})

	// Solo admin
	r.Route("/admin", func(ad chi.Router) {
		ad.Use(gate.RequireAdmin)
		pets.RegisterAdminRoutes(ad, petsSvc, log)
		adoptions.RegisterAdminRoutes(ad, adoptionsSvc, reconciler, log)
		images.RegisterAdminRoutes(ad, imagesSvc, opts.MaxUploadBytes, log)
	})

	return r
}
