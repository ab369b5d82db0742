package router

import (
	"database/sql"
	"encoding/json"
	"net/http"

	blobmem "refugio-adopciones/internal/adapters/blob/memory"
	mem "refugio-adopciones/internal/adapters/storage/memory"
	pg "refugio-adopciones/internal/adapters/storage/postgres"
	"refugio-adopciones/internal/config"
	"refugio-adopciones/internal/domain/adoption"
	"refugio-adopciones/internal/domain/dogs"
	"refugio-adopciones/internal/middleware"
	"refugio-adopciones/internal/platform/logger"
	"refugio-adopciones/internal/platform/metrics"
	"refugio-adopciones/internal/ports/auth"
	"refugio-adopciones/internal/ports/blobstore"
	"refugio-adopciones/internal/ports/roles"

	_ "refugio-adopciones/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Config nil => defaults de desarrollo (cascade on, 32MB de upload).
	Config *config.Config
	Log    logger.Logger

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: nil => bucket in-memory.
	Blobs blobstore.Store

	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Roles        roles.Resolver    // nil => tabla de roles del storage elegido

	// Sender != nil => modo email; si no, modo registro con Recorder.
	Sender   adoption.Sender
	Recorder adoption.Recorder

	Metrics *metrics.Metrics
}

type meResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"is_admin"`
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = defaultConfig()
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	r := chi.NewRouter()

	// CORS va primero: los preflight no pasan por el resto.
	r.Use(middleware.CORS)
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(m.Middleware)

	var (
		dogRepo   dogs.Repository
		imageRepo dogs.ImageRepository
		roleRepo  roles.Resolver
	)
	if opts.DB != nil {
		dogRepo = pg.NewDogsRepo(opts.DB)
		imageRepo = pg.NewImagesRepo(opts.DB)
		roleRepo = pg.NewRolesRepo(opts.DB)
	} else {
		dogRepo = mem.NewDogRepo()
		imageRepo = mem.NewImageRepo(dogRepo)
		roleRepo = mem.NewRoleRepo(cfg.Auth.AdminUserIDs...)
	}
	if opts.Roles != nil {
		roleRepo = opts.Roles
	}

	blobs := opts.Blobs
	if blobs == nil {
		blobs = blobmem.New("")
	}

	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Verifier: opts.AuthVerifier,
		Roles:    roleRepo,
		Log:      log,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo
	dogsSvc := dogs.NewService(dogRepo, imageRepo, blobs,
		dogs.WithLogger(log.With(map[string]any{"module": "dogs"})),
		dogs.WithMetrics(m),
		dogs.WithCascadeBlobs(cfg.CascadeDelete),
	)

	adoptionOpts := []adoption.Option{
		adoption.WithLogger(log.With(map[string]any{"module": "adoption"})),
		adoption.WithSubject(cfg.Notifier.Subject),
		adoption.WithShelterName(cfg.Shelter.Name),
	}
	if opts.Sender != nil {
		adoptionOpts = append(adoptionOpts, adoption.WithSender(opts.Sender))
	}
	adoptionSvc := adoption.NewService(opts.Recorder, adoptionOpts...)
	shelter := adoption.NewShelter(cfg.Shelter.Name, cfg.Shelter.Address, cfg.Shelter.Lat, cfg.Shelter.Lng, cfg.Shelter.Phone, cfg.Shelter.Email)

	// Rutas públicas
	dogs.RegisterRoutes(r, dogsSvc)
	adoption.RegisterRoutes(r, adoptionSvc, shelter, m)

	r.With(middleware.RequireSession).Get("/me", meHandler())

	// Panel de admin
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin)
		dogs.RegisterAdminRoutes(ar, dogsSvc, cfg.HTTP.MaxUploadMB<<20)
	})

	return r
}

// meHandler godoc
// @Summary Sesión actual
// @Tags auth
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} meResponse
// @Failure 401 {object} map[string]string
// @Router /me [get]
func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := middleware.GetSession(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(meResponse{
			UserID:  s.UserID,
			Email:   s.Email,
			Role:    string(s.Role),
			IsAdmin: s.IsAdmin(),
		})
	}
}

func defaultConfig() *config.Config {
	c := &config.Config{CascadeDelete: true}
	c.HTTP.MaxUploadMB = 32
	c.Notifier.Subject = "Información de adopción - Refugio Municipal de Curicó"
	c.Shelter.Name = "Refugio Municipal de Curicó"
	c.Shelter.Address = "Carmen 1290, Curicó, Región del Maule, Chile"
	c.Shelter.Lat = -34.9826
	c.Shelter.Lng = -71.2394
	return c
}
