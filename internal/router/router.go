package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "pet-donor-connect/internal/adapters/storage/memory"
	pg "pet-donor-connect/internal/adapters/storage/postgres"
	"pet-donor-connect/internal/domain/connections"
	"pet-donor-connect/internal/domain/matches"
	"pet-donor-connect/internal/domain/notifications"
	"pet-donor-connect/internal/domain/pets"
	"pet-donor-connect/internal/domain/proximity"
	"pet-donor-connect/internal/domain/users"
	"pet-donor-connect/internal/middleware"
	"pet-donor-connect/internal/observability"
	"pet-donor-connect/internal/platform/logger"
	"pet-donor-connect/internal/ports/auth"
	"pet-donor-connect/internal/ports/geocode"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Geocoder para el mapa de donantes. Puede ser nil: las entidades
	// sin coordenadas guardadas simplemente no aparecen.
	Geocoder geocode.Geocoder

	Log logger.Logger

	// Radio default de /nearby/pets cuando el cliente no manda uno.
	DefaultRadiusKm float64
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(observability.Instrument)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	var (
		petRepo          pets.Repository
		userRepo         users.Repository
		notificationRepo notifications.Repository
		connectionRepo   connections.Repository
		matchRepo        matches.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		userRepo = pg.NewUsersRepo(db)
		notificationRepo = pg.NewNotificationsRepo(db)
		connectionRepo = pg.NewConnectionsRepo(db)
		matchRepo = pg.NewMatchesRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		userRepo = mem.NewUserRepo()
		notificationRepo = mem.NewNotificationRepo()
		connectionRepo = mem.NewConnectionRepo()
		matchRepo = mem.NewMatchRepo()
	}

	// Services por módulo
	notificationsSvc := notifications.NewService(notificationRepo)
	petsSvc := pets.NewService(petRepo)
	proximitySvc := proximity.NewService(petsSvc, opts.Geocoder, log)
	connectionsSvc := connections.NewService(connectionRepo, notificationsSvc)
	matchesSvc := matches.NewService(matchRepo, notificationsSvc, connectionsSvc, userRepo, petsSvc, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	proximity.RegisterRoutes(r, proximitySvc, opts.DefaultRadiusKm)
	connections.RegisterRoutes(r, connectionsSvc)
	matches.RegisterRoutes(r, matchesSvc)
	notifications.RegisterRoutes(r, notificationsSvc)

	return r
}
