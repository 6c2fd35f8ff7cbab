package router

import (
	"database/sql"
	"net/http"

	mem "github.com/weijenchou/dogdietlinebot/internal/adapters/storage/memory"
	pg "github.com/weijenchou/dogdietlinebot/internal/adapters/storage/postgres"
	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
	"github.com/weijenchou/dogdietlinebot/internal/middleware"
	"github.com/weijenchou/dogdietlinebot/internal/platform/logger"
	"github.com/weijenchou/dogdietlinebot/internal/platform/ownerlock"
	"github.com/weijenchou/dogdietlinebot/internal/ports/auth"
	"github.com/weijenchou/dogdietlinebot/internal/ports/breeds"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/weijenchou/dogdietlinebot/docs" // registra la doc de swagger
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Servicio y máquina ya armados (cli). Si faltan, se arman aquí.
	Pets    *pets.Service
	Machine *conversation.Machine
	// Locks debe ser el mismo que usa Machine.
	Locks *ownerlock.Locker

	// Solo si Pets es nil: Repo gana sobre DB; sin ninguno, in-memory.
	Repo   pets.Repository
	DB     *sql.DB
	Breeds breeds.Lookup

	WebhookSecret string
	MaxImageBytes int64
	Log           logger.Logger
}

func NewRouter(opts Options) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(opts.Log))
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	locks := opts.Locks
	if locks == nil {
		locks = ownerlock.New()
	}

	petsSvc := opts.Pets
	if petsSvc == nil {
		repo := opts.Repo
		switch {
		case repo != nil:
		case opts.DB != nil:
			repo = pg.NewPetsRepo(opts.DB)
		default:
			repo = mem.NewPetRepo()
		}
		petsSvc = pets.NewService(repo, opts.Breeds)
	}

	machine := opts.Machine
	if machine == nil {
		m, err := conversation.NewMachine(conversation.Deps{
			Profiles: petsSvc,
			Locks:    locks,
			Breeds:   opts.Breeds,
			Log:      opts.Log,
		})
		if err != nil {
			return nil, err
		}
		machine = m
	}

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc, locks)

	r.Group(func(g chi.Router) {
		g.Use(middleware.VerifySignature(opts.WebhookSecret))
		// Sin firma de canal, /turns exige el mismo token que /pets.
		if opts.AuthVerifier != nil && opts.WebhookSecret == "" {
			g.Use(middleware.RequireClaims)
		}
		conversation.RegisterRoutes(g, machine, opts.MaxImageBytes)
	})

	return r, nil
}
