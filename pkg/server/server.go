package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/autocrud/pkg/config"
	"github.com/doodlesbykumbi/autocrud/pkg/provision"
	"github.com/doodlesbykumbi/autocrud/pkg/rbac"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
	"github.com/doodlesbykumbi/autocrud/pkg/server/middleware"
	"github.com/doodlesbykumbi/autocrud/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/autocrud/pkg/server/store/gorm"
	"github.com/doodlesbykumbi/autocrud/pkg/token"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.AutocrudConfig

	Registry       *registry.Registry
	ModelsDir      *registry.Dir
	Publisher      *registry.Publisher
	Evaluator      *rbac.Evaluator
	Tokens         *token.Issuer
	Authenticators *authenticator.Registry
	AuthMiddleware *middleware.TokenAuthenticator

	RecordsStore    store.RecordsStore
	UsersStore      store.UsersStore
	ModelFilesStore store.ModelFilesStore
	HealthStore     store.HealthStore

	srv *http.Server
}

func NewServer(
	cfg *config.AutocrudConfig,
	db *gorm.DB,
	host string,
	port string,
) *Server {
	router := mux.NewRouter()

	usersStore := gormstore.NewUsersStore(db)
	healthStore := gormstore.NewHealthStore(db)
	modelFilesStore := gormstore.NewModelFilesStore(db)

	authenticators := authenticator.NewRegistry()
	authenticators.Register(authn.NewPasswordAuthenticator(usersStore, healthStore))
	_ = authenticators.Enable(authn.Name)

	tokens := token.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenLifetime())

	reg := registry.New()
	dir := registry.NewDir(cfg.ModelsDir)

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSAllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, cors(router)),
		Addr:    net.JoinHostPort(host, port),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router: router,
		DB:     db,
		Config: cfg,

		Registry:       reg,
		ModelsDir:      dir,
		Publisher:      registry.NewPublisher(reg, provision.NewGormProvisioner(db), modelFilesStore, dir),
		Evaluator:      rbac.NewEvaluator(cfg.DefaultRole, cfg.OwnerScopedReads),
		Tokens:         tokens,
		Authenticators: authenticators,
		AuthMiddleware: middleware.NewTokenAuthenticator(tokens, cfg.MockAuth),

		RecordsStore:    gormstore.NewRecordsStore(db),
		UsersStore:      usersStore,
		ModelFilesStore: modelFilesStore,
		HealthStore:     healthStore,

		srv: srv,
	}
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// StartWithListener serves on an existing listener
func (s *Server) StartWithListener(l net.Listener) error {
	return s.srv.Serve(l)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
