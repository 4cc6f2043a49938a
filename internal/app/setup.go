// Package app contains the application setup for the SneakerHub service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/avlasov/sneakerhub/internal/config"
	ordersvc "github.com/avlasov/sneakerhub/internal/order/service"
	orderstore "github.com/avlasov/sneakerhub/internal/order/store"
	"github.com/avlasov/sneakerhub/internal/transport/rest"
	usersvc "github.com/avlasov/sneakerhub/internal/user/service"
	userstore "github.com/avlasov/sneakerhub/internal/user/store"
	"github.com/avlasov/sneakerhub/pkg/auth"
	"github.com/avlasov/sneakerhub/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	UserService  usersvc.UserService
	OrderService ordersvc.OrderService
	Tokens       *auth.Manager
	Logger       *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) *Dependencies {
	tokens := auth.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	return &Dependencies{
		UserService:  usersvc.NewService(userstore.NewPgStore(dbPool), tokens, logger),
		OrderService: ordersvc.NewService(orderstore.NewPgStore(dbPool), logger),
		Tokens:       tokens,
		Logger:       logger,
	}
}

// SetupHttpHandler initializes the router and routes. Also used by tests to
// exercise the full middleware chain.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	userHandler := rest.NewUserHandler(deps.UserService, deps.Logger)
	userHandler.RegisterRoutes(mux)

	orderHandler := rest.NewOrderHandler(deps.OrderService, deps.Logger)
	orderHandler.RegisterRoutes(mux, auth.Middleware(deps.Tokens, deps.Logger))
}

// SetupHttpServer creates and configures the HTTP server.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
