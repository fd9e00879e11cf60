package api

import (
	"net/http"
	"time"

	"postboard/internal/api/handler"
	"postboard/internal/api/middleware"
	"postboard/internal/app/service"
	"postboard/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	postService *service.PostService,
	tokens *security.TokenManager,
	startedAt time.Time,
) http.Handler {
	r := chi.NewRouter()

	// Base middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the Authorization: Bearer header when present and puts the
	// claims in context. Rejection happens in the Authenticator, so public
	// routes stay reachable without a token.
	r.Use(jwtauth.Verifier(tokens.Auth()))

	authenticate := middleware.Authenticator(authService)

	appHandler := handler.NewAppHandler(startedAt)
	appHandler.RegisterRoutes(r)

	authHandler := handler.NewAuthHandler(authService)
	r.Route("/auth", func(auth chi.Router) {
		authHandler.RegisterRoutes(auth, authenticate)
	})

	userHandler := handler.NewUserHandler(userService)
	r.Route("/users", func(users chi.Router) {
		userHandler.RegisterRoutes(users, authenticate)
	})

	postHandler := handler.NewPostHandler(postService)
	r.Route("/posts", func(posts chi.Router) {
		postHandler.RegisterRoutes(posts, authenticate)
	})

	return r
}
