package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogger-web/internal/config"
	"blogger-web/internal/handler"
	"blogger-web/internal/metrics"
	"blogger-web/internal/middleware"
)

type Handlers struct {
	Site    *handler.SiteHandler
	Auth    *handler.AuthHandler
	Blog    *handler.BlogHandler
	Post    *handler.PostHandler
	Comment *handler.CommentHandler
	User    *handler.UserHandler
	Audit   *handler.AuditHandler
}

func New(cfg *config.Config, sessions *middleware.SessionMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)
	access := middleware.NewAccessMiddleware("/login", http.HandlerFunc(h.Site.Forbidden))

	r.Use(middleware.Recovery(http.HandlerFunc(h.Site.Internal)))
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Site.Health)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Group(func(pages chi.Router) {
		pages.Use(middleware.Timeout(cfg.RequestTimeout))
		pages.Use(sessions.Handler)

		pages.NotFound(h.Site.NotFound)

		pages.Get("/", h.Blog.List)
		pages.Get("/posts", h.Post.List)
		pages.Get("/blogs/{id}", h.Blog.Show)
		pages.Get("/posts/{id}", h.Post.Show)
		pages.Get("/info", h.Site.Info)

		pages.Get("/login", h.Auth.LoginForm)
		pages.Post("/login", h.Auth.Login)
		pages.Post("/logout", h.Auth.Logout)
		pages.Get("/registration", h.Auth.RegistrationForm)
		pages.Post("/registration", h.Auth.Register)
		pages.Get("/registration-confirmation", h.Auth.Confirm)

		pages.Group(func(user chi.Router) {
			user.Use(access.RequireAuth)

			user.Get("/account", h.Auth.Account)
			user.Post("/posts/{id}/comments", h.Post.AddComment)
			user.Post("/comments/{id}/edit", h.Comment.Update)
			user.Post("/comments/{id}/delete", h.Comment.Delete)
		})

		pages.Group(func(admin chi.Router) {
			admin.Use(access.RequireAdmin)

			admin.Get("/blogs/new", h.Blog.New)
			admin.Post("/blogs/new", h.Blog.Create)
			admin.Get("/blogs/{id}/edit", h.Blog.Edit)
			admin.Post("/blogs/{id}/edit", h.Blog.Update)
			admin.Post("/blogs/{id}/delete", h.Blog.Delete)

			admin.Get("/blogs/{id}/posts/new", h.Post.New)
			admin.Post("/blogs/{id}/posts/new", h.Post.Create)
			admin.Get("/posts/new", h.Post.NewStandalone)
			admin.Post("/posts/new", h.Post.CreateStandalone)
			admin.Get("/posts/{id}/edit", h.Post.Edit)
			admin.Post("/posts/{id}/edit", h.Post.Update)
			admin.Post("/posts/{id}/delete", h.Post.Delete)

			admin.Get("/users", h.User.List)
			admin.Get("/users/new", h.User.New)
			admin.Post("/users/new", h.User.Create)
			admin.Post("/users/{id}/role", h.User.UpdateRole)
			admin.Post("/users/{id}/delete", h.User.Delete)

			admin.Get("/audit", h.Audit.List)
		})
	})

	return r
}
