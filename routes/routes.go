package routes

import (
	"lunch-voting-api/handlers"
	"lunch-voting-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options are the route-level knobs that come from configuration.
type Options struct {
	// MediaRoot, when set, is served at MediaPath for locally stored menus.
	MediaRoot string
	MediaPath string
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.TokenIssuer, opts Options) {
	handlers.RegisterValidation()

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.MediaRoot != "" && opts.MediaPath != "" {
		r.Static(opts.MediaPath, opts.MediaRoot)
	}

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/registration/", h.Register)
		public.POST("/login/", h.Login)
		public.POST("/token/refresh/", h.RefreshToken)

		public.GET("/restaurants/", h.ListRestaurants)
		public.GET("/menu_list/", h.ListTodayMenus)
		public.GET("/results/", h.Results)

		public.GET("/state-machine/", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(tokens))
	{
		auth.GET("/profile/", h.GetProfile)
		auth.POST("/upload_menu/", h.UploadMenu)
		auth.GET("/vote/:menu_id/", h.Vote)
	}

	// ── Staff routes ───────────────────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired(tokens), middleware.StaffRequired())
	{
		staff.POST("/create_restaurant/", h.CreateRestaurant)
		staff.POST("/create_employee/", h.CreateEmployee)
	}
}
