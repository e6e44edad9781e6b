package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rentens-market/internal/domain/principal"
	"rentens-market/internal/handler/api"
	"rentens-market/internal/handler/middleware"
	"rentens-market/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth      *api.AuthHandler
	Listing   *api.ListingHandler
	Rental    *api.RentalHandler
	Extension *api.ExtensionHandler
	Fee       *api.FeeHandler
	Market    *api.MarketHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			if cfg.Market.DevTokens {
				addRoutes(auth, []route{
					{Method: http.MethodPost, Path: "/token", Handler: handlers.Auth.IssueToken},
				})
			}

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: handlers.Auth.Me},
			})
		}

		market := apiGroup.Group("/market")
		{
			addRoutes(market, []route{
				{Method: http.MethodGet, Path: "/listings", Handler: handlers.Market.GetActiveListings},
				{Method: http.MethodGet, Path: "/listings/:name", Handler: handlers.Market.GetListing},
				{Method: http.MethodGet, Path: "/rentals/:name", Handler: handlers.Market.GetRental},
				{Method: http.MethodGet, Path: "/extensions/:name", Handler: handlers.Market.GetOffer},
				{Method: http.MethodGet, Path: "/royalty", Handler: handlers.Market.GetRoyalty},
				{Method: http.MethodGet, Path: "/events/:name", Handler: handlers.Market.GetEvents},
			})
		}

		listings := apiGroup.Group("/listings")
		listings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(listings, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Listing.CreateListing},
				{Method: http.MethodDelete, Path: "/:name", Handler: handlers.Listing.CancelListing},
			})
		}

		rentals := apiGroup.Group("/rentals")
		rentals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rentals, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Rental.Rent},
				{Method: http.MethodPost, Path: "/:name/regain", Handler: handlers.Rental.RegainAsOwner},
				{Method: http.MethodPost, Path: "/:name/return", Handler: handlers.Rental.RegainAsRenter},
				{Method: http.MethodPost, Path: "/receipt/transfer", Handler: handlers.Rental.TransferReceipt},
			})
		}

		extensions := apiGroup.Group("/extensions")
		extensions.Use(authMiddleware.RequireAuth())
		{
			addRoutes(extensions, []route{
				{Method: http.MethodPost, Path: "", Handler: handlers.Extension.CreateOffer},
				{Method: http.MethodPost, Path: "/accept", Handler: handlers.Extension.AcceptOffer},
				{Method: http.MethodDelete, Path: "/:name", Handler: handlers.Extension.CancelOffer},
			})
		}

		fees := apiGroup.Group("/fees")
		fees.Use(authMiddleware.RequireAuth())
		fees.Use(authMiddleware.RequireRoleAtLeast(principal.RoleAdmin))
		{
			addRoutes(fees, []route{
				{Method: http.MethodPut, Path: "", Handler: handlers.Fee.SetFee},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
