package components

import (
	"rentens-market/internal/handler"
	"rentens-market/internal/handler/api"
	"rentens-market/internal/handler/middleware"
	"rentens-market/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewListingHandler,
		api.NewRentalHandler,
		api.NewExtensionHandler,
		api.NewFeeHandler,
		api.NewMarketHandler,
		func(s *jwt.Service) middleware.TokenValidator { return s },
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	listing *api.ListingHandler,
	rental *api.RentalHandler,
	extension *api.ExtensionHandler,
	feeHandler *api.FeeHandler,
	market *api.MarketHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:      auth,
		Listing:   listing,
		Rental:    rental,
		Extension: extension,
		Fee:       feeHandler,
		Market:    market,
	}
}
