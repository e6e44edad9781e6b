package components

import (
	"rentens-market/internal/pkg/clock"
	"rentens-market/internal/usecase/commands"
	"rentens-market/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewListingCommands,
		commands.NewExtensionCommands,
		newRentalCommands,
		newFeeCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewMarketQueries,
	),
)

func newRentalCommands(
	marketStore commands.MarketStore,
	registryClient commands.RegistryClient,
	ledger commands.PaymentLedger,
	receipts commands.ReceiptIssuer,
	principals Principals,
	clk clock.Clock,
) commands.RentalCommands {
	return commands.NewRentalCommands(marketStore, registryClient, ledger, receipts, principals.Escrow, clk)
}

func newFeeCommands(
	marketStore commands.MarketStore,
	principals Principals,
	clk clock.Clock,
) commands.FeeCommands {
	return commands.NewFeeCommands(marketStore, principals.Administrator, clk)
}
