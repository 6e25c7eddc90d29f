package cmd

import (
	"log/slog"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the application's use cases to their infrastructure.
// Command handlers get transactional unit of work factories, query handlers
// read through the raw database handle, and both share the same event
// publisher and settlement engine.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	engine     services.SettlementEngine
	logger     *slog.Logger
}

// NewCompositionRoot builds the root from configuration. The publisher may be
// nil when event publishing is disabled. Fails when the configured collateral
// policy is unknown.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) (CompositionRoot, error) {
	policy, err := services.CollateralPolicyFromString(config.SettlementCollateralPolicy)
	if err != nil {
		return CompositionRoot{}, err
	}

	engine, err := services.NewSettlementEngine(policy)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		engine:     engine,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	var f commands.BidUoWFactory = FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitBidCommandHandler(f)
}

func (c *CompositionRoot) CreateSelectBidCommandHandler() commands.SelectBidCommandHandler {
	var f commands.BidUoWFactory = FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSelectBidCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateDepositEscrowCommandHandler() commands.DepositEscrowCommandHandler {
	var f commands.EscrowUoWFactory = FuncEscrowUoWFactory(func() commands.EscrowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDepositEscrowCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.EscrowUoWFactory = FuncEscrowUoWFactory(func() commands.EscrowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.engine, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSubmitReviewCommandHandler() commands.SubmitReviewCommandHandler {
	var f commands.ReviewUoWFactory = FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitReviewCommandHandler(f)
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcileOrdersCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderBidsQueryHandler() queries.GetOrderBidsQueryHandler {
	return queries.NewGetOrderBidsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWalletStatementQueryHandler() queries.GetWalletStatementQueryHandler {
	return queries.NewGetWalletStatementQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBidUoWFactory func() commands.BidUoW

func (f FuncBidUoWFactory) Create() commands.BidUoW {
	return f()
}

type FuncEscrowUoWFactory func() commands.EscrowUoW

func (f FuncEscrowUoWFactory) Create() commands.EscrowUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}
