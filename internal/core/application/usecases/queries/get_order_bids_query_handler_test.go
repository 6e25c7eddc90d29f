package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/bidrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderBidsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderBidsQueryHandler
	bidRepo   *bidrepo.GormBidRepository
}

func (suite *GetOrderBidsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&bidrepo.BidDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderBidsQueryHandler(db)
	suite.bidRepo = bidrepo.NewGormBidRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderBidsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderBidsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE bids CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderBidsQueryHandlerTestSuite) TestHandle_NoBids_ReturnsEmptySlice() {
	query, err := queries.NewGetOrderBidsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOrderBidsQueryHandlerTestSuite) TestHandle_BidsSortedCheapestFirst() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	expensive := suite.addBid(ctx, orderID, "Slow Couriers Ltd", 1200)
	cheap := suite.addBid(ctx, orderID, "Quick Courier", 700)
	middle := suite.addBid(ctx, orderID, "City Runners", 900)

	query, err := queries.NewGetOrderBidsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(cheap.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(expensive.ID(), result[2].ID)

	suite.Equal("Quick Courier", result[0].CourierName)
	suite.Equal(cheap.CourierID(), result[0].CourierID)
	suite.Equal(int64(700), result[0].Amount)
}

func (suite *GetOrderBidsQueryHandlerTestSuite) TestHandle_OtherOrdersBidsAreNotListed() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	mine := suite.addBid(ctx, orderID, "Quick Courier", 700)
	suite.addBid(ctx, kernel.NewUUID(), "City Runners", 500)

	query, err := queries.NewGetOrderBidsQuery(orderID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
}

func (suite *GetOrderBidsQueryHandlerTestSuite) TestHandle_NotConstructedQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetOrderBidsQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
}

// addBid persists a courier's bid on the given order.
func (suite *GetOrderBidsQueryHandlerTestSuite) addBid(
	ctx context.Context, orderID kernel.UUID, courierName string, amount int64,
) *bid.Bid {
	bidAmount, err := kernel.NewMoney(amount)
	suite.Require().NoError(err)

	newBid, err := bid.NewBid(kernel.NewUUID(), orderID, kernel.NewUUID(), courierName, bidAmount)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.bidRepo.Add(ctx, newBid))
	return newBid
}

func TestGetOrderBidsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderBidsQueryHandlerTestSuite))
}
