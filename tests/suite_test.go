package tests

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/internal/service"
	myValidator "github.com/me1610247/API-ecommerce/internal/validator"
	"github.com/me1610247/API-ecommerce/pkg/kafka"
	outbox "github.com/me1610247/API-ecommerce/pkg/outbox/repository"
	"github.com/me1610247/API-ecommerce/pkg/outbox/worker"
	"github.com/me1610247/API-ecommerce/pkg/testsuite"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type IntegrationTestSuite struct {
	testsuite.BaseSuite

	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository

	AuthService  service.AuthService
	CartService  service.CartService
	OrderService service.OrderService

	TestProducer    kafka.Producer
	OutboxProcessor *worker.OutboxProcessor
	workerCancel    context.CancelFunc
}

func (s *IntegrationTestSuite) SetupSuite() {
	if err := godotenv.Load("../.env"); err != nil {
		log.Println("no .env file found, relying on system envs")
	}

	if os.Getenv("ACCESS_SECRET") == "" {
		s.Require().NoError(os.Setenv("ACCESS_SECRET", "test-access-secret"))
	}
	if os.Getenv("REFRESH_SECRET") == "" {
		s.Require().NoError(os.Setenv("REFRESH_SECRET", "test-refresh-secret"))
	}

	s.SetupInfrastructure("../migrations")
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.workerCancel != nil {
		s.workerCancel()
	}
	s.TearDownInfrastructure()
}

func (s *IntegrationTestSuite) SetupTest() {
	if s.workerCancel != nil {
		s.workerCancel()
	}

	s.TruncateTable("users")
	s.TruncateTable("categories")
	s.TruncateTable("outbox")
	s.TruncateTable("processed_events")

	logger := zap.NewNop()

	s.UserRepo = repository.NewUserRepository(s.DbPool, logger)
	s.ProductRepo = repository.NewProductRepository(s.DbPool, logger)
	s.CategoryRepo = repository.NewCategoryRepository(s.DbPool, logger)
	s.CartRepo = repository.NewCartRepository(s.DbPool, logger)
	s.OrderRepo = repository.NewOrderRepository(s.DbPool, logger)
	outboxRepo := outbox.NewOutboxRepository(s.DbPool, logger)

	var err error
	s.TestProducer, err = kafka.NewProducer(s.KafkaBrokers)
	s.Require().NoError(err, "failed to create kafka producer")

	s.AuthService = service.NewAuthService(s.UserRepo, outboxRepo, s.DbPool, logger, myValidator.NewValidator())
	s.CartService = service.NewCartService(s.CartRepo, s.ProductRepo, logger)
	s.OrderService = service.NewOrderService(s.DbPool, logger, s.OrderRepo, s.CartRepo, s.UserRepo, outboxRepo)

	s.OutboxProcessor = worker.NewOutboxProcessor(s.DbPool, outboxRepo, s.TestProducer, logger)

	workerCtx, cancel := context.WithCancel(s.Ctx)
	s.workerCancel = cancel

	go s.OutboxProcessor.Start(workerCtx)
}

func (s *IntegrationTestSuite) registerUser(email string) *domain.User {
	user, err := s.AuthService.Register(s.Ctx, email, "secret123qwe", "Test User")
	s.Require().NoError(err)
	s.Require().NotNil(user)
	return user
}

func (s *IntegrationTestSuite) createProduct(name string, price int64) int64 {
	category := &domain.Category{Name: fmt.Sprintf("category-for-%s", name)}
	_, err := s.CategoryRepo.Create(s.Ctx, category)
	s.Require().NoError(err)

	id, err := s.ProductRepo.Create(s.Ctx, &domain.Product{
		Name:          name,
		Description:   "test product",
		Price:         price,
		StockQuantity: 100,
		CategoryID:    category.ID,
	})
	s.Require().NoError(err)
	return id
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
