package service

import (
	"sync"
	"testing"
	"time"

	"mall-pos/internal/repository"
	"mall-pos/internal/testutil"
	"mall-pos/pkg/jwt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordedEvent struct {
	MallID  uuid.UUID
	Payload map[string]interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(mallID uuid.UUID, payload map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{MallID: mallID, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i], _ = e.Payload["type"].(string)
	}
	return types
}

type fixture struct {
	db        *gorm.DB
	publisher *recordingPublisher

	malls        repository.MallRepository
	users        repository.UserRepository
	products     repository.ProductRepository
	transactions repository.TransactionRepository

	auth     AuthService
	staff    UserService
	catalog  CatalogService
	checkout CheckoutService
	reports  ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	logger := zap.NewNop()
	pub := &recordingPublisher{}

	f := &fixture{
		db:           db,
		publisher:    pub,
		malls:        repository.NewMallRepo(db),
		users:        repository.NewUserRepo(db),
		products:     repository.NewProductRepo(db),
		transactions: repository.NewTransactionRepo(db),
	}
	f.auth = NewAuthService(f.malls, f.users, jwt.NewManager("test-secret", time.Hour), logger)
	f.staff = NewUserService(f.users, logger)
	f.catalog = NewCatalogService(f.products, pub, logger)
	f.checkout = NewCheckoutService(f.products, f.transactions, db, pub, logger)
	f.reports = NewReportService(repository.NewReportRepo(testutil.NewSQLX(t, db)))
	return f
}
