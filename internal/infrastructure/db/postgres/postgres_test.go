package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/engnet/backoffice-api/internal/core/domain"
)

// openTestDB connects to TEST_DATABASE_URL and empties the tables. Tests
// are skipped when the variable is unset or the server is unreachable.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := Connect(ctx, Config{DSN: dsn, Timeout: 3 * time.Second})
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.SQL.ExecContext(ctx, "TRUNCATE users, clients, refunds"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return db
}

func newTestUser(email string) *domain.User {
	now := time.Now().UTC()
	return &domain.User{
		ID:           uuid.NewString(),
		Name:         "Ana",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestRefund(userID, amount string, status domain.RefundStatus) *domain.Refund {
	now := time.Now().UTC()
	return &domain.Refund{
		ID:          uuid.NewString(),
		Description: "Taxi",
		Amount:      decimal.RequireFromString(amount),
		Status:      status,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if _, err := repo.Create(ctx, newTestUser("ana@example.com")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := repo.Create(ctx, newTestUser("ana@example.com")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	other, err := repo.Create(ctx, newTestUser("bo@example.com"))
	if err != nil {
		t.Fatalf("second user: %v", err)
	}
	other.Email = "ana@example.com"
	if _, err := repo.Update(ctx, other); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists on update, got %v", err)
	}
}

func TestUserRepository_ConcurrentCreateSameEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	const attempts = 2
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		conflict int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), newTestUser("race@example.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, domain.ErrUserExists):
				conflict++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 || conflict != attempts-1 {
		t.Fatalf("expected exactly one create, got created=%d conflict=%d", created, conflict)
	}
}

func TestRefundRepository_AmountOverflow(t *testing.T) {
	db := openTestDB(t)
	repo := NewRefundRepository(db)

	_, err := repo.Create(context.Background(), newTestRefund(uuid.NewString(), "100000000.00", domain.RefundPending))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestStatsRepository_Aggregates(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)
	refunds := NewRefundRepository(db)
	clients := NewClientRepository(db)
	stats := NewStatsRepository(db)

	owner, err := users.Create(ctx, newTestUser("owner@example.com"))
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	if _, err := users.Create(ctx, newTestUser("idle@example.com")); err != nil {
		t.Fatalf("create idle user: %v", err)
	}

	for _, r := range []*domain.Refund{
		newTestRefund(owner.ID, "10.50", domain.RefundPending),
		newTestRefund(owner.ID, "20.00", domain.RefundApproved),
		newTestRefund(owner.ID, "5.25", domain.RefundApproved),
		// owner no longer exists
		newTestRefund(uuid.NewString(), "1.00", domain.RefundRejected),
	} {
		if _, err := refunds.Create(ctx, r); err != nil {
			t.Fatalf("create refund: %v", err)
		}
	}

	cnpj, blank := "12345678000190", "              "
	now := time.Now().UTC()
	for _, c := range []*domain.Client{
		{ID: uuid.NewString(), CompanyName: "Acme", ContactPerson: "Wile", CNPJ: &cnpj, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), CompanyName: "Beta", ContactPerson: "Bo", CNPJ: &blank, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.NewString(), CompanyName: "Gamma", ContactPerson: "Gil", CreatedAt: now, UpdatedAt: now},
	} {
		if _, err := clients.Create(ctx, c); err != nil {
			t.Fatalf("create client: %v", err)
		}
	}

	counts, err := stats.RefundCounts(ctx)
	if err != nil {
		t.Fatalf("refund counts: %v", err)
	}
	if counts.Total != 4 || !counts.Sum.Equal(decimal.RequireFromString("36.75")) {
		t.Fatalf("unexpected totals: %+v", counts)
	}
	if counts.Count(domain.RefundPending) != 1 || counts.Count(domain.RefundApproved) != 2 || counts.Count(domain.RefundRejected) != 1 {
		t.Fatalf("unexpected status counts: %+v", counts.ByStatus)
	}

	us, err := stats.UserStats(ctx)
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}
	if us.TotalUsers != 2 || us.ActiveUsers != 1 || us.UsersWithoutRefunds != 1 {
		t.Fatalf("unexpected user stats: %+v", us)
	}

	cs, err := stats.ClientStats(ctx)
	if err != nil {
		t.Fatalf("client stats: %v", err)
	}
	if cs.TotalClients != 3 || cs.ClosedContracts != 1 || cs.TotalWithRefunds != 0 {
		t.Fatalf("unexpected client stats: %+v", cs)
	}
}
