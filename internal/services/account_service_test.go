package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/validator"
	"github.com/pratik-mahalle/streamvault/internal/testutil"
)

var refNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)

func newAccountService(repo account.Repository, rules account.Rules) account.Service {
	return NewAccountService(repo, validator.New(), rules, testutil.NewTestLogger(), WithClock(testutil.FixedClock(refNow)))
}

func strPtr(s string) *string { return &s }

func TestAccountService_Create(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	service := newAccountService(mockRepo, account.Rules{})

	tests := []struct {
		name    string
		input   account.Input
		wantErr bool
	}{
		{
			name: "valid account",
			input: account.Input{
				ClientName:     "Ana",
				Platform:       "Netflix",
				AccountType:    "Perfil",
				DeliveryDate:   "2024-03-01",
				ExpirationDate: "2024-04-01",
				Credentials:    json.RawMessage(`{"email":"ana@example.com"}`),
				Price:          json.RawMessage(`"7.99"`),
			},
		},
		{
			name: "free text credentials",
			input: account.Input{
				ClientName:     "Bruno",
				Platform:       "Spotify",
				AccountType:    "Cuenta completa",
				DeliveryDate:   "2024-03-01",
				ExpirationDate: "2024-04-01",
				Credentials:    json.RawMessage(`"user bruno / pass 1234"`),
			},
		},
		{
			name: "missing client name",
			input: account.Input{
				Platform:       "Netflix",
				AccountType:    "Perfil",
				DeliveryDate:   "2024-03-01",
				ExpirationDate: "2024-04-01",
			},
			wantErr: true,
		},
		{
			name: "malformed date",
			input: account.Input{
				ClientName:     "Carla",
				Platform:       "Netflix",
				AccountType:    "Perfil",
				DeliveryDate:   "03/01/2024",
				ExpirationDate: "2024-04-01",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := service.Create(context.Background(), tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.IsValidation(err) {
					t.Errorf("Create() error = %v, want validation error", err)
				}
				return
			}
			if acc.ID == 0 || acc.Status != account.StatusActive {
				t.Errorf("Create() = %+v", acc)
			}
		})
	}

	if len(mockRepo.Accounts) != 2 {
		t.Errorf("store holds %d accounts, want 2", len(mockRepo.Accounts))
	}
}

func TestAccountService_Create_StoreFailure(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	mockRepo.CreateError = errors.DatabaseError("Failed to create account", fmt.Errorf("connection refused"))
	service := newAccountService(mockRepo, account.Rules{})

	_, err := service.Create(context.Background(), account.Input{
		ClientName: "Ana", Platform: "Netflix", AccountType: "Perfil",
		DeliveryDate: "2024-03-01", ExpirationDate: "2024-04-01",
	})
	if !errors.IsDatabase(err) {
		t.Errorf("Create() error = %v, want database error", err)
	}
}

func TestAccountService_List(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	today := account.DateOf(refNow)
	mockRepo.Seed(
		testutil.NewAccount("Ana", "Netflix", today.AddDays(-1)),  // expired
		testutil.NewAccount("Bruno", "Netflix", today.AddDays(3)), // expiring
		testutil.NewAccount("Carla", "Spotify", today.AddDays(60)),
	)
	service := newAccountService(mockRepo, account.Rules{})
	ctx := context.Background()

	tests := []struct {
		name   string
		filter account.Filter
		want   []string
	}{
		{"no filter", account.Filter{}, []string{"Ana", "Bruno", "Carla"}},
		{"all sentinel", account.Filter{Platform: account.FilterAll, Status: account.FilterAll}, []string{"Ana", "Bruno", "Carla"}},
		{"platform", account.Filter{Platform: "Netflix"}, []string{"Ana", "Bruno"}},
		{"lifecycle expiring", account.Filter{Lifecycle: account.LifecycleExpiring}, []string{"Bruno"}},
		{"lifecycle and platform", account.Filter{Platform: "Netflix", Lifecycle: account.LifecycleExpired}, []string{"Ana"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("List() = %d accounts, want %v", len(got), tt.want)
			}
			for i, a := range got {
				if a.ClientName != tt.want[i] {
					t.Errorf("List()[%d] = %s, want %s", i, a.ClientName, tt.want[i])
				}
			}
		})
	}
}

func TestAccountService_List_AsOf(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	today := account.DateOf(refNow)
	mockRepo.Seed(testutil.NewAccount("Bruno", "Netflix", today.AddDays(3)))
	service := newAccountService(mockRepo, account.Rules{})
	ctx := context.Background()

	later := refNow.AddDate(0, 0, 10)
	got, err := service.List(ctx, account.Filter{Lifecycle: account.LifecycleExpired, AsOf: later})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List() as of %s = %d accounts, want 1 expired", later.Format("2006-01-02"), len(got))
	}

	got, err = service.List(ctx, account.Filter{Lifecycle: account.LifecycleExpired})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() on the service clock = %d expired accounts, want 0", len(got))
	}
}

func TestAccountService_Statistics(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	today := account.DateOf(refNow)
	mockRepo.Seed(
		testutil.NewAccount("Ana", "Netflix", today.AddDays(-10)),
		testutil.NewAccount("Bruno", "Netflix", today.AddDays(1)),
		testutil.NewAccount("Carla", "Spotify", today.AddDays(7)),
		testutil.NewAccount("Dani", "Spotify", today.AddDays(8)),
		testutil.NewAccount("Eva", "HBO Max", today.AddDays(365)),
	)
	service := newAccountService(mockRepo, account.Rules{})

	stats, err := service.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}

	want := account.Statistics{Total: 5, Active: 2, Expiring: 2, Expired: 1}
	if stats != want {
		t.Errorf("Statistics() = %+v, want %+v", stats, want)
	}
}

func TestAccountService_Statistics_StoreFailure(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	mockRepo.ListError = errors.DatabaseError("Failed to list accounts", fmt.Errorf("timeout"))
	service := newAccountService(mockRepo, account.Rules{})

	if _, err := service.Statistics(context.Background()); err == nil {
		t.Error("Statistics() expected error when the store is down")
	}
}

func TestAccountService_Update(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	a := testutil.NewAccount("Ana", "Netflix", account.NewDate(2024, 4, 1))
	mockRepo.Seed(a)
	service := newAccountService(mockRepo, account.Rules{})
	ctx := context.Background()

	got, err := service.Update(ctx, a.ID, account.UpdateInput{
		Platform: strPtr("Disney+"),
		Notes:    json.RawMessage(`"renewed"`),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Platform != "Disney+" || got.Notes == nil || *got.Notes != "renewed" {
		t.Errorf("Update() = %+v", got)
	}
	if got.ClientName != "Ana" {
		t.Errorf("untouched ClientName changed to %q", got.ClientName)
	}

	if _, err := service.Update(ctx, 999, account.UpdateInput{Platform: strPtr("x")}); !errors.IsNotFound(err) {
		t.Errorf("Update(missing) error = %v, want not found", err)
	}

	if _, err := service.Update(ctx, a.ID, account.UpdateInput{DeliveryDate: strPtr("yesterday")}); !errors.IsValidation(err) {
		t.Errorf("Update(bad date) error = %v, want validation error", err)
	}
}

func TestAccountService_DateOrderRule(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	a := testutil.NewAccount("Ana", "Netflix", account.NewDate(2024, 4, 1)) // delivered 2024-03-02
	mockRepo.Seed(a)
	ctx := context.Background()

	lenient := newAccountService(mockRepo, account.Rules{})
	if _, err := lenient.Update(ctx, a.ID, account.UpdateInput{ExpirationDate: strPtr("2024-01-01")}); err != nil {
		t.Errorf("lenient Update() error = %v", err)
	}

	strict := newAccountService(mockRepo, account.Rules{EnforceDateOrder: true})
	_, err := strict.Update(ctx, a.ID, account.UpdateInput{ExpirationDate: strPtr("2024-02-01")})
	if !errors.IsValidation(err) {
		t.Errorf("strict Update() error = %v, want validation error", err)
	}

	_, err = strict.Create(ctx, account.Input{
		ClientName: "Bruno", Platform: "Netflix", AccountType: "Perfil",
		DeliveryDate: "2024-05-01", ExpirationDate: "2024-04-01",
	})
	if !errors.IsValidation(err) {
		t.Errorf("strict Create() error = %v, want validation error", err)
	}
}

func TestAccountService_Delete(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	a := testutil.NewAccount("Ana", "Netflix", account.NewDate(2024, 4, 1))
	mockRepo.Seed(a)
	service := newAccountService(mockRepo, account.Rules{})
	ctx := context.Background()

	if err := service.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := service.GetByID(ctx, a.ID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v, want not found", err)
	}
	if err := service.Delete(ctx, a.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete(missing) error = %v, want not found", err)
	}
}

func TestAccountService_StoredStatusIsNotLifecycle(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	a := testutil.NewAccount("Ana", "Netflix", account.DateOf(refNow).AddDays(-30))
	mockRepo.Seed(a)
	service := newAccountService(mockRepo, account.Rules{})

	if _, err := service.Statistics(context.Background()); err != nil {
		t.Fatal(err)
	}
	got, _ := service.GetByID(context.Background(), a.ID)
	if got.Status != account.StatusActive {
		t.Errorf("classification rewrote stored status to %q", got.Status)
	}
	if got.Lifecycle(service.Now()) != account.LifecycleExpired {
		t.Errorf("Lifecycle() = %v, want expired", got.Lifecycle(service.Now()))
	}
}
