package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/metrics"
)

const accountsTable = "streaming_accounts"

const accountColumns = `id, client_name, platform, account_type, delivery_date, expiration_date,
	credentials, notes, price, status, created_at, updated_at`

// AccountRepository implements account.Repository
type AccountRepository struct {
	db      *sql.DB
	dialect dialect
	now     func() time.Time
}

// NewAccountRepository creates a new account repository for the given driver
func NewAccountRepository(db *sql.DB, driver string) *AccountRepository {
	return &AccountRepository{
		db:      db,
		dialect: dialect(driver),
		now:     time.Now,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*account.Account, error) {
	var a account.Account
	var notes sql.NullString

	err := row.Scan(
		&a.ID, &a.ClientName, &a.Platform, &a.AccountType, &a.DeliveryDate, &a.ExpirationDate,
		&a.Credentials, &notes, &a.Price, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		a.Notes = &notes.String
	}
	return &a, nil
}

func (r *AccountRepository) observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, accountsTable, time.Since(start))
}

// List retrieves accounts matching the filter, oldest first
func (r *AccountRepository) List(ctx context.Context, filter account.Filter) ([]*account.Account, error) {
	defer r.observe("list", time.Now())

	var where []string
	var args []interface{}

	// Set when the search has to be applied to the scanned rows
	var search account.Filter
	if filter.Search != "" {
		if clause := r.dialect.searchClause(); clause != "" {
			where = append(where, clause)
			args = append(args, containsPattern(filter.Search))
		} else {
			search.Search = filter.Search
		}
	}
	if filter.Platform != "" {
		where = append(where, "platform = ?")
		args = append(args, filter.Platform)
	}
	if filter.AccountType != "" {
		where = append(where, "account_type = ?")
		args = append(args, filter.AccountType)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}

	query := "SELECT " + accountColumns + " FROM " + accountsTable
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(query), args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []*account.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan account", err)
		}
		if !search.Matches(a) {
			continue
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate accounts", err)
	}

	return accounts, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	defer r.observe("get", time.Now())

	query := "SELECT " + accountColumns + " FROM " + accountsTable + " WHERE id = ?"

	a, err := scanAccount(r.db.QueryRowContext(ctx, r.dialect.rebind(query), id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Account")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get account", err)
	}

	return a, nil
}

// Create inserts a new account and assigns its ID and timestamps
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	defer r.observe("create", time.Now())

	now := r.now().UTC()
	if a.Status == "" {
		a.Status = account.StatusActive
	}

	query := `
		INSERT INTO streaming_accounts (client_name, platform, account_type, delivery_date, expiration_date,
			credentials, notes, price, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := []interface{}{
		a.ClientName, a.Platform, a.AccountType, a.DeliveryDate, a.ExpirationDate,
		a.Credentials, a.Notes, a.Price, a.Status, now, now,
	}

	if r.dialect.supportsLastInsertID() {
		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return errors.DatabaseError("Failed to create account", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return errors.DatabaseError("Failed to get account ID", err)
		}
		a.ID = id
	} else {
		err := r.db.QueryRowContext(ctx, r.dialect.rebind(query+" RETURNING id"), args...).Scan(&a.ID)
		if err != nil {
			return errors.DatabaseError("Failed to create account", err)
		}
	}

	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

// Update applies the patch and returns the stored account
func (r *AccountRepository) Update(ctx context.Context, id int64, patch account.Patch) (*account.Account, error) {
	defer r.observe("update", time.Now())

	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.ClientName != nil {
		set("client_name", *patch.ClientName)
	}
	if patch.Platform != nil {
		set("platform", *patch.Platform)
	}
	if patch.AccountType != nil {
		set("account_type", *patch.AccountType)
	}
	if patch.DeliveryDate != nil {
		set("delivery_date", *patch.DeliveryDate)
	}
	if patch.ExpirationDate != nil {
		set("expiration_date", *patch.ExpirationDate)
	}
	if patch.Credentials != nil {
		set("credentials", *patch.Credentials)
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.Status != nil {
		set("status", *patch.Status)
	}
	set("updated_at", r.now().UTC())

	query := "UPDATE " + accountsTable + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, r.dialect.rebind(query), args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to update account", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return nil, errors.NotFound("Account")
	}

	return r.GetByID(ctx, id)
}

// Delete removes an account
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	defer r.observe("delete", time.Now())

	query := "DELETE FROM " + accountsTable + " WHERE id = ?"

	result, err := r.db.ExecContext(ctx, r.dialect.rebind(query), id)
	if err != nil {
		return errors.DatabaseError("Failed to delete account", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Account")
	}

	return nil
}

// Ping checks database connectivity
func (r *AccountRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.DatabaseError("Database unreachable", err)
	}
	return nil
}
