package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"viralcast/database"
	"viralcast/models"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `
	id, platform, username, credential_mode,
	access_token, refresh_token, business_account_id, automation_session,
	is_active, posting_priority, max_daily_posts, daily_post_count,
	error_count, last_error, last_used, total_posts,
	created_at, updated_at
`

// AccountRepository implements the service.AccountRepository interface
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// NewAccountRepositoryWithTx creates a new account repository with a transaction
func NewAccountRepositoryWithTx(tx Queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT` + accountColumns + `FROM accounts WHERE id = $1`

	account, err := scanAccount(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}
	return account, nil
}

// GetEligibleAccounts returns all active accounts for a platform. Ranking
// and rate-limit filtering happen in the selector; this only applies the
// hard activity invariant.
func (r *AccountRepository) GetEligibleAccounts(ctx context.Context, platform models.Platform) ([]*models.Account, error) {
	query := `SELECT` + accountColumns + `
		FROM accounts
		WHERE platform = $1 AND is_active = TRUE
		ORDER BY posting_priority DESC, id`

	rows, err := r.q.Query(ctx, query, platform)
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible accounts for %s: %w", platform, err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// GetAll returns all accounts
func (r *AccountRepository) GetAll(ctx context.Context) ([]*models.Account, error) {
	query := `SELECT` + accountColumns + `FROM accounts ORDER BY platform, username`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ApplySuccess atomically bumps usage counters after a successful delivery.
// Increments run inside the UPDATE so concurrent rotations on the same
// account never lose updates.
func (r *AccountRepository) ApplySuccess(ctx context.Context, accountID int64) error {
	query := `
		UPDATE accounts
		SET total_posts = total_posts + 1,
		    daily_post_count = daily_post_count + 1,
		    last_used = NOW(),
		    last_posted_day = CURRENT_DATE,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("failed to apply success to account %d: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", accountID)
	}
	return nil
}

// ApplyFailure atomically records a failed delivery and returns the new
// error count
func (r *AccountRepository) ApplyFailure(ctx context.Context, accountID int64, errorMessage string) (int, error) {
	query := `
		UPDATE accounts
		SET error_count = error_count + 1,
		    last_error = $2,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING error_count
	`

	var errorCount int
	err := r.q.QueryRow(ctx, query, accountID, errorMessage).Scan(&errorCount)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("account %d not found", accountID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply failure to account %d: %w", accountID, err)
	}
	return errorCount, nil
}

// scanAccount scans a single account row
func scanAccount(row pgx.Row) (*models.Account, error) {
	var account models.Account
	var sessionJSON []byte

	err := row.Scan(
		&account.ID,
		&account.Platform,
		&account.Username,
		&account.CredentialMode,
		&account.AccessToken,
		&account.RefreshToken,
		&account.BusinessAccountID,
		&sessionJSON,
		&account.IsActive,
		&account.PostingPriority,
		&account.MaxDailyPosts,
		&account.DailyPostCount,
		&account.ErrorCount,
		&account.LastError,
		&account.LastUsed,
		&account.TotalPosts,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(sessionJSON) > 0 {
		var session models.AutomationSession
		if err := json.Unmarshal(sessionJSON, &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal automation session for account %d: %w", account.ID, err)
		}
		account.AutomationSession = &session
	}

	return &account, nil
}

// collectAccounts scans all rows into account models
func collectAccounts(rows pgx.Rows) ([]*models.Account, error) {
	var accounts []*models.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}
