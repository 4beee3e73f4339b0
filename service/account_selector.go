package service

import (
	"context"
	"fmt"
	"sort"

	"viralcast/models"
)

// accountSelector implements the AccountSelector interface
type accountSelector struct {
	accountRepo AccountRepository
}

// NewAccountSelector creates a new account selector
func NewAccountSelector(accountRepo AccountRepository) AccountSelector {
	return &accountSelector{accountRepo: accountRepo}
}

// SelectAccount returns the best eligible account for the criteria, or nil
// when nothing qualifies
func (s *accountSelector) SelectAccount(ctx context.Context, criteria SelectionCriteria) (*models.Account, error) {
	accounts, err := s.accountRepo.GetEligibleAccounts(ctx, criteria.Platform)
	if err != nil {
		return nil, fmt.Errorf("failed to get eligible accounts for %s: %w", criteria.Platform, err)
	}

	candidates := make([]*models.Account, 0, len(accounts))
	for _, account := range accounts {
		if _, excluded := criteria.ExcludeAccountIDs[account.ID]; excluded {
			continue
		}
		// The repository only returns active accounts, but guard anyway: an
		// inactive account must never be selected
		if !account.IsActive {
			continue
		}
		if criteria.RespectRateLimits && account.AtDailyLimit() {
			continue
		}
		candidates = append(candidates, account)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.PostingPriority != b.PostingPriority {
			return a.PostingPriority > b.PostingPriority
		}
		if criteria.PrioritizeByFrequency {
			// Load-balance: fewer posts today wins the tie
			return a.DailyPostCount < b.DailyPostCount
		}
		// Oldest last-used wins the tie; never-used sorts first. Both nil
		// falls through to the ID compare so the ordering stays strict.
		switch {
		case a.LastUsed == nil && b.LastUsed == nil:
			return a.ID < b.ID
		case a.LastUsed == nil:
			return true
		case b.LastUsed == nil:
			return false
		default:
			return a.LastUsed.Before(*b.LastUsed)
		}
	})

	return candidates[0], nil
}
