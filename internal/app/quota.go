package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// checkQuota refuses adding n quotes to s when the account is on the free
// tier and the total would pass the limit.
func (v *Vault) checkQuota(s *state, n int) error {
	if s.account.IsPremium {
		return nil
	}

	used := domain.CountQuotes(s.collections)
	if used+n > v.freeLimit {
		return domain.NewQuotaExceededError(used, v.freeLimit, n)
	}

	return nil
}

// TotalQuotes counts stored quotes across all collections.
func (v *Vault) TotalQuotes() int {
	var n int

	v.read(func(s *state) { n = domain.CountQuotes(s.collections) })

	return n
}

// CanAdd reports whether n more quotes would pass the quota gate.
func (v *Vault) CanAdd(n int) bool {
	var err error

	v.read(func(s *state) { err = v.checkQuota(s, n) })

	return err == nil
}

// QuotaStatus summarizes usage against the free-tier limit. Remaining is
// -1 for premium accounts.
func (v *Vault) QuotaStatus() domain.QuotaStatus {
	var status domain.QuotaStatus

	v.read(func(s *state) {
		used := domain.CountQuotes(s.collections)
		status = domain.QuotaStatus{
			Used:      used,
			Limit:     v.freeLimit,
			Remaining: max(v.freeLimit-used, 0),
			Premium:   s.account.IsPremium,
		}

		if s.account.IsPremium {
			status.Remaining = -1
		}
	})

	return status
}

// UpgradeToPro lifts the quota permanently.
func (v *Vault) UpgradeToPro(ctx context.Context) error {
	upgraded := false

	err := v.mutate(ctx, "upgrade", func(s *state) (bool, error) {
		if s.account.IsPremium {
			return false, nil
		}

		s.account.IsPremium = true
		upgraded = true

		return true, nil
	})
	if err == nil && upgraded {
		v.logger.InfoContext(ctx, "account upgraded", slog.Int("quotes", v.TotalQuotes()))
	}

	return err
}
