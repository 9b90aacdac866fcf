package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// sameDay reports whether a and b fall on the same calendar date in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()

	return ay == by && am == bm && ad == bd
}

// Account returns a copy of the account record.
func (v *Vault) Account() domain.UserAccount {
	var account domain.UserAccount

	v.read(func(s *state) { account = s.account.Clone() })

	return account
}

// CanClaimDailyReward reports whether no claim was made today.
func (v *Vault) CanClaimDailyReward() bool {
	last := v.Account().LastDailyClaim

	return last == nil || !sameDay(*last, v.now(), v.loc)
}

// ClaimDailyReward credits the daily reward. A claim on the day after the
// previous one extends the streak; any longer gap restarts it at 1.
func (v *Vault) ClaimDailyReward(ctx context.Context) (domain.UserAccount, error) {
	var account domain.UserAccount

	err := v.mutate(ctx, "claim_daily_reward", func(s *state) (bool, error) {
		now := v.timestamp()
		last := s.account.LastDailyClaim

		if last != nil && sameDay(*last, now, v.loc) {
			return false, domain.NewAlreadyClaimedError(last.In(v.loc))
		}

		yesterday := now.In(v.loc).AddDate(0, 0, -1)

		if last != nil && sameDay(*last, yesterday, v.loc) {
			s.account.Streak++
		} else {
			s.account.Streak = 1
		}

		s.account.Credits += v.dailyRewardCredits
		s.account.LastDailyClaim = &now
		account = s.account.Clone()

		return true, nil
	})
	if err != nil {
		return domain.UserAccount{}, err
	}

	v.logger.InfoContext(ctx, "daily reward claimed",
		slog.Int("credits", account.Credits),
		slog.Int("streak", account.Streak),
	)

	return account, nil
}
