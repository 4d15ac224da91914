package poll

import (
	"context"

	"meetbot/types"
)

// AwaitSettled polls the bot until it reports a phase other than "joining",
// or the joining budget runs out. A bot that is still joining is expected
// transient state, not a failure: it has its own wait counter, separate from
// the retry budget Do spends on actual request failures. When the joining
// budget is exhausted the last-seen payload is returned without error — the
// caller decides what to do with a bot that is still joining.
//
// A 404 at any point propagates as an error immediately.
func AwaitSettled(ctx context.Context, p Policy, fetch Fetch) (*types.Bot, error) {
	joinWaits := 0
	for {
		bot, err := Do(ctx, p, fetch)
		if err != nil {
			return nil, err
		}

		if bot.Phase() != types.PhaseJoining {
			return bot, nil
		}
		if joinWaits >= p.MaxAttempts {
			return bot, nil
		}

		joinWaits++
		if err := sleep(ctx, p.Delay); err != nil {
			return nil, err
		}
	}
}
