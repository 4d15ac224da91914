package poll

import (
	"context"

	"meetbot/types"
)

// AwaitRecordings polls the bot until its recordings list is non-empty or
// the wait budget runs out. An empty list means the provider has not
// finished processing yet; it is never an error, and an empty result after
// budget exhaustion is a valid terminal return. Each poll replaces the known
// set with the provider's latest full list.
func AwaitRecordings(ctx context.Context, p Policy, fetch Fetch) ([]types.Recording, error) {
	waits := 0
	for {
		bot, err := Do(ctx, p, fetch)
		if err != nil {
			return nil, err
		}

		if len(bot.Recordings) > 0 || waits >= p.MaxAttempts {
			return bot.Recordings, nil
		}

		waits++
		if err := sleep(ctx, p.Delay); err != nil {
			return nil, err
		}
	}
}
