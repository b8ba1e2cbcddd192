package usecase

import "github.com/iho/gobalance/internal/domain"

// Cache key layout. Keys carry the environment as the last segment so one
// shared Redis can serve several deployments; invalidation patterns match
// any environment for the affected date.
const (
	balanceKeyPrefix = "balance:"
	reportKeyPrefix  = "report:"

	// reportKeyPatternAll matches every cached report. Enumerating the
	// exact report ranges touching a changed date is not tractable, so
	// cascades invalidate all of them.
	reportKeyPatternAll = reportKeyPrefix + "*"
)

func balanceKey(day domain.Day, env string) string {
	return balanceKeyPrefix + day.String() + ":" + env
}

func balanceKeyPattern(day domain.Day) string {
	return balanceKeyPrefix + day.String() + ":*"
}

func reportKey(start, end domain.Day, env string) string {
	return reportKeyPrefix + start.String() + ":" + end.String() + ":" + env
}
