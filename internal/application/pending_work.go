package application

import (
	"slices"

	"github.com/bnema/activity-indicator/internal/domain"
)

// CollectPendingWork flattens the project's per-provider progress into work
// items, most recently updated first. Providers are visited newest
// registration first and tokens in lexical order, which fixes the relative
// order of items whose timestamps tie.
func CollectPendingWork(statuses []domain.LanguageServerStatus) []domain.PendingWorkItem {
	var items []domain.PendingWorkItem
	for i := len(statuses) - 1; i >= 0; i-- {
		status := statuses[i]

		tokens := make([]string, 0, len(status.PendingWork))
		for token := range status.PendingWork {
			if token == "" {
				continue
			}
			tokens = append(tokens, token)
		}
		slices.Sort(tokens)

		for _, token := range tokens {
			items = append(items, domain.PendingWorkItem{
				ProviderName: status.Name,
				Token:        token,
				Progress:     status.PendingWork[token],
			})
		}
	}

	slices.SortStableFunc(items, func(a, b domain.PendingWorkItem) int {
		return b.Progress.LastUpdateAt.Compare(a.Progress.LastUpdateAt)
	})
	return items
}
