// Package views derives what the user sees from a commission snapshot plus
// transient filter state. Everything here is pure; it is recomputed on every
// relevant change and never mutates its input.
package views

import (
	"strings"

	"github.com/pinky890114/Xianluo/internal/models"
	"github.com/pinky890114/Xianluo/internal/status"
)

// Filter holds the transient UI filter state.
//
// Search matches client name or title, case-insensitive substring. Status ""
// means all statuses. AdminScope "" means client mode: clients see across
// both storefronts when they know the right search term — the search box is
// the only gate, which is deliberate.
type Filter struct {
	Search     string
	Status     string
	AdminScope string
}

// Apply returns the commissions matching all three predicates, preserving
// the input order (newest first, as the mirror delivers it).
func Apply(commissions []models.Commission, f Filter) []models.Commission {
	search := strings.ToLower(f.Search)

	var out []models.Commission
	for _, c := range commissions {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(c.ClientName), search) ||
			strings.Contains(strings.ToLower(c.Title), search)
		matchesStatus := f.Status == "" || c.Status == f.Status
		matchesScope := f.AdminScope == "" || c.Source == f.AdminScope

		if matchesSearch && matchesStatus && matchesScope {
			out = append(out, c)
		}
	}
	return out
}

// Stats are the dashboard counts. A commission whose status falls outside
// every bucket is counted nowhere.
type Stats struct {
	Queue  int
	Active int
	Done   int
}

// Count classifies each commission's status into the pipeline buckets. With
// a non-empty scope only that storefront's commissions are counted.
func Count(commissions []models.Commission, scope string) Stats {
	var stats Stats
	for _, c := range commissions {
		if scope != "" && c.Source != scope {
			continue
		}
		switch status.Bucket(c.Status) {
		case "queue":
			stats.Queue++
		case "active":
			stats.Active++
		case "done":
			stats.Done++
		}
	}
	return stats
}
