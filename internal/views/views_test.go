package views

import (
	"testing"

	"github.com/pinky890114/Xianluo/internal/models"
	"github.com/pinky890114/Xianluo/internal/status"
)

func sample() []models.Commission {
	return []models.Commission{
		{ID: "1", ClientName: "Mina", Title: "Tiger charm", Status: status.Applying, Source: "nocy"},
		{ID: "2", ClientName: "Ben", Title: "Dragon plush", Status: status.InProduction, Source: "general"},
		{ID: "3", ClientName: "Mina L.", Title: "Keychain", Status: status.Completed, Source: "general"},
		{ID: "4", ClientName: "Sofia", Title: "tiger badge", Status: status.Queued, Source: "nocy"},
		{ID: "5", ClientName: "Ray", Title: "Shiba brick", Status: status.Shipped, Source: "nocy"},
	}
}

func ids(list []models.Commission) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func TestApplySearchByTitleSubstring(t *testing.T) {
	// Three of five match "tiger" or "mina" style searches; order preserved.
	got := Apply(sample(), Filter{Search: "TIGER"})
	want := []string{"1", "4"}
	if len(got) != len(want) {
		t.Fatalf("got %d commissions, want %d: %v", len(got), len(want), ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("result[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestApplySearchMatchesClientNameOrTitle(t *testing.T) {
	got := Apply(sample(), Filter{Search: "mina"})
	want := []string{"1", "3"}
	if len(got) != 2 || got[0].ID != want[0] || got[1].ID != want[1] {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestApplyThreeOfFiveInOriginalOrder(t *testing.T) {
	list := []models.Commission{
		{ID: "a", ClientName: "X", Title: "blue whale"},
		{ID: "b", ClientName: "Y", Title: "red fox"},
		{ID: "c", ClientName: "Z", Title: "whale song"},
		{ID: "d", ClientName: "W", Title: "green frog"},
		{ID: "e", ClientName: "V", Title: "narwhale"},
	}
	got := Apply(list, Filter{Search: "whale"})
	want := []string{"a", "c", "e"}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3: %v", len(got), ids(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("result[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestApplyStatusFilter(t *testing.T) {
	got := Apply(sample(), Filter{Status: status.InProduction})
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("got %v, want [2]", ids(got))
	}
	if got := Apply(sample(), Filter{}); len(got) != 5 {
		t.Fatalf("empty filter returned %d of 5", len(got))
	}
}

func TestApplyScopeOnlyInAdminMode(t *testing.T) {
	admin := Apply(sample(), Filter{AdminScope: "nocy"})
	if len(admin) != 3 {
		t.Fatalf("admin scope nocy: got %d, want 3: %v", len(admin), ids(admin))
	}
	// Client mode crosses both storefronts.
	client := Apply(sample(), Filter{Search: "dragon"})
	if len(client) != 1 || client[0].ID != "2" {
		t.Fatalf("client search crossed scopes wrong: %v", ids(client))
	}
}

func TestCountBuckets(t *testing.T) {
	stats := Count(sample(), "")
	if stats.Queue != 2 || stats.Active != 1 || stats.Done != 2 {
		t.Fatalf("stats = %+v, want queue 2 active 1 done 2", stats)
	}
}

func TestCountScoped(t *testing.T) {
	stats := Count(sample(), "nocy")
	if stats.Queue != 2 || stats.Active != 0 || stats.Done != 1 {
		t.Fatalf("scoped stats = %+v", stats)
	}
}

func TestCountUnknownStatusUncounted(t *testing.T) {
	list := append(sample(), models.Commission{ID: "6", Status: "Cancelled"})
	stats := Count(list, "")
	if stats.Queue+stats.Active+stats.Done != 5 {
		t.Fatalf("unknown status leaked into counts: %+v", stats)
	}
}
