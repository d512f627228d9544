package assist

import (
	"context"
	"strings"
	"testing"

	"github.com/pinky890114/Xianluo/internal/models"
	"github.com/pinky890114/Xianluo/internal/status"
)

func TestDisabledGeneratorDegrades(t *testing.T) {
	g := NewGenerator("", "")
	if g.Enabled() {
		t.Fatal("generator without credentials reports enabled")
	}

	c := models.Commission{ClientName: "Mina", Title: "Tiger charm", Status: status.InProduction}
	if got := g.ClientUpdate(context.Background(), c); got != Unavailable {
		t.Fatalf("ClientUpdate = %q, want the unavailable message", got)
	}
	if got := g.WorkPlan(context.Background(), c); got != Unavailable {
		t.Fatalf("WorkPlan = %q, want the unavailable message", got)
	}
}

func TestPrompts(t *testing.T) {
	c := models.Commission{ClientName: "Mina", Title: "Tiger charm", Type: "Badge", Status: status.Queued}

	p := clientUpdatePrompt(c)
	for _, want := range []string{"Mina", "Tiger charm", status.Queued} {
		if !strings.Contains(p, want) {
			t.Fatalf("client update prompt missing %q: %s", want, p)
		}
	}

	p = workPlanPrompt(c)
	for _, want := range []string{"Tiger charm", "Badge"} {
		if !strings.Contains(p, want) {
			t.Fatalf("work plan prompt missing %q: %s", want, p)
		}
	}
}
