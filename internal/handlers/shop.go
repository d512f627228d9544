package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/pinky890114/Xianluo/internal/catalog"
	"github.com/pinky890114/Xianluo/internal/commissions"
	"github.com/pinky890114/Xianluo/internal/showcase"
	"github.com/pinky890114/Xianluo/internal/views"
)

// ShopHandler serves the public storefront: product catalog, completed-work
// gallery, and the order-progress tracker.
type ShopHandler struct {
	Catalog      *catalog.Catalog
	Showcase     *showcase.Store
	Commissions  *commissions.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *ShopHandler) Index(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("shop.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Categories": h.Catalog.Categories(),
		"Options":    h.Catalog.Options(),
		"Showcase":   h.Showcase.Items(),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Tracker is the client-facing progress lookup. The search term is the only
// gate: a client who knows the right name or title sees matching orders from
// both storefronts.
func (h *ShopHandler) Tracker(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	statusFilter := r.URL.Query().Get("status")

	var results interface{}
	if search != "" || statusFilter != "" {
		results = views.Apply(h.Commissions.Commissions(), views.Filter{
			Search: search,
			Status: statusFilter,
		})
	}

	tmpl := h.Templates.Get("tracker.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Search":  search,
		"Status":  statusFilter,
		"Results": results,
		"Loaded":  h.Commissions.Loaded(),
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
