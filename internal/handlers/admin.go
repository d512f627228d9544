package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/pinky890114/Xianluo/internal/assist"
	"github.com/pinky890114/Xianluo/internal/blob"
	"github.com/pinky890114/Xianluo/internal/commissions"
	"github.com/pinky890114/Xianluo/internal/showcase"
	"github.com/pinky890114/Xianluo/internal/store"
	"github.com/pinky890114/Xianluo/internal/views"
)

type AdminHandler struct {
	Store        *store.Store
	Commissions  *commissions.Store
	Showcase     *showcase.Store
	Blob         blob.Store
	Assist       *assist.Generator
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Store.GetUserByUsername(username)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if user == nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["username"] = user.Username
	session.Values["scope"] = user.Scope
	session.Save(r, w)

	slog.Info("Admin logged in", "username", user.Username, "scope", user.Scope)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	session.Values["authenticated"] = false
	delete(session.Values, "username")
	delete(session.Values, "scope")
	session.Options.MaxAge = -1
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AuthMiddleware guards admin routes behind the session
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, "admin-session")
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// adminScope returns the storefront tag of the logged-in admin.
func (h *AdminHandler) adminScope(r *http.Request) string {
	session, _ := h.SessionStore.Get(r, "admin-session")
	scope, _ := session.Values["scope"].(string)
	return scope
}

// Dashboard lists the admin's commissions with search and status filters,
// plus the queue/active/done counts for their storefront.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	scope := h.adminScope(r)
	snapshot := h.Commissions.Commissions()

	filter := views.Filter{
		Search:     r.URL.Query().Get("q"),
		Status:     r.URL.Query().Get("status"),
		AdminScope: scope,
	}

	tmpl := h.Templates.Get("admin_dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Commissions": views.Apply(snapshot, filter),
		"Stats":       views.Count(snapshot, scope),
		"Search":      filter.Search,
		"Status":      filter.Status,
		"Scope":       scope,
		"Loaded":      h.Commissions.Loaded(),
		"Showcase":    h.Showcase.Items(),
		"AssistOn":    h.Assist.Enabled(),
		"CsrfField":   csrf.TemplateField(r),
		"Flashes":     GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
