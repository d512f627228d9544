package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"

	"github.com/pinky890114/Xianluo/internal/blob"
	"github.com/pinky890114/Xianluo/internal/models"
	"github.com/pinky890114/Xianluo/internal/status"
)

func (h *AdminHandler) findCommission(id string) (models.Commission, bool) {
	for _, c := range h.Commissions.Commissions() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Commission{}, false
}

// CreateCommission lets the admin record an order that arrived outside the
// public form (DMs, conventions). Source defaults to the admin's storefront.
func (h *AdminHandler) CreateCommission(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	source := r.FormValue("source")
	if source == "" {
		source = h.adminScope(r)
	}

	c := models.Commission{
		ClientName:  r.FormValue("client_name"),
		Contact:     r.FormValue("contact"),
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		Price:       price,
		Status:      r.FormValue("status"),
		Notes:       r.FormValue("notes"),
		Source:      source,
	}

	if _, err := h.Commissions.Create(c); err != nil {
		slog.Error("Failed to create commission", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to create the order."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order created."})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// StepStatus moves an order one stage forward or back. Stepping past either
// end of the pipeline changes nothing; a direct edit is the way to jump.
func (h *AdminHandler) StepStatus(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	direction := 1
	if r.FormValue("direction") == "prev" {
		direction = -1
	}

	c, ok := h.findCommission(id)
	if !ok {
		session.AddFlash(FlashMessage{Type: "error", Message: "Order not found."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	next := status.Step(c.Status, direction)
	if next == c.Status {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := h.Commissions.UpdateStatus(id, next); err != nil {
		slog.Error("Failed to update status", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to update the status. Please check your connection."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) EditCommissionForm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCommission(r.URL.Query().Get("id"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_edit.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Commission": c,
		"Statuses":   status.Steps(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// UpdateCommission applies a direct edit. Any stage may be set here; only
// the step buttons enforce adjacency. New progress images are appended to
// the existing list, never replacing it behind the admin's back.
func (h *AdminHandler) UpdateCommission(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	id := r.FormValue("id")
	c, ok := h.findCommission(id)
	if !ok {
		session.AddFlash(FlashMessage{Type: "error", Message: "Order not found."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	str := func(name string) *string {
		v := r.FormValue(name)
		return &v
	}
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)

	patch := models.CommissionPatch{
		ClientName:      str("client_name"),
		Contact:         str("contact"),
		Title:           str("title"),
		Description:     str("description"),
		Type:            str("type"),
		Price:           &price,
		Status:          str("status"),
		Notes:           str("notes"),
		CurrentProgress: str("current_progress"),
	}

	if urls, err := h.uploadProgressImages(r); err != nil {
		slog.Error("Progress image upload failed", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Image upload failed; nothing was saved. Please try again."})
		http.Redirect(w, r, "/admin/commissions/edit?id="+id, http.StatusSeeOther)
		return
	} else if len(urls) > 0 {
		combined := append(append([]string{}, c.ProgressImages...), urls...)
		patch.ProgressImages = &combined
	}

	if err := h.Commissions.Update(id, patch); err != nil {
		slog.Error("Failed to update commission", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to save changes. Please check your connection."})
		http.Redirect(w, r, "/admin/commissions/edit?id="+id, http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order updated!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) uploadProgressImages(r *http.Request) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["progress_images"]
	if len(headers) == 0 {
		return nil, nil
	}

	files := make([]blob.File, 0, len(headers))
	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		files = append(files, blob.File{
			Name:        hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Data:        f,
		})
	}
	return blob.UploadBatch(r.Context(), h.Blob, files, blob.DefaultBatchTimeout)
}

// DeleteCommission hard-deletes the order from the collection.
func (h *AdminHandler) DeleteCommission(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	if err := h.Commissions.Delete(id); err != nil {
		slog.Error("Failed to delete commission", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to delete the order."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Order deleted."})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
