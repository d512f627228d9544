package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/pinky890114/Xianluo/internal/blob"
	"github.com/pinky890114/Xianluo/internal/catalog"
	"github.com/pinky890114/Xianluo/internal/commissions"
	"github.com/pinky890114/Xianluo/internal/models"
)

// CommissionHandler serves the public request form and its submission.
type CommissionHandler struct {
	Commissions   *commissions.Store
	Blob          blob.Store
	UploadTimeout time.Duration
	Catalog       *catalog.Catalog
	Templates     *TemplateCache
	SessionStore  *sessions.CookieStore
}

func (h *CommissionHandler) Form(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("commission_form.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "public-session")
	data := map[string]interface{}{
		"Categories": h.Catalog.Categories(),
		"Selected":   r.URL.Query().Get("type"),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Submit creates a commission from the form. Reference images are uploaded
// as a batch first; if the batch fails or times out, nothing is created and
// the client is asked to resubmit, either retrying the images or explicitly
// checking "submit without images". Images are never dropped silently.
func (h *CommissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "public-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		http.Redirect(w, r, "/commission", http.StatusSeeOther)
		return
	}

	name := r.FormValue("client_name")
	title := r.FormValue("title")

	// Only presence is validated here; everything else is accepted as-is.
	if name == "" || title == "" {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your name and a title are required."})
		http.Redirect(w, r, "/commission", http.StatusSeeOther)
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	source := r.FormValue("source")
	if source == "" {
		source = "general"
	}

	c := models.Commission{
		ClientName:  name,
		Contact:     r.FormValue("contact"),
		Title:       title,
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		Price:       price,
		Notes:       r.FormValue("notes"),
		Source:      source,
	}

	skipImages := r.FormValue("skip_images") == "1"
	if !skipImages {
		urls, err := h.uploadReferenceImages(r)
		if err != nil {
			slog.Error("Reference image upload failed", "error", err)
			msg := "Image upload failed. Resubmit to retry, or tick \"submit without images\" to send your request anyway."
			if errors.Is(err, blob.ErrBatchTimeout) {
				msg = "Image upload timed out. Resubmit to retry, or tick \"submit without images\" to send your request anyway."
			}
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
			http.Redirect(w, r, "/commission", http.StatusSeeOther)
			return
		}
		c.ImageURLs = urls
		if len(urls) > 0 {
			c.ThumbnailURL = urls[0]
		}
	}

	if _, err := h.Commissions.Create(c); err != nil {
		slog.Error("Failed to create commission", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to submit your request. Please try again."})
		http.Redirect(w, r, "/commission", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Request submitted! You can follow its progress below."})
	http.Redirect(w, r, "/track?q="+url.QueryEscape(name), http.StatusSeeOther)
}

func (h *CommissionHandler) uploadReferenceImages(r *http.Request) ([]string, error) {
	var headers []*multipart.FileHeader
	if r.MultipartForm != nil {
		headers = r.MultipartForm.File["images"]
	}
	if len(headers) == 0 {
		return nil, nil
	}

	files := make([]blob.File, 0, len(headers))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, hdr := range headers {
		f, err := hdr.Open()
		if err != nil {
			return nil, err
		}
		opened = append(opened, f)
		files = append(files, blob.File{
			Name:        hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	return blob.UploadBatch(r.Context(), h.Blob, files, h.UploadTimeout)
}
