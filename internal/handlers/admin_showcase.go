package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pinky890114/Xianluo/internal/blob"
)

// UploadShowcaseItem puts a gallery image in the blob store and records it
// in the showcase collection.
func (h *AdminHandler) UploadShowcaseItem(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Please choose an image to upload."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	defer file.Close()

	url, err := h.Blob.Put(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		slog.Error("Showcase upload failed", "error", err)
		msg := "Upload failed. Please try again later."
		if errors.Is(err, blob.ErrTooLarge) {
			msg = "That file is over the 5 MB limit."
		} else if errors.Is(err, blob.ErrUnsupported) {
			msg = "Only JPEG and PNG images are supported."
		}
		session.AddFlash(FlashMessage{Type: "error", Message: msg})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if _, err := h.Showcase.Add(url); err != nil {
		slog.Error("Failed to record showcase item", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Upload failed. Please try again later."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Added to the gallery!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteShowcaseItem(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	id := r.FormValue("id")
	if err := h.Showcase.Remove(id); err != nil {
		slog.Error("Failed to delete showcase item", "id", id, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Failed to delete the gallery image."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Gallery image removed."})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
