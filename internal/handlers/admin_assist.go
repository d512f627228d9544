package handlers

import (
	"encoding/json"
	"net/http"
)

// AssistClientUpdate drafts a progress message for the client of one order.
// Returns plain JSON so the dashboard can show the text without a reload.
func (h *AdminHandler) AssistClientUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCommission(r.FormValue("id"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	text := h.Assist.ClientUpdate(r.Context(), c)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"text": text})
}

// AssistWorkPlan suggests next production steps for one order.
func (h *AdminHandler) AssistWorkPlan(w http.ResponseWriter, r *http.Request) {
	c, ok := h.findCommission(r.FormValue("id"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	text := h.Assist.WorkPlan(r.Context(), c)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"text": text})
}
