// Package config exposes the LLM provider configuration: which providers
// exist, which one is active, and runtime switching between them.
package config

import (
	"encoding/json"
	"net/http"

	"toko_insight/pkg/core/agent"
)

type Handler struct {
	agentMgr *agent.Manager
}

func NewHandler(mgr *agent.Manager) *Handler {
	return &Handler{agentMgr: mgr}
}

type statusResponse struct {
	ActiveProvider string   `json:"active_provider"`
	Providers      []string `json:"providers"`
}

type switchRequest struct {
	Provider string `json:"provider"`
}

// HandleConfig reports the provider registry and active selection.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		ActiveProvider: h.agentMgr.ActiveProvider(),
		Providers:      h.agentMgr.ProviderNames(),
	})
}

// HandleSwitch changes the active provider for all subsequent requests.
func (h *Handler) HandleSwitch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req switchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.agentMgr.SetGlobalProvider(req.Provider); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statusResponse{
		ActiveProvider: h.agentMgr.ActiveProvider(),
		Providers:      h.agentMgr.ProviderNames(),
	})
}
