// Package assistant serves the ask-the-AI endpoint: the user's question
// plus the report's data summary go to the configured model, a markdown
// answer comes back.
package assistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"toko_insight/pkg/core/agent"
	"toko_insight/pkg/core/utils"
)

// Handler routes questions through the agent manager.
type Handler struct {
	agentMgr *agent.Manager
}

func NewHandler(mgr *agent.Manager) *Handler {
	return &Handler{agentMgr: mgr}
}

// AskRequest carries the user's question and the opaque data summary the
// report endpoint produced. The summary travels with the request because
// the server keeps no report state.
type AskRequest struct {
	Question    string `json:"question"`
	DataSummary string `json:"data_summary"`
}

type AskResponse struct {
	Answer     string `json:"answer"`
	AnswerHTML string `json:"answer_html"`
	Provider   string `json:"provider"`
}

const systemPrompt = `Kamu adalah asisten bisnis untuk seller marketplace Indonesia.
Jawab pertanyaan user berdasarkan data bisnis yang diberikan. Jawab dalam
bahasa yang sama dengan pertanyaan user, ringkas dan konkret, dalam format
markdown. Kalau data tidak cukup untuk menjawab, katakan begitu.`

// HandleAsk forwards the question and summary to the active provider.
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
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

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	prompt := BuildPrompt(req.DataSummary, req.Question)
	answer, err := h.agentMgr.ExecutePrompt(r.Context(), "assistant", prompt, systemPrompt, nil)
	if err != nil {
		fmt.Printf("[ASSISTANT] provider error: %v\n", err)
		http.Error(w, fmt.Sprintf("assistant unavailable: %v", err), http.StatusBadGateway)
		return
	}

	answer = utils.CleanMarkdown(answer)
	resp := AskResponse{
		Answer:     answer,
		AnswerHTML: utils.RenderMarkdown(answer),
		Provider:   h.agentMgr.ActiveProvider(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// BuildPrompt assembles the user prompt: data block first, question after,
// mirroring how the dashboard has always phrased it.
func BuildPrompt(dataSummary, question string) string {
	var b strings.Builder
	if strings.TrimSpace(dataSummary) != "" {
		b.WriteString(strings.TrimSpace(dataSummary))
		b.WriteString("\n\n")
	}
	b.WriteString("Pertanyaan/Instruksi User:\n")
	b.WriteString(strings.TrimSpace(question))
	return b.String()
}
