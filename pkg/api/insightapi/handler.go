// Package insightapi serves structured verdicts for a report's problem
// rows. The frontend posts back the annotated rows it received; the server
// keeps no report state.
package insightapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"toko_insight/pkg/core/insight"
	"toko_insight/pkg/core/report"
)

type Request struct {
	Rows []report.AnnotatedRow `json:"rows"`
	// Limit bounds how many problem rows go into the prompt; 0 means the
	// default of 20.
	Limit int `json:"limit"`
}

type Response struct {
	Verdicts []insight.RowVerdict `json:"verdicts"`
}

// HandleExplain asks the insight agent about the posted rows.
func HandleExplain(w http.ResponseWriter, r *http.Request) {
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	agent, err := insight.NewAgent(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("insight unavailable: %v", err), http.StatusBadGateway)
		return
	}
	defer agent.Close()

	verdicts, err := agent.ExplainProblems(r.Context(), req.Rows, req.Limit)
	if err != nil {
		fmt.Printf("[INSIGHT] %v\n", err)
		http.Error(w, fmt.Sprintf("insight failed: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Response{Verdicts: verdicts})
}
