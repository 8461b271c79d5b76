// Package reportapi serves the report generation endpoint: two uploaded
// CSV exports in, one fully annotated profit report out. Nothing is stored;
// every request recomputes from the uploaded files.
package reportapi

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"toko_insight/pkg/core/ingest"
	"toko_insight/pkg/core/pricing"
	"toko_insight/pkg/core/report"
)

// Handler holds the price list loaded at startup. The table is immutable,
// so concurrent report requests can share it freely.
type Handler struct {
	table *pricing.Table
	cfg   *pricing.Config
}

// NewHandler wires the report endpoint to a loaded price list.
func NewHandler(table *pricing.Table, cfg *pricing.Config) *Handler {
	return &Handler{table: table, cfg: cfg}
}

// Response is the full report payload the dashboard renders from.
type Response struct {
	ReportID  string                `json:"report_id"`
	Summary   report.Summary        `json:"summary"`
	Rows      []report.AnnotatedRow `json:"rows"`
	ByDate    []report.Group        `json:"by_date"`
	ByProduct []report.Group        `json:"by_product"`
	Trend     []report.TrendPoint   `json:"profit_trend"`
	Unmatched []string              `json:"unmatched_products"`
	Anomalies []report.AnnotatedRow `json:"anomalies"`
	// Warnings are non-blocking: the report rendered fine, these rows or
	// lines just deserve a look.
	Warnings []string `json:"warnings"`
	// PromptSummary is the text block the frontend hands back to the
	// assistant endpoint together with the user's question.
	PromptSummary string `json:"prompt_summary"`
}

// HandleGenerate accepts a multipart upload with "orders" and "settlement"
// files. Form field "apply_default_cost=true" fills unmatched rows with the
// configured fallback price; they stay flagged either way.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid upload: %v", err), http.StatusBadRequest)
		return
	}

	ordersFile, err := formFile(r, "orders")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer ordersFile.Close()
	settlementFile, err := formFile(r, "settlement")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer settlementFile.Close()

	var warnings []string

	orders, orderIssues, err := ingest.ReadOrders(ordersFile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	settlements, settlementIssues, err := ingest.ReadSettlements(settlementFile)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	for _, issue := range orderIssues {
		warnings = append(warnings, "orders: "+issue.String())
	}
	for _, issue := range settlementIssues {
		warnings = append(warnings, "settlement: "+issue.String())
	}

	joined := ingest.Join(orders, settlements)
	for _, id := range joined.UnsettledOrders {
		warnings = append(warnings, fmt.Sprintf("order %s has no settlement and was excluded", id))
	}
	for _, id := range joined.OrphanSettlements {
		warnings = append(warnings, fmt.Sprintf("settlement %s has no matching order line", id))
	}

	rows, err := report.Annotate(joined.Rows, h.table)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if r.FormValue("apply_default_cost") == "true" && h.cfg != nil && h.cfg.DefaultPrice > 0 {
		rows = report.ApplyDefaultCost(rows, decimal.NewFromFloat(h.cfg.DefaultPrice))
		warnings = append(warnings, fmt.Sprintf("unmatched rows were costed at the fallback price Rp %.0f", h.cfg.DefaultPrice))
	}

	summary := report.Summarize(rows)
	byDate := report.GroupBy(rows, report.GroupByDate)

	resp := Response{
		ReportID:      uuid.New().String(),
		Summary:       summary,
		Rows:          rows,
		ByDate:        byDate,
		ByProduct:     report.GroupBy(rows, report.GroupByProduct),
		Trend:         report.ProfitTrend(byDate),
		Unmatched:     report.Unmatched(rows),
		Anomalies:     report.Anomalies(rows),
		Warnings:      warnings,
		PromptSummary: report.BuildPromptSummary(summary, rows, 20),
	}

	fmt.Printf("[REPORT] %s: %d rows, omset Rp %s, profit Rp %s, %d unmatched, %d anomalies\n",
		resp.ReportID, len(rows), summary.Revenue.StringFixed(0), summary.Profit.StringFixed(0),
		summary.UnmatchedRows, summary.AnomalyRows)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func formFile(r *http.Request, name string) (multipart.File, error) {
	f, _, err := r.FormFile(name)
	if err != nil {
		return nil, fmt.Errorf("missing %q file in upload", name)
	}
	return f, nil
}
