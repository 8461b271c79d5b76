// Command report generates a one-shot profit report from two export files,
// without running the API server. With -ask it also forwards a question to
// the configured LLM provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"toko_insight/pkg/api/assistant"
	"toko_insight/pkg/core/agent"
	"toko_insight/pkg/core/ingest"
	"toko_insight/pkg/core/pricing"
	"toko_insight/pkg/core/report"
)

func main() {
	ordersPath := flag.String("orders", "", "orders export CSV (required)")
	settlementPath := flag.String("settlement", "", "settlement export CSV (required)")
	pricesPath := flag.String("prices", "config/prices.hjson", "price list (hjson or yaml)")
	ask := flag.String("ask", "", "optional question to forward to the AI assistant")
	sample := flag.Int("sample", 10, "rows to include in the AI data summary")
	flag.Parse()

	if *ordersPath == "" || *settlementPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	godotenv.Load()

	table, _, err := pricing.LoadFile(*pricesPath)
	if err != nil {
		fatal(err)
	}

	ordersFile, err := os.Open(*ordersPath)
	if err != nil {
		fatal(err)
	}
	defer ordersFile.Close()
	orders, orderIssues, err := ingest.ReadOrders(ordersFile)
	if err != nil {
		fatal(err)
	}

	settlementFile, err := os.Open(*settlementPath)
	if err != nil {
		fatal(err)
	}
	defer settlementFile.Close()
	settlements, settlementIssues, err := ingest.ReadSettlements(settlementFile)
	if err != nil {
		fatal(err)
	}

	for _, issue := range orderIssues {
		fmt.Printf("[WARNING] orders: %s\n", issue)
	}
	for _, issue := range settlementIssues {
		fmt.Printf("[WARNING] settlement: %s\n", issue)
	}

	joined := ingest.Join(orders, settlements)
	for _, id := range joined.UnsettledOrders {
		fmt.Printf("[WARNING] order %s has no settlement, excluded\n", id)
	}

	rows, err := report.Annotate(joined.Rows, table)
	if err != nil {
		fatal(err)
	}
	summary := report.Summarize(rows)

	fmt.Println("=== Ringkasan ===")
	fmt.Printf("Omset        : Rp %s\n", summary.Revenue.StringFixed(0))
	fmt.Printf("Modal        : Rp %s\n", summary.TotalCost.StringFixed(0))
	fmt.Printf("Profit       : Rp %s\n", summary.Profit.StringFixed(0))
	fmt.Printf("Order / Unit : %d / %d\n", summary.Orders, summary.Units)

	fmt.Println("\n=== Per Tanggal ===")
	for _, g := range report.GroupBy(rows, report.GroupByDate) {
		fmt.Printf("%s  omset Rp %s  modal Rp %s  profit Rp %s\n",
			g.Key, g.Revenue.StringFixed(0), g.TotalCost.StringFixed(0), g.Profit.StringFixed(0))
	}

	fmt.Println("\n=== Per Produk ===")
	for _, g := range report.GroupBy(rows, report.GroupByProduct) {
		fmt.Printf("%-40s  qty %-5d  profit Rp %s\n", g.Key, g.Units, g.Profit.StringFixed(0))
	}

	if unmatched := report.Unmatched(rows); len(unmatched) > 0 {
		fmt.Printf("\n[WARNING] %d produk tanpa harga modal:\n", len(unmatched))
		for _, desc := range unmatched {
			fmt.Printf("  - %s\n", desc)
		}
	}
	if anomalies := report.Anomalies(rows); len(anomalies) > 0 {
		fmt.Printf("\n[WARNING] %d baris dengan profit <= 0:\n", len(anomalies))
		for _, r := range anomalies {
			fmt.Printf("  - %s %s profit Rp %s\n", r.OrderID, r.ProductName, r.Profit.StringFixed(0))
		}
	}

	if *ask != "" {
		var agentCfg agent.Config
		if raw, err := os.ReadFile("config/models.yaml"); err == nil {
			yaml.Unmarshal(raw, &agentCfg)
		}
		mgr := agent.NewManager(agentCfg)

		fmt.Printf("\n=== Jawaban AI (%s) ===\n", mgr.ActiveProvider())
		dataSummary := report.BuildPromptSummary(summary, rows, *sample)
		answer, err := mgr.ExecutePrompt(context.Background(), "assistant",
			assistant.BuildPrompt(dataSummary, *ask),
			"Kamu adalah asisten bisnis untuk seller marketplace Indonesia. Jawab ringkas berdasarkan data yang diberikan.",
			nil)
		if err != nil {
			fmt.Printf("[WARNING] assistant unavailable: %v\n", err)
		} else {
			fmt.Println(answer)
		}
	}
}

func fatal(err error) {
	fmt.Printf("[FATAL] %v\n", err)
	os.Exit(1)
}
