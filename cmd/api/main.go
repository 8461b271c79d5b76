package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"toko_insight/pkg/api/assistant"
	apiconfig "toko_insight/pkg/api/config"
	"toko_insight/pkg/api/insightapi"
	"toko_insight/pkg/api/reportapi"
	"toko_insight/pkg/core/agent"
	"toko_insight/pkg/core/pricing"
)

func main() {
	godotenv.Load()

	// Provider config is optional; without it everything runs on Gemini.
	var agentCfg agent.Config
	if raw, err := os.ReadFile(envOr("MODELS_CONFIG", "config/models.yaml")); err == nil {
		if err := yaml.Unmarshal(raw, &agentCfg); err != nil {
			fmt.Printf("[WARNING] models config unreadable, using defaults: %v\n", err)
		}
	}
	agentMgr := agent.NewManager(agentCfg)
	fmt.Printf("[CONFIG] active LLM provider: %s\n", agentMgr.ActiveProvider())

	// The price list is not optional: without it every cost would be a
	// silent zero, so refuse to start.
	pricePath := envOr("PRICE_LIST", "config/prices.hjson")
	table, priceCfg, err := pricing.LoadFile(pricePath)
	if err != nil {
		fmt.Printf("[FATAL] %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[CONFIG] loaded %d price keywords from %s\n", table.Len(), pricePath)

	reportHandler := reportapi.NewHandler(table, priceCfg)
	http.HandleFunc("/api/report", reportHandler.HandleGenerate)

	assistantHandler := assistant.NewHandler(agentMgr)
	http.HandleFunc("/api/assistant/ask", assistantHandler.HandleAsk)

	http.HandleFunc("/api/insight/anomalies", insightapi.HandleExplain)

	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	addr := ":" + envOr("PORT", "8080")
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/report             (multipart: orders, settlement)")
	fmt.Println("  - POST /api/assistant/ask")
	fmt.Println("  - POST /api/insight/anomalies")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
