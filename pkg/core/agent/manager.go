// Package agent routes prompt executions to a configured LLM provider.
// Which provider answers is a deployment decision (config/models.yaml plus
// runtime switching), not something handlers hardcode.
package agent

import (
	"context"
	"fmt"
	"sort"

	"toko_insight/pkg/core/llm"
)

// Config is the on-disk provider configuration (config/models.yaml).
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig overrides the provider for one agent role, e.g. the insight
// agent can stay on Gemini while the assistant runs on DeepSeek.
type AgentConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager holds the provider registry and the active selection.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

// NewManager builds a Manager from config. An unset or unknown active
// provider falls back to Gemini, the dashboard's default.
func NewManager(config Config) *Manager {
	m := &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
	if _, ok := m.providers[m.config.ActiveProvider]; !ok {
		m.config.ActiveProvider = "gemini"
	}
	return m
}

// GetProvider resolves the provider for an agent role: its configured
// override if any, otherwise the global active provider.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	return m.providers[m.config.ActiveProvider]
}

// ExecutePrompt runs a prompt through the provider configured for the
// agent role, injecting the role's model override when one is set.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if options == nil {
		options = map[string]interface{}{}
	}
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Model != "" {
		if _, set := options["model"]; !set {
			options["model"] = agentConfig.Model
		}
	}
	return m.GetProvider(agentType).GenerateResponse(ctx, prompt, systemPrompt, options)
}

// ActiveProvider returns the name of the global active provider.
func (m *Manager) ActiveProvider() string {
	return m.config.ActiveProvider
}

// ProviderNames lists the registered provider names, sorted.
func (m *Manager) ProviderNames() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetGlobalProvider switches the global active provider at runtime.
func (m *Manager) SetGlobalProvider(name string) error {
	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("provider %s not found", name)
	}
	m.config.ActiveProvider = name
	fmt.Printf("[AGENT] global provider set to %s\n", name)
	return nil
}
