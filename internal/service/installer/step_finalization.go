package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills defaults the runtime expects to find in .env
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func finalize(state *InstallState) {
	if state.EnvVars["BUTLER_DEBUG"] == "" {
		state.EnvVars["BUTLER_DEBUG"] = "0"
	}
	if state.EnvVars["SESSION_IDLE_TIMEOUT"] == "" {
		state.EnvVars["SESSION_IDLE_TIMEOUT"] = "30m"
	}
}
