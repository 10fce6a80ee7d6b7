package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	dir   string
	path  string
	err   error
	saved bool
}

func NewSaveEnvStep(dir string) Step {
	return &SaveEnvStep{dir: dir}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}
	if s.err != nil {
		return s, nil
	}

	path, err := state.SaveEnv(s.dir)
	if err != nil {
		s.err = err
		return s, nil
	}

	s.path = path
	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return fmt.Sprintf("Configuration saved to %s\n", s.path)
	}
	return "Saving configuration...\n"
}
