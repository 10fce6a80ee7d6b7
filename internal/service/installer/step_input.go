package installer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep collects one env var from a text field. Empty input is stored
// only when the step is optional.
type InputStep struct {
	key      string
	prompt   string
	optional bool
	validate func(string) error
	input    textinput.Model
	err      error
}

func newInputStep(key, prompt, placeholder string, optional bool, validate func(string) error) *InputStep {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = placeholder
	ti.EchoMode = textinput.EchoNormal

	return &InputStep{
		key:      key,
		prompt:   prompt,
		optional: optional,
		validate: validate,
		input:    ti,
	}
}

func NewTelegramTokenStep() Step {
	s := newInputStep("TELEGRAM_TOKEN", "Enter your Telegram Bot Token:", "123456789:ABCDEF...", false, nil)
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'
	return s
}

func NewAllowedUsersStep() Step {
	return newInputStep("TELEGRAM_ALLOWED_USERS",
		"Telegram user IDs allowed to use the bot, comma separated (empty = everyone):",
		"123456789,987654321", true, validateUserIDs)
}

func NewIdleTimeoutStep() Step {
	return newInputStep("SESSION_IDLE_TIMEOUT",
		"Drop unfinished entries after (empty = 30m):",
		"30m", true, validateDuration)
}

func NewMetricsAddrStep() Step {
	return newInputStep("METRICS_ADDR",
		"Address for /metrics and /healthz (empty = disabled):",
		":9090", true, nil)
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(s.input.Value())
		if value == "" && !s.optional {
			s.err = fmt.Errorf("a value is required")
			return s, nil
		}
		if value != "" && s.validate != nil {
			if err := s.validate(value); err != nil {
				s.err = err
				return s, nil
			}
		}
		if value != "" {
			state.EnvVars[s.key] = value
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	view := s.prompt + "\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		view += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return view + hintStyle.Render("(press enter to confirm)") + "\n"
}

func validateUserIDs(v string) error {
	for _, part := range strings.Split(v, ",") {
		if _, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err != nil {
			return fmt.Errorf("%q is not a numeric user id", part)
		}
	}
	return nil
}

func validateDuration(v string) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%q is not a duration like 30m or 1h", v)
	}
	if d < 0 {
		return fmt.Errorf("duration must not be negative")
	}
	return nil
}
