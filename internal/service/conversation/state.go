package conversation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/butler/internal/core"
)

// SkipMarker stores an empty value for the field being asked.
const SkipMarker = "s"

var ErrUnknownState = errors.New("no transition from state")

type Flow string

const (
	FlowForwarded Flow = "forwarded"
	FlowManual    Flow = "manual"
)

type State string

const (
	StateIdle State = "idle"

	StateForwardCompany      State = "forward.company"
	StateForwardMeetingPlace State = "forward.meeting_place"
	StateForwardDescription  State = "forward.description"
	StateForwardPriority     State = "forward.priority"

	StateManualUsername     State = "manual.username"
	StateManualDescription  State = "manual.description"
	StateManualCompany      State = "manual.company"
	StateManualMeetingPlace State = "manual.meeting_place"
	StateManualPriority     State = "manual.priority"

	// StateCommit is terminal: the draft is complete and goes to the store.
	StateCommit State = "commit"
)

type Field int

const (
	FieldUsername Field = iota + 1
	FieldDescription
	FieldCompany
	FieldMeetingPlace
	FieldPriority
)

func (f Field) String() string {
	switch f {
	case FieldUsername:
		return "username"
	case FieldDescription:
		return "description"
	case FieldCompany:
		return "company"
	case FieldMeetingPlace:
		return "meeting_place"
	case FieldPriority:
		return "priority"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Apply writes value into the field of rec.
func (f Field) Apply(rec *core.Interaction, value string) {
	switch f {
	case FieldUsername:
		rec.Username = value
	case FieldDescription:
		rec.Description = value
	case FieldCompany:
		rec.Company = value
	case FieldMeetingPlace:
		rec.MeetingPlace = value
	case FieldPriority:
		rec.Priority = value
	}
}

// step is what a state collects, where it leads, and the question asked while in it.
type step struct {
	field  Field
	next   State
	prompt string
}

const (
	forwardSkipHint = "Press 's' and then enter to skip."
	manualSkipHint  = "(Type 's' and then enter to skip)"
)

var steps = map[State]step{
	StateForwardCompany:      {FieldCompany, StateForwardMeetingPlace, "Which company does this person work at? " + forwardSkipHint},
	StateForwardMeetingPlace: {FieldMeetingPlace, StateForwardDescription, "Where did you meet? " + forwardSkipHint},
	StateForwardDescription:  {FieldDescription, StateForwardPriority, "Brief description (optional)? " + forwardSkipHint},
	StateForwardPriority:     {FieldPriority, StateCommit, "Please set the priority (i.e. 1,2,3). " + forwardSkipHint},

	StateManualUsername:     {FieldUsername, StateManualDescription, "Please enter the username. " + manualSkipHint},
	StateManualDescription:  {FieldDescription, StateManualCompany, "Please enter a description. " + manualSkipHint},
	StateManualCompany:      {FieldCompany, StateManualMeetingPlace, "Which company does this person work at? " + manualSkipHint},
	StateManualMeetingPlace: {FieldMeetingPlace, StateManualPriority, "Where did you meet? " + manualSkipHint},
	StateManualPriority:     {FieldPriority, StateCommit, "Please set the priority (i.e. 1,2,3). " + manualSkipHint},
}

var entryStates = map[Flow]State{
	FlowForwarded: StateForwardCompany,
	FlowManual:    StateManualUsername,
}

var committedText = map[Flow]string{
	FlowForwarded: "Logged successfully! Forward another chat or use /generateCSV to get your interactions.",
	FlowManual:    "Data manually logged successfully!",
}

// Outcome is the effect of feeding one answer to a state.
type Outcome struct {
	Field  Field
	Value  string
	Next   State
	Prompt string
	Commit bool
}

// Transition is the whole state machine: it never touches a draft or a store.
func Transition(state State, input string) (Outcome, error) {
	st, ok := steps[state]
	if !ok {
		return Outcome{}, fmt.Errorf("%w %q", ErrUnknownState, state)
	}

	out := Outcome{
		Field:  st.field,
		Value:  captured(input),
		Next:   st.next,
		Commit: st.next == StateCommit,
	}
	if !out.Commit {
		out.Prompt = steps[st.next].prompt
	}
	return out, nil
}

// Prompt is the question asked while in state, empty for idle and commit.
func Prompt(state State) string {
	return steps[state].prompt
}

// EntryState is the first state of flow.
func EntryState(flow Flow) State {
	return entryStates[flow]
}

func captured(input string) string {
	if input == SkipMarker {
		return ""
	}
	return strings.TrimSpace(input)
}
