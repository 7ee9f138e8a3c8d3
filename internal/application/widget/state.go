package widget

import "weather-widget/internal/domain/entity"

// Phase enumerates the lookup states of a widget.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

// State is the lookup state. Build it with Idle, Loading, Success or Failed; the
// zero value is Idle. Loading and Failed keep the last successful result so it stays
// on screen, and only Failed carries a message.
type State struct {
	phase   Phase
	result  *entity.Weather
	message string
}

func Idle() State {
	return State{phase: PhaseIdle}
}

func Loading(previous *entity.Weather) State {
	return State{phase: PhaseLoading, result: previous}
}

func Success(result *entity.Weather) State {
	return State{phase: PhaseSuccess, result: result}
}

func Failed(message string, previous *entity.Weather) State {
	return State{phase: PhaseError, result: previous, message: message}
}

func (s State) Phase() Phase {
	if s.phase == "" {
		return PhaseIdle
	}
	return s.phase
}

// Result is the weather to display, which may be a previous one while loading or failed.
func (s State) Result() *entity.Weather {
	return s.result
}

// Message is the fetch error text; empty unless the phase is PhaseError.
func (s State) Message() string {
	return s.message
}

func (s State) IsLoading() bool {
	return s.phase == PhaseLoading
}

// settled returns the state to fall back to once a fetch error is dismissed
func (s State) settled() State {
	if s.result != nil {
		return Success(s.result)
	}
	return Idle()
}

// View is a snapshot of everything the widget renders.
type View struct {
	// Input is the text field content, exactly as typed.
	Input string
	// InputError is the validation message for Input, if any.
	InputError string
	State      State
}

// ErrorMessage is the single error line shown under the form.
func (v View) ErrorMessage() string {
	if v.InputError != "" {
		return v.InputError
	}
	return v.State.Message()
}
