package wizard

// mode is what the question view is waiting for.
type mode int

const (
	// modeChoose shows the question and the answer/prompt buttons.
	modeChoose mode = iota

	// modePrompt additionally shows the suggestions for the question.
	modePrompt

	// modeInput has the answer field focused.
	modeInput
)
