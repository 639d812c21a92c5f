package player

import "github.com/abhisek/prepsmart/internal/catalog"

// DrillView is a snapshot of the active drill step.
type DrillView struct {
	Step     *catalog.DrillStep
	Selected int // -1 until an option is chosen
}

// HasSelection reports whether an option has been chosen.
func (v DrillView) HasSelection() bool {
	return v.Selected >= 0
}

// DrillOutcome describes the result of a drill selection.
type DrillOutcome struct {
	Index  int
	Option catalog.DrillOption
	// Accepted is false when an earlier selection was already frozen.
	Accepted bool
}

// drillAttempt tracks the single selection allowed on a drill step.
type drillAttempt struct {
	step     *catalog.DrillStep
	selected int
}

func newDrillAttempt(step *catalog.DrillStep) *drillAttempt {
	return &drillAttempt{step: step, selected: -1}
}

// resolved reports whether the drill allows continuation. A drill without
// options has nothing to choose and never blocks the module.
func (d *drillAttempt) resolved() bool {
	return d.selected >= 0 || len(d.step.Options) == 0
}

// selectOption freezes the first valid selection. Later calls return the
// frozen outcome with Accepted=false.
func (d *drillAttempt) selectOption(i int) (DrillOutcome, error) {
	if d.selected >= 0 {
		return DrillOutcome{
			Index:  d.selected,
			Option: d.step.Options[d.selected],
		}, nil
	}
	if i < 0 || i >= len(d.step.Options) {
		return DrillOutcome{}, ErrInvalidChoice
	}
	d.selected = i
	return DrillOutcome{Index: i, Option: d.step.Options[i], Accepted: true}, nil
}

func drillNotification(opt catalog.DrillOption) Notification {
	if opt.IsCorrect {
		return Notification{Title: "Correct!", Body: opt.Feedback, Tone: ToneInfo}
	}
	return Notification{Title: "Try Again", Body: opt.Feedback, Tone: ToneError}
}
