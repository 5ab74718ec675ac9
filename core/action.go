package core

// Action is one unit of caller supplied logic in a fiber. It receives the
// shared InvocationContext of the running impulse and the current (normalized)
// carried value, and returns the value handed to the next stage.
//
// Returning a non-nil error aborts the impulse with exactly that error. An
// action may block; blocking is how asynchronous work is expressed. Actions
// of the same Group run on separate goroutines.
type Action func(ic *InvocationContext, data any) (any, error)

// Stage is one position in a fiber: either a single action or a concurrent
// group of actions. Stages are immutable once constructed.
type Stage struct {
	actions []Action
}

// Step creates a stage holding a single action. It behaves exactly like a
// group of width one.
func Step(a Action) Stage {
	return Stage{actions: []Action{a}}
}

// Group creates a stage whose actions run concurrently. The stage settles
// once every action has returned, or as soon as one of them fails.
func Group(actions ...Action) Stage {
	cp := make([]Action, len(actions))
	copy(cp, actions)
	return Stage{actions: cp}
}

// Steps converts a list of actions into sequential single-action stages.
func Steps(actions ...Action) []Stage {
	stages := make([]Stage, 0, len(actions))
	for _, a := range actions {
		stages = append(stages, Step(a))
	}
	return stages
}

// Actions returns a copy of the stage's actions in declaration order.
func (s Stage) Actions() []Action {
	cp := make([]Action, len(s.actions))
	copy(cp, s.actions)
	return cp
}

// Width returns the number of actions in the stage.
func (s Stage) Width() int { return len(s.actions) }

// Identity is an action that returns its input unchanged.
func Identity(_ *InvocationContext, data any) (any, error) { return data, nil }
