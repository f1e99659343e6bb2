// Package mode defines the editor modes and the transitions between them.
//
// The engine is always in exactly one Mode. Visual mode carries a
// VisualKind (char, line or block) and Command mode a CommandKind
// (forward search, backward search or ex command). A State bundles the
// mode with its sub-kind.
//
// # Transitions
//
// Manager holds the current State. Switch runs the entry action
// registered for the target mode and then notifies change callbacks:
//
//	m := mode.NewManager()
//	m.SetEnter(mode.Normal, func(from mode.State) { resetPending() })
//	m.Switch(mode.State{Mode: mode.Visual, Visual: mode.VisualLine})
//
// Entry actions run on every switch, including a switch to the state
// already active, so entering Normal twice leaves the same result as
// entering it once. Change callbacks only fire when the state differs.
package mode
