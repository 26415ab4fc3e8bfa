package domain

import "strings"

// ActionKind tags the on-chain operation a payment pays for.
type ActionKind string

const (
	ActionTransfer ActionKind = "transfer"
	ActionSwap     ActionKind = "swap"
	ActionCall     ActionKind = "call"
)

// KnownActions lists every action kind the dispatcher can execute.
var KnownActions = []ActionKind{ActionTransfer, ActionSwap, ActionCall}

// ParseAction normalizes s and reports whether it names a known action.
func ParseAction(s string) (ActionKind, bool) {
	a := ActionKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range KnownActions {
		if a == k {
			return a, true
		}
	}
	return a, false
}
