package event

import (
	"strings"
)

type GameAction int

const (
	ActionUnknown GameAction = iota
	ActionMoveLeft
	ActionMoveRight
	ActionRotate
	ActionSoftDrop
)

var actionNames = map[GameAction]string{
	ActionMoveLeft:  "move-left",
	ActionMoveRight: "move-right",
	ActionRotate:    "rotate",
	ActionSoftDrop:  "soft-drop",
}

// Actions lists every action a player can take, in display order.
var Actions = []GameAction{ActionMoveLeft, ActionMoveRight, ActionRotate, ActionSoftDrop}

func (a GameAction) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return "unknown"
}

func ParseGameAction(name string) GameAction {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return a
		}
	}

	return ActionUnknown
}
