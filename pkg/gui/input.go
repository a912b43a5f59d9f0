package gui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/tetristerm/pkg/event"
)

type Keybinding struct {
	k tcell.Key
	r rune
	m tcell.ModMask

	a event.GameAction
}

func (kb *Keybinding) String() string {
	if kb.k == tcell.KeyRune {
		return fmt.Sprintf("%c", kb.r)
	}

	return tcell.KeyNames[kb.k]
}

// Matches reports whether ev is the key of this binding.
func (kb *Keybinding) Matches(ev *tcell.EventKey) bool {
	if kb.m != 0 && kb.m != ev.Modifiers() {
		return false
	}

	if kb.k == tcell.KeyRune {
		return ev.Key() == tcell.KeyRune && ev.Rune() == kb.r
	}

	return ev.Key() == kb.k
}

var keyByName map[string]tcell.Key

func init() {
	keyByName = make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		keyByName[strings.ToLower(name)] = k
	}
}

// ParseKeybinding reads a key name: a single character binds that rune, any
// other name is looked up in tcell.KeyNames ("Left", "Enter", "Ctrl-D").
func ParseKeybinding(name string, a event.GameAction) (*Keybinding, error) {
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return &Keybinding{k: tcell.KeyRune, r: r, a: a}, nil
	}

	k, ok := keyByName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown key %q", name)
	}

	return &Keybinding{k: k, a: a}, nil
}

// ParseKeybindings turns a per action list of key names into bindings,
// in event.Actions order.
func ParseKeybindings(actions map[event.GameAction][]string) ([]*Keybinding, error) {
	var keybindings []*Keybinding
	for _, a := range event.Actions {
		for _, name := range actions[a] {
			kb, err := ParseKeybinding(name, a)
			if err != nil {
				return nil, fmt.Errorf("keybinding for %s: %w", a, err)
			}

			keybindings = append(keybindings, kb)
		}
	}

	return keybindings, nil
}

// actionFor returns the action bound to ev, or event.ActionUnknown.
func actionFor(keybindings []*Keybinding, ev *tcell.EventKey) event.GameAction {
	for _, kb := range keybindings {
		if kb.Matches(ev) {
			return kb.a
		}
	}

	return event.ActionUnknown
}

// HelpText lists the bindings of every action.
func HelpText(keybindings []*Keybinding) string {
	var b strings.Builder
	for _, a := range event.Actions {
		var keys []string
		for _, kb := range keybindings {
			if kb.a == a {
				keys = append(keys, kb.String())
			}
		}
		if len(keys) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s: %s", a, strings.Join(keys, "/"))
	}

	return b.String()
}
