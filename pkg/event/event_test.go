package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGameAction(t *testing.T) {
	for _, a := range Actions {
		assert.Equal(t, a, ParseGameAction(a.String()))
	}

	assert.Equal(t, ActionRotate, ParseGameAction(" Rotate "))
	assert.Equal(t, ActionUnknown, ParseGameAction("hard-drop"))
	assert.Equal(t, "unknown", ActionUnknown.String())
}

func TestHandlers(t *testing.T) {
	var got []interface{}

	h := Handlers(func(e interface{}) {
		got = append(got, e)
	}, nil, func(e interface{}) {
		got = append(got, e)
	})

	h(&ScoreEvent{Score: 100})
	h(DrawAll)

	assert.Equal(t, []interface{}{&ScoreEvent{Score: 100}, &ScoreEvent{Score: 100}, DrawAll, DrawAll}, got)
}
