package session_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-agecalc/internal/session"
)

func TestNext_Table(t *testing.T) {
	const (
		I = session.Idle
		L = session.Loading
		S = session.Success
		E = session.Error
	)

	// rows: from state; columns: Start, Succeed, Fail, Reset
	table := map[session.LoadState][4]session.LoadState{
		I: {L, I, I, I},
		L: {L, S, E, I},
		S: {L, S, E, I},
		E: {L, S, E, I},
	}
	events := []session.Event{session.EventStart, session.EventSucceed, session.EventFail, session.EventReset}

	for from, row := range table {
		for i, ev := range events {
			t.Run(fmt.Sprintf("%s_%s", from, ev), func(t *testing.T) {
				assert.Equal(t, row[i], session.Next(from, ev))
			})
		}
	}
}

func TestLoadState_String(t *testing.T) {
	assert.Equal(t, "idle", session.Idle.String())
	assert.Equal(t, "loading", session.Loading.String())
	assert.Equal(t, "success", session.Success.String())
	assert.Equal(t, "error", session.Error.String())
	assert.Equal(t, "unknown", session.LoadState(42).String())
	assert.Equal(t, "start", session.EventStart.String())
	assert.Equal(t, "reset", session.EventReset.String())
}
