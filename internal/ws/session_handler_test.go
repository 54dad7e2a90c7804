package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakshot/backend/internal/game"
)

func TestDecodeInputAim(t *testing.T) {
	msg := WSMessage{Type: "aim", Data: json.RawMessage(`{"x": 420.5, "y": 111}`)}

	ev, ok, err := DecodeInput(msg)

	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, game.EventAim, ev.Type)
	assert.Equal(t, game.NewVec2(420.5, 111), ev.Pointer)
}

func TestDecodeInputAimMalformed(t *testing.T) {
	msg := WSMessage{Type: "aim", Data: json.RawMessage(`"not an object"`)}

	_, ok, err := DecodeInput(msg)

	assert.Error(t, err)
	assert.False(t, ok)
}

func TestDecodeInputDiscreteEvents(t *testing.T) {
	cases := map[string]game.EventType{
		"strike":           game.EventStrike,
		"power_up":         game.EventPowerUp,
		"power_down":       game.EventPowerDown,
		"toggle_guideline": game.EventToggleGuideline,
		"quit":             game.EventQuit,
	}

	for wire, want := range cases {
		ev, ok, err := DecodeInput(WSMessage{Type: wire})
		require.NoError(t, err, wire)
		require.True(t, ok, wire)
		assert.Equal(t, want, ev.Type, wire)
	}
}

func TestDecodeInputNonSimulationType(t *testing.T) {
	_, ok, err := DecodeInput(WSMessage{Type: "get_state"})

	assert.NoError(t, err)
	assert.False(t, ok, "get_state is not a simulation input")

	_, ok, err = DecodeInput(WSMessage{Type: "bogus"})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFrameEnvelopeWireShape(t *testing.T) {
	s := game.NewSession("tok", "Tester")
	f := s.Step(game.InputBatch{})

	data, err := json.Marshal(frameEnvelope{Type: "frame", Data: f})
	require.NoError(t, err)

	var decoded struct {
		Type string `json:"type"`
		Data struct {
			Tick    uint64        `json:"tick"`
			Power   float64       `json:"power"`
			Circles []game.Circle `json:"circles"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "frame", decoded.Type)
	assert.Equal(t, f.Tick, decoded.Data.Tick)
	assert.Len(t, decoded.Data.Circles, 16)
}
