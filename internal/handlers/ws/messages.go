package ws

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/timebid/internal/models"
	"github.com/KirkDiggler/timebid/internal/services/coordinator"
)

// inboundMessage is the client envelope: {"type": "...", "data": {...}}
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type joinData struct {
	Name string      `json:"name"`
	Role models.Role `json:"role,omitempty"`
}

func decodeIntent(raw []byte) (*coordinator.Intent, error) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("message has no type")
	}

	intent := &coordinator.Intent{Type: coordinator.IntentType(msg.Type)}

	switch intent.Type {
	case coordinator.IntentJoin:
		var data joinData
		if err := unmarshalData(msg.Data, &data); err != nil {
			return nil, err
		}
		intent.Name = data.Name
		intent.Role = data.Role

	case coordinator.IntentUpdateSettings:
		patch := &coordinator.SettingsPatch{}
		if err := unmarshalData(msg.Data, patch); err != nil {
			return nil, err
		}
		intent.Settings = patch
	}

	return intent, nil
}

func unmarshalData(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}
