package network

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Inbound message names.
const (
	MsgJoin       = "joinGame"
	MsgMove       = "playerMove"
	MsgPickUp     = "pickUpBrainRot"
	MsgSell       = "sellBrainRot"
	MsgSteal      = "stealBrainRot"
	MsgUpgrade    = "upgradeBase"
	MsgLockBase   = "lockBase"
	MsgAdminEvent = "triggerAdminEvent"
	MsgChat       = "chatMessage"
	MsgHeartbeat  = "heartbeat"
)

// payloadSchemas validates the data field of each inbound message before it
// reaches the engine. Movement deltas get a generous structural bound here;
// the real anti-cheat limits live in the engine.
var payloadSchemas = map[string]*jsonschema.Schema{
	MsgJoin: jsonschema.MustCompileString("joinGame.json", `{
		"type": "object",
		"properties": {
			"username": {"type": "string", "maxLength": 32},
			"mode": {"type": "string", "enum": ["online", "solo", "ai"]}
		},
		"additionalProperties": false
	}`),
	MsgMove: jsonschema.MustCompileString("playerMove.json", `{
		"type": "object",
		"required": ["dx", "dy"],
		"properties": {
			"dx": {"type": "number", "minimum": -1000, "maximum": 1000},
			"dy": {"type": "number", "minimum": -1000, "maximum": 1000}
		},
		"additionalProperties": false
	}`),
	MsgPickUp: jsonschema.MustCompileString("pickUpBrainRot.json", `{
		"type": "object",
		"required": ["rotId"],
		"properties": {
			"rotId": {"type": "string", "minLength": 1, "maxLength": 64}
		},
		"additionalProperties": false
	}`),
	MsgSell: jsonschema.MustCompileString("sellBrainRot.json", `{
		"type": "object",
		"required": ["rotId"],
		"properties": {
			"rotId": {"type": "string", "minLength": 1, "maxLength": 64}
		},
		"additionalProperties": false
	}`),
	MsgSteal: jsonschema.MustCompileString("stealBrainRot.json", `{
		"type": "object",
		"required": ["targetPlayerId", "rotId"],
		"properties": {
			"targetPlayerId": {"type": "string", "minLength": 1, "maxLength": 64},
			"rotId": {"type": "string", "minLength": 1, "maxLength": 64}
		},
		"additionalProperties": false
	}`),
	MsgUpgrade: jsonschema.MustCompileString("upgradeBase.json", `{
		"type": "object",
		"required": ["upgradeType"],
		"properties": {
			"upgradeType": {"type": "string", "enum": ["capacity", "generation"]},
			"baseNumber": {"type": "integer", "minimum": 1, "maximum": 6}
		},
		"additionalProperties": false
	}`),
	MsgLockBase: jsonschema.MustCompileString("lockBase.json", `{
		"type": "object",
		"additionalProperties": false
	}`),
	MsgAdminEvent: jsonschema.MustCompileString("triggerAdminEvent.json", `{
		"type": "object",
		"properties": {
			"duration": {"type": "integer", "minimum": 0, "maximum": 86400000}
		},
		"additionalProperties": false
	}`),
	MsgChat: jsonschema.MustCompileString("chatMessage.json", `{
		"type": "object",
		"required": ["message"],
		"properties": {
			"message": {"type": "string", "maxLength": 2000}
		},
		"additionalProperties": false
	}`),
	MsgHeartbeat: jsonschema.MustCompileString("heartbeat.json", `{
		"type": "object",
		"additionalProperties": false
	}`),
}

// ValidatePayload checks an inbound message payload against its schema.
// Unknown events fail; an absent payload validates as an empty object.
func ValidatePayload(event string, data json.RawMessage) error {
	schema, ok := payloadSchemas[event]
	if !ok {
		return fmt.Errorf("unknown event %q", event)
	}
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("payload not valid JSON: %w", err)
	}
	return schema.Validate(v)
}
