//go:build wasm

package main

import (
	"bytes"
	"encoding/json"
	"syscall/js"

	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/serve"
)

// generate builds a rule set from a generate payload.
// JS: RulebridgeGenerate(payloadJSON) -> {ruleset} | {xml} | {error}
func generate(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "payload argument required"}
	}
	return generateJSON(args[0].String())
}

func generateJSON(payloadJSON string) map[string]interface{} {
	var payload serve.GeneratePayload
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return map[string]interface{}{"error": "invalid payload: " + err.Error()}
	}

	rs, err := ruleset.Generate(payload.Language, payload.Rules, payload.Properties)
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}

	switch payload.Format {
	case "", "json":
		out, err := json.Marshal(rs)
		if err != nil {
			return map[string]interface{}{"error": "failed to marshal rule set: " + err.Error()}
		}
		return map[string]interface{}{"ruleset": string(out)}
	case "xml":
		var buf bytes.Buffer
		if err := rs.WriteXML(&buf); err != nil {
			return map[string]interface{}{"error": "failed to write rule set: " + err.Error()}
		}
		return map[string]interface{}{"xml": buf.String()}
	default:
		return map[string]interface{}{"error": "unsupported format: " + payload.Format}
	}
}

// actionText returns the rule set spelling of an action value.
// JS: RulebridgeActionText(action) -> {text} | {error}
func actionText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "action argument required"}
	}
	return actionTextFor(args[0].Int())
}

func actionTextFor(action int) map[string]interface{} {
	text, err := ruleset.ActionText(ruleset.Action(action))
	if err != nil {
		return map[string]interface{}{"error": err.Error()}
	}
	return map[string]interface{}{"text": text}
}
