package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"bistro/internal/engine"
)

// Assistant turns free-text commands into catalog invocations. The model
// picks the action and parameters; the dispatcher does the work. Without a
// model, only the direct "action {json-params}" form is accepted.
type Assistant struct {
	model      llms.Model
	dispatcher *Dispatcher
}

// New creates an assistant over a dispatcher. model may be nil.
func New(model llms.Model, dispatcher *Dispatcher) *Assistant {
	return &Assistant{model: model, dispatcher: dispatcher}
}

// Catalog exposes the dispatcher's action catalog.
func (a *Assistant) Catalog() []ActionSpec {
	return a.dispatcher.Catalog()
}

// Execute runs a named action directly, bypassing the model.
func (a *Assistant) Execute(name string, params map[string]interface{}) engine.Result {
	return a.dispatcher.Execute(name, params)
}

// invocation is the shape the model is asked to produce.
type invocation struct {
	Action string                 `json:"action"`
	Params map[string]interface{} `json:"params"`
}

// Handle routes one free-text command. An unroutable command is an
// expected failure; only model/transport problems are errors.
func (a *Assistant) Handle(ctx context.Context, text string) (engine.Result, error) {
	if inv, ok := parseDirect(text); ok {
		return a.dispatcher.Execute(inv.Action, inv.Params), nil
	}
	if a.model == nil {
		return engine.Result{Success: false, Message: "no model configured; use the direct 'action {params}' form"}, nil
	}

	response, err := llms.GenerateFromSinglePrompt(ctx, a.model, a.buildPrompt(text))
	if err != nil {
		return engine.Result{}, fmt.Errorf("model call failed: %w", err)
	}

	inv, err := parseInvocation(response)
	if err != nil {
		return engine.Result{Success: false, Message: fmt.Sprintf("could not understand command: %v", err)}, nil
	}
	return a.dispatcher.Execute(inv.Action, inv.Params), nil
}

// buildPrompt lists the catalog and asks for a single JSON invocation.
func (a *Assistant) buildPrompt(text string) string {
	var b strings.Builder
	b.WriteString("You are the command router for a restaurant simulation. ")
	b.WriteString("Translate the player's request into exactly one action from this catalog, ")
	b.WriteString("answering with JSON of the form {\"action\": name, \"params\": {...}} and nothing else.\n\n")
	for _, spec := range a.dispatcher.Catalog() {
		fmt.Fprintf(&b, "- %s: %s\n", spec.Name, spec.Description)
		for _, p := range spec.Params {
			required := ""
			if p.Required {
				required = " (required)"
			}
			fmt.Fprintf(&b, "    %s %s%s: %s\n", p.Name, p.Type, required, p.Description)
		}
	}
	fmt.Fprintf(&b, "\nRequest: %s\n", text)
	return b.String()
}

// parseDirect accepts "action_name" or "action_name {json params}".
func parseDirect(text string) (invocation, bool) {
	text = strings.TrimSpace(text)
	name, rest, _ := strings.Cut(text, " ")
	if name == "" || strings.ContainsAny(name, "{}") || !isActionName(name) {
		return invocation{}, false
	}

	inv := invocation{Action: name, Params: map[string]interface{}{}}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return inv, true
	}
	if err := json.Unmarshal([]byte(rest), &inv.Params); err != nil {
		return invocation{}, false
	}
	return inv, true
}

func isActionName(s string) bool {
	for _, r := range s {
		if r != '_' && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

// parseInvocation extracts the JSON invocation from a model response,
// tolerating surrounding prose or code fences.
func parseInvocation(response string) (invocation, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return invocation{}, fmt.Errorf("no JSON object in response")
	}

	var inv invocation
	if err := json.Unmarshal([]byte(response[start:end+1]), &inv); err != nil {
		return invocation{}, err
	}
	if inv.Action == "" {
		return invocation{}, fmt.Errorf("response named no action")
	}
	if inv.Params == nil {
		inv.Params = map[string]interface{}{}
	}
	return inv, nil
}
