package service

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/fatih/color"

	"github.com/darmiel/homeyctl/internal/core"
)

// hubEnv is the expression environment exposed to --filter expressions.
type hubEnv struct {
	ID    string `expr:"ID"`
	Name  string `expr:"Name"`
	State string `expr:"State"`
	Local bool   `expr:"Local"`
}

// filterHubs narrows the list with an expression over hub fields. An empty
// expression applies the default: only Homeys in an "online" sub-state.
func filterHubs(hubs []*core.Hub, expression string) ([]*core.Hub, error) {
	if expression == "" {
		online := make([]*core.Hub, 0, len(hubs))
		for _, hub := range hubs {
			if hub.Online() {
				online = append(online, hub)
			}
		}
		return online, nil
	}

	program, err := expr.Compile(expression, expr.Env(hubEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling filter: %w", err)
	}

	matched := make([]*core.Hub, 0, len(hubs))
	for _, hub := range hubs {
		out, err := expr.Run(program, hubEnv{
			ID:    hub.ID,
			Name:  hub.Name,
			State: hub.State,
			Local: hub.LocalAddress != "",
		})
		if err != nil {
			return nil, fmt.Errorf("evaluating filter: %w", err)
		}
		if out.(bool) {
			matched = append(matched, hub)
		}
	}
	return matched, nil
}

// ColorState renders the display label of a state string, colorized by
// lifecycle phase.
func ColorState(state string) string {
	label := core.StateLabel(state)
	switch label {
	case "online":
		return color.GreenString(label)
	case "offline":
		return color.RedString(label)
	case "rebooting":
		return color.YellowString(label)
	case "updating":
		return color.MagentaString(label)
	}
	return label
}
