package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Fepozopo/edgedetect/pkg/edge"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeFloat  ParamType = "float"
	ParamTypeKernel ParamType = "kernel"
	ParamTypeString ParamType = "string"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a client can use to validate input before invoking a command.
type ValidationRule struct {
	Type     ParamType `json:"type"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Example  string    `json:"example,omitempty"`
	Hint     string    `json:"hint,omitempty"`
}

func bound(v float64) *float64 {
	return &v
}

// argBounds holds the accepted range of the numeric arguments. Sigma is clamped by the engine,
// so it only needs to be positive here.
var argBounds = map[string][2]*float64{
	"threshold": {bound(edge.MinThreshold), bound(edge.MaxThreshold)},
	"high":      {bound(edge.MinThreshold), bound(edge.MaxThreshold)},
	"low":       {bound(edge.MinThreshold), bound(edge.MaxThreshold)},
	"sigma":     {bound(0), nil},
}

// GenerateTooltip produces a tooltip string from a CommandSpec.
func GenerateTooltip(c edge.CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(c.Args) == 0 {
		sb.WriteString(" (no parameters)")
		return sb.String()
	}
	sb.WriteString(" Parameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)", a.Name, a.Type, req))
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules creates ValidationRule entries from a CommandSpec.
func GenerateValidationRules(c edge.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		var t ParamType
		switch strings.ToLower(a.Type) {
		case "float":
			t = ParamTypeFloat
		case "kernel":
			t = ParamTypeKernel
		default:
			t = ParamTypeString
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
		if b, ok := argBounds[a.Name]; ok && t == ParamTypeFloat {
			r.Min, r.Max = b[0], b[1]
		}
		rules[a.Name] = r
	}
	return rules
}

// MetaStore indexes command specs by name.
type MetaStore struct {
	Commands []edge.CommandSpec
	byName   map[string]edge.CommandSpec
}

// NewMetaStore creates a MetaStore from a CommandSpec list.
func NewMetaStore(cmds []edge.CommandSpec) *MetaStore {
	m := &MetaStore{Commands: cmds, byName: make(map[string]edge.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// GetTooltip returns the tooltip string for a command.
func (m *MetaStore) GetTooltip(name string) (string, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), nil
}

// GetValidationRules returns validation rules for a command.
func (m *MetaStore) GetValidationRules(name string) (map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateValidationRules(c), nil
}

// NormalizeArgs checks args against the command's metadata and returns them in canonical form,
// one entry per declared argument. Missing optional arguments are returned as "".
func NormalizeArgs(store *MetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	rules := GenerateValidationRules(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		var raw string
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("parameter %s: expected a finite number, got %q", a.Name, raw)
			}
			if vr.Min != nil && f < *vr.Min {
				return nil, fmt.Errorf("parameter %s: %v < min %v", a.Name, f, *vr.Min)
			}
			if vr.Max != nil && f > *vr.Max {
				return nil, fmt.Errorf("parameter %s: %v > max %v", a.Name, f, *vr.Max)
			}
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
		case ParamTypeKernel:
			if _, err := edge.ParseKernel(raw); err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			out[i] = raw
		default:
			out[i] = raw
		}
	}
	return out, nil
}
