package prettyprint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mbiondo/logShaper/core"
	"github.com/mbiondo/logShaper/pkg/ansi"
)

func init() {
	// Auto-register this stage
	core.RegisterStage("prettyprint", NewPrettyPrinterFromConfig)
}

// Config represents pretty-print stage configuration
type Config struct {
	Colorize bool `yaml:"colorize,omitempty"` // Style values by type
}

// NewPrettyPrinterFromConfig creates a pretty-print stage from a configuration map
func NewPrettyPrinterFromConfig(config map[string]any) (any, error) {
	var cfg Config
	if err := core.GetStageConfig(config, &cfg); err != nil {
		return nil, err
	}

	return New().WithColorize(cfg.Colorize), nil
}

// PrettyPrinter renders a human-oriented multi-line view of a record
type PrettyPrinter struct {
	colorize bool
}

// New creates a pretty-print stage without colorization
func New() *PrettyPrinter {
	return &PrettyPrinter{}
}

// WithColorize styles values by type: strings green, numbers blue,
// booleans yellow, null red
func (p *PrettyPrinter) WithColorize(colorize bool) *PrettyPrinter {
	p.colorize = colorize
	return p
}

// Name returns the stage type name
func (p *PrettyPrinter) Name() string {
	return "prettyprint"
}

// Transform replaces the message with the rendered view of level, message
// and meta, then clears meta.
func (p *PrettyPrinter) Transform(rec *core.Record) (*core.Record, bool, error) {
	return &core.Record{
		Level:   rec.Level,
		Message: p.render(rec.Flatten(), 0),
		Meta:    make(map[string]any),
	}, true, nil
}

// render formats a value recursively. Map keys are sorted so output is
// deterministic.
func (p *PrettyPrinter) render(value any, indent int) string {
	pad := strings.Repeat(" ", indent)

	switch v := value.(type) {
	case nil:
		return p.style("null", "red")
	case string:
		return "'" + p.style(v, "green") + "'"
	case bool:
		return p.style(fmt.Sprintf("%v", v), "yellow")
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return p.style(fmt.Sprintf("%v", v), "blue")
	case map[string]any:
		if len(v) == 0 {
			return "{}"
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString("{\n")
		for i, key := range keys {
			sb.WriteString(fmt.Sprintf("%s  %s: %s", pad, key, p.render(v[key], indent+2)))
			if i < len(keys)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(pad + "}")
		return sb.String()
	case []any:
		if len(v) == 0 {
			return "[]"
		}
		var sb strings.Builder
		sb.WriteString("[\n")
		for i, item := range v {
			sb.WriteString(fmt.Sprintf("%s  %s", pad, p.render(item, indent+2)))
			if i < len(v)-1 {
				sb.WriteString(",")
			}
			sb.WriteString("\n")
		}
		sb.WriteString(pad + "]")
		return sb.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// style wraps s in the given color when colorization is on
func (p *PrettyPrinter) style(s, color string) string {
	if !p.colorize {
		return s
	}
	return ansi.Apply(s, color)
}
