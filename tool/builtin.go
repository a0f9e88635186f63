package tool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/hupe1980/reactmesh/core"
)

// BuiltinOptions configures the built-in tools.
type BuiltinOptions struct {
	// OutputDir is where submit_content writes submissions. Defaults to ".".
	OutputDir string
	// Now overrides the clock used by current_date and submit_content.
	Now func() time.Time
}

var builtins = map[string]func(o BuiltinOptions) Tool{
	"submit_content":          SubmitContent,
	"calculate_price_growth":  CalculatePriceGrowth,
	"current_date":            CurrentDate,
	"get_current_temperature": CurrentTemperature,
}

// BuiltinNames returns the names of all built-in tools, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Builtin returns the built-in tool registered under name.
func Builtin(name string, opts BuiltinOptions) (Tool, error) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin tool %q", name)
	}
	return ctor(opts), nil
}

func (o BuiltinOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// SubmitContent stores the given content in a timestamped file.
func SubmitContent(o BuiltinOptions) Tool {
	return NewFunctionTool(
		"submit_content",
		"Submits the content. The text content is saved and a confirmation message is returned.",
		Signature{"content": TypeString},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			content, _ := args["content"].(string)
			dir := o.OutputDir
			if dir == "" {
				dir = "."
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
			path := filepath.Join(dir, fmt.Sprintf("submission_%s.txt", o.now().Format("2006-01-02-15-04-05")))
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return nil, fmt.Errorf("write submission: %w", err)
			}
			tc.LogInfo("tool.submit_content.saved", "path", path, "bytes", len(content))
			return "Content submitted successfully.", nil
		},
	)
}

// CalculatePriceGrowth computes the relative growth between two prices.
func CalculatePriceGrowth(BuiltinOptions) Tool {
	return NewFunctionTool(
		"calculate_price_growth",
		"Calculate the growth rate between two prices. Returns a message containing the growth rate.",
		Signature{"start_price": TypeFloat, "end_price": TypeFloat},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			start, okStart := args["start_price"].(float64)
			end, okEnd := args["end_price"].(float64)
			if !okStart || !okEnd {
				return nil, errors.New("both start_price and end_price must be numbers. Call calculate_price_growth again, once you have the actual prices")
			}
			if start == 0 {
				return nil, errors.New("start_price must not be zero")
			}
			growth := (end - start) / start
			return fmt.Sprintf("The growth rate between %g and %g is %.4f.", start, end, growth), nil
		},
	)
}

// CurrentDate returns today's date.
func CurrentDate(o BuiltinOptions) Tool {
	return NewFunctionTool(
		"current_date",
		"Get the current date in YYYY-MM-DD format.",
		Signature{},
		func(*core.ToolContext, map[string]any) (any, error) {
			return o.now().Format(DateLayout), nil
		},
	)
}

// CurrentTemperature is a canned weather lookup useful for demos.
func CurrentTemperature(BuiltinOptions) Tool {
	return NewFunctionTool(
		"get_current_temperature",
		"Get the temperature for a given location, for example 'London' or 'New York'. The unit is either 'celsius' or 'fahrenheit'.",
		Signature{"location": TypeString, "unit": TypeString},
		func(_ *core.ToolContext, args map[string]any) (any, error) {
			location, _ := args["location"].(string)
			unit, _ := args["unit"].(string)
			if unit == "" {
				unit = "celsius"
			}
			temp := 15
			if location == "New York" {
				temp = 25
			}
			out, err := json.Marshal(map[string]any{"temperature": temp, "unit": unit})
			if err != nil {
				return nil, err
			}
			return string(out), nil
		},
	)
}
