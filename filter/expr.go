// Package filter evaluates expr-lang expressions against decoded API payloads.
//
// The payload is flattened to its JSON form, so expressions use the wire
// field names:
//
//	general_information.status == "active" and "DE" in targeting.countries
//	budget.max_bid > 0.5 and hasField("schedule.days")
//	icontains(general_information.name, "sale")
//
// The expr builtins (lower, upper, trim, now, len, ...) and the contains,
// startsWith and endsWith operators are available as usual.
package filter

import (
	"encoding/json"
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DataKey holds the whole payload in the expression environment
const DataKey = "data"

// Option configures a Compiler
type Option func(*Compiler)

// WithCache enables caching of compiled filters
func WithCache(size int) Option {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newProgramCache[*Filter](size)
		}
	}
}

// WithCustomFunctions adds helper functions to every filter
func WithCustomFunctions(funcs map[string]any) Option {
	return func(c *Compiler) {
		maps.Copy(c.helperFuncs, funcs)
	}
}

// Compiler turns expressions into filters
type Compiler struct {
	helperFuncs map[string]any
	cache       *programCache[*Filter]
}

// NewCompiler creates an expr-based filter compiler
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile compiles an expression into an executable filter
func (c *Compiler) Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.lookup(expression); ok {
			return cached, nil
		}
	}

	env := make(map[string]any, len(c.helperFuncs)+3)
	maps.Copy(env, c.helperFuncs)
	addPayloadFunctions(env, nil)

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &Filter{
		expression:  expression,
		program:     program,
		helperFuncs: c.helperFuncs,
	}

	if c.cache != nil {
		c.cache.store(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters and resets the statistics
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.reset()
	}
}

// Size returns the number of cached filters
func (c *Compiler) Size() int {
	return c.CacheStats().Entries
}

// CacheStats reports cache usage; the zero value when caching is off
func (c *Compiler) CacheStats() CacheStats {
	if c.cache == nil {
		return CacheStats{}
	}
	return c.cache.snapshot()
}

// Filter is a compiled expression. It is safe for concurrent use.
type Filter struct {
	expression  string
	program     *vm.Program
	helperFuncs map[string]any
}

// Expression returns the original expression
func (f *Filter) Expression() string {
	return f.expression
}

// Match reports whether the payload satisfies the filter
func (f *Filter) Match(payload any) (bool, error) {
	data, err := toData(payload)
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "payload is not JSON encodable",
			Err:        err,
		}
	}

	result, err := expr.Run(f.program, f.environment(data))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	// AsBool guarantees the result type
	return result.(bool), nil
}

func (f *Filter) environment(data any) map[string]any {
	env := make(map[string]any, 32)

	if object, ok := data.(map[string]any); ok {
		maps.Copy(env, object)
	}

	// helpers shadow payload fields of the same name
	maps.Copy(env, f.helperFuncs)
	addPayloadFunctions(env, data)
	env[DataKey] = data

	return env
}

func toData(payload any) (any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// lookup resolves a dotted path through nested objects
func lookup(data any, path string) (any, bool) {
	current := data
	for _, part := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = object[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

func addPayloadFunctions(env map[string]any, data any) {
	env["field"] = func(path string) any {
		value, _ := lookup(data, path)
		return value
	}
	env["hasField"] = func(path string) bool {
		value, ok := lookup(data, path)
		return ok && value != nil
	}
}

func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)

	// Date helpers
	funcs["daysSince"] = func(date string) int {
		t, ok := parseTime(date)
		if !ok {
			return 0
		}
		return int(time.Since(t).Hours() / 24)
	}
	funcs["parseDate"] = func(date string) time.Time {
		t, _ := parseTime(date)
		return t
	}

	// Case-insensitive variants of the contains, startsWith and endsWith operators
	funcs["icontains"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	funcs["istartsWith"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	funcs["iendsWith"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}

	return funcs
}

func parseTime(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
