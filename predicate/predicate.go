// Package predicate compiles CEL expressions into engine predicates.
//
// Every dimension of a view is declared as a CEL string variable and every
// measure as a double, so `risk_level == "High" && total_outstanding > 0.0`
// works against the accounts view.
package predicate

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/cel-go/cel"

	"github.com/spektr-org/salesdesk/engine"
)

// ErrNotBoolean is returned for expressions that do not yield a bool.
var ErrNotBoolean = errors.New("expression is not boolean")

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Compiler holds a CEL environment declared for one record shape.
type Compiler struct {
	env        *cel.Env
	dimensions []string
	measures   []string
}

// NewCompiler declares dimensions as strings and measures as doubles. Keys
// that are not valid identifiers are left undeclared; a key present in both
// lists is treated as a measure.
func NewCompiler(dimensions, measures []string) (*Compiler, error) {
	c := &Compiler{}
	seen := make(map[string]bool)
	var opts []cel.EnvOption

	for _, m := range measures {
		if !identRe.MatchString(m) || seen[m] {
			continue
		}
		seen[m] = true
		c.measures = append(c.measures, m)
		opts = append(opts, cel.Variable(m, cel.DoubleType))
	}
	for _, d := range dimensions {
		if !identRe.MatchString(d) || seen[d] {
			continue
		}
		seen[d] = true
		c.dimensions = append(c.dimensions, d)
		opts = append(opts, cel.Variable(d, cel.StringType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	c.env = env
	return c, nil
}

// ForView declares the dimensions and measures view exposes.
func ForView(view engine.RecordView) (*Compiler, error) {
	return NewCompiler(view.DimensionKeys(), view.MeasureKeys())
}

// Compile type-checks expr and returns a predicate evaluating it per record.
// A record whose evaluation fails at runtime does not match.
func (c *Compiler) Compile(expr string) (engine.Predicate, error) {
	ast, iss := c.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, iss.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("compile %q: %w (got %s)", expr, ErrNotBoolean, ast.OutputType())
	}

	prg, err := c.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", expr, err)
	}

	return func(view engine.RecordView, i int) bool {
		out, _, err := prg.Eval(c.activation(view, i))
		if err != nil {
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}

func (c *Compiler) activation(view engine.RecordView, i int) map[string]any {
	vars := make(map[string]any, len(c.dimensions)+len(c.measures))
	for _, d := range c.dimensions {
		vars[d] = view.Dimension(i, d)
	}
	for _, m := range c.measures {
		vars[m] = view.Measure(i, m)
	}
	return vars
}

// Compile is a one-shot helper: ForView(view) then Compile(expr).
func Compile(expr string, view engine.RecordView) (engine.Predicate, error) {
	c, err := ForView(view)
	if err != nil {
		return nil, err
	}
	return c.Compile(expr)
}
