package filter

import (
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/goplaces/places"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) Compiler {
	c := &exprCompiler{}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	cache *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	// A zero spot gives the checker every variable and helper signature.
	env := createRuntimeEnvironment(&places.Spot{})

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

	filter := &exprFilter{
		expression: expression,
		program:    program,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Evaluate reports whether the spot matches. Spots the expression fails on
// do not match.
func (f *exprFilter) Evaluate(spot *places.Spot) bool {
	matched, err := f.Match(spot)
	return err == nil && matched
}

// Match evaluates the filter and reports runtime failures
func (f *exprFilter) Match(spot *places.Spot) (bool, error) {
	if spot == nil {
		return false, nil
	}

	result, err := expr.Run(f.program, createRuntimeEnvironment(spot))
	if err != nil {
		return false, &EvaluationError{Expression: f.expression, SpotName: spot.Name, Err: err}
	}

	// AsBool guarantees the type
	return result.(bool), nil
}

// Expression returns the expression as written
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the spot independent helpers. contains, startsWith
// and endsWith are expr operators and hasPrefix and hasSuffix are case
// sensitive builtins, so the case-insensitive helpers use other names.
func addHelperFunctions(env map[string]any) {
	env["containsText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWithText"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWithText"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
}

// createRuntimeEnvironment creates the environment a spot is evaluated in
func createRuntimeEnvironment(spot *places.Spot) map[string]any {
	env := make(map[string]any, 48)

	addHelperFunctions(env)

	env["Spot"] = spot
	env["Name"] = spot.Name
	env["Reference"] = spot.Reference
	env["PlaceID"] = spot.PlaceID
	env["Vicinity"] = spot.Vicinity
	env["Types"] = spot.Types
	env["Rating"] = spot.Rating
	env["UserRatingsTotal"] = spot.UserRatingsTotal
	env["BusinessStatus"] = spot.BusinessStatus
	env["Lat"] = spot.Location.Lat
	env["Lng"] = spot.Location.Lng
	env["PhotoCount"] = len(spot.Photos)
	env["Detailed"] = spot.IsDetailed()

	// Unknown price level and opening state read as -1 and false.
	env["PriceLevel"] = -1
	if spot.PriceLevel != nil {
		env["PriceLevel"] = *spot.PriceLevel
	}
	env["OpenNow"] = spot.OpenNow != nil && *spot.OpenNow

	details := spot.Details
	if details == nil {
		details = &places.SpotDetails{}
	}
	env["Address"] = details.FormattedAddress
	env["Phone"] = details.FormattedPhoneNumber
	env["Website"] = details.Website
	env["ReviewCount"] = len(details.Reviews)

	env["hasType"] = createHasTypeFunc(spot.Types)
	env["distanceTo"] = createDistanceToFunc(spot.Location)
	env["within"] = createWithinFunc(spot.Location)
	env["isOperational"] = createIsOperationalFunc(spot.BusinessStatus)
	env["alwaysOpen"] = createAlwaysOpenFunc(details.Periods)
	env["averageReview"] = createAverageReviewFunc(details.Reviews)

	return env
}

func createHasTypeFunc(types []string) func(string) bool {
	return func(t string) bool {
		return slices.Contains(types, strings.ToLower(t))
	}
}

func createDistanceToFunc(from places.Location) func(float64, float64) float64 {
	return func(lat, lng float64) float64 {
		return from.DistanceTo(places.Location{Lat: lat, Lng: lng})
	}
}

func createWithinFunc(from places.Location) func(float64, float64, float64) bool {
	return func(lat, lng, meters float64) bool {
		return from.DistanceTo(places.Location{Lat: lat, Lng: lng}) <= meters
	}
}

func createIsOperationalFunc(status string) func() bool {
	return func() bool {
		return status == "" || status == "OPERATIONAL"
	}
}

func createAlwaysOpenFunc(periods []places.Period) func() bool {
	return func() bool {
		return len(periods) == 1 && periods[0].AlwaysOpen()
	}
}

func createAverageReviewFunc(reviews []places.Review) func() float64 {
	return func() float64 {
		if len(reviews) == 0 {
			return 0
		}
		var sum float64
		for _, r := range reviews {
			sum += r.Rating
		}
		return sum / float64(len(reviews))
	}
}
