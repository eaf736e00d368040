package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// Validator Kinds
// =============================================================================

// Kind identifies which concrete validation rule a validator config
// instantiates. The set of kinds is closed: every kind has exactly one
// implementation in this package.
type Kind string

const (
	// Setting-level kinds.
	KindRequired     Kind = "required"
	KindRange        Kind = "range"
	KindRegex        Kind = "regex"
	KindStringLength Kind = "stringLength"
	KindURI          Kind = "uri"
	KindComparison   Kind = "comparison"

	// Recipe-level kinds.
	KindFargateTaskSizeCpuMemoryLimits Kind = "fargateTaskSizeCpuMemoryLimits"
	KindRequiredSetting                Kind = "requiredSetting"
)

// SettingKinds returns every kind valid in a setting-level validator list.
func SettingKinds() []Kind {
	return []Kind{
		KindRequired,
		KindRange,
		KindRegex,
		KindStringLength,
		KindURI,
		KindComparison,
	}
}

// RecipeKinds returns every kind valid in a recipe-level validator list.
func RecipeKinds() []Kind {
	return []Kind{
		KindFargateTaskSizeCpuMemoryLimits,
		KindRequiredSetting,
	}
}

// IsSettingKind reports whether the kind is a setting-level kind.
func (k Kind) IsSettingKind() bool {
	switch k {
	case KindRequired, KindRange, KindRegex, KindStringLength, KindURI, KindComparison:
		return true
	default:
		return false
	}
}

// IsRecipeKind reports whether the kind is a recipe-level kind.
func (k Kind) IsRecipeKind() bool {
	switch k {
	case KindFargateTaskSizeCpuMemoryLimits, KindRequiredSetting:
		return true
	default:
		return false
	}
}

// =============================================================================
// Config
// =============================================================================

// Config is the serialized form of one validator: a kind tag plus an opaque
// payload whose shape depends on the kind. The payload is kept raw and only
// decoded by the concrete validator selected by the kind tag.
type Config struct {
	ValidatorType Kind            `json:"validatorType"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
}

// =============================================================================
// Results and Interfaces
// =============================================================================

// Result is the outcome of running one validator.
type Result struct {
	Valid          bool
	FailureMessage string
}

// Pass returns a passing result.
func Pass() Result {
	return Result{Valid: true}
}

// Fail returns a failing result with the given message.
func Fail(message string) Result {
	return Result{Valid: false, FailureMessage: message}
}

// SettingValidator validates a single setting value.
type SettingValidator interface {
	Validate(value any) Result
}

// SettingsSource resolves a dotted setting path to its effective value.
// Recipe-level validators read cross-setting state through this interface
// rather than holding references into a settings tree.
type SettingsSource interface {
	ResolveValue(path string) (any, error)
}

// RecipeValidator validates cross-setting state of a configured recipe.
type RecipeValidator interface {
	Validate(source SettingsSource) Result
}

// =============================================================================
// Setting Validators
// =============================================================================

// RequiredValidator fails when the value stringifies to an empty string.
type RequiredValidator struct {
	ValidationFailedMessage string `json:"validationFailedMessage"`
}

// NewRequiredValidator returns a RequiredValidator with default messaging.
func NewRequiredValidator() *RequiredValidator {
	return &RequiredValidator{ValidationFailedMessage: "Value is required."}
}

func (v *RequiredValidator) Validate(value any) Result {
	if strings.TrimSpace(stringify(value)) == "" {
		return Fail(v.ValidationFailedMessage)
	}
	return Pass()
}

// RangeValidator checks that a numeric value falls inside an inclusive range.
type RangeValidator struct {
	Min                     float64 `json:"min"`
	Max                     float64 `json:"max"`
	ValidationFailedMessage string  `json:"validationFailedMessage"`
}

// NewRangeValidator returns a RangeValidator accepting any numeric value.
func NewRangeValidator() *RangeValidator {
	return &RangeValidator{Min: -math.MaxFloat64, Max: math.MaxFloat64}
}

func (v *RangeValidator) Validate(value any) Result {
	n, ok := toFloat(value)
	if !ok {
		return Fail(v.message("Value must be numeric."))
	}
	if n < v.Min || n > v.Max {
		return Fail(v.message(fmt.Sprintf("Value must be between %s and %s.",
			formatNumber(v.Min), formatNumber(v.Max))))
	}
	return Pass()
}

func (v *RangeValidator) message(fallback string) string {
	if v.ValidationFailedMessage != "" {
		return v.ValidationFailedMessage
	}
	return fallback
}

// RegexValidator checks a string value against a regular expression.
type RegexValidator struct {
	Regex                   string `json:"regex"`
	AllowEmptyString        bool   `json:"allowEmptyString"`
	ValidationFailedMessage string `json:"validationFailedMessage"`
}

// NewRegexValidator returns a RegexValidator that matches anything until a
// pattern is configured.
func NewRegexValidator() *RegexValidator {
	return &RegexValidator{Regex: ".*"}
}

func (v *RegexValidator) Validate(value any) Result {
	s := stringify(value)
	if s == "" && v.AllowEmptyString {
		return Pass()
	}
	re, err := regexp.Compile(v.Regex)
	if err != nil {
		return Fail(fmt.Sprintf("Invalid validation pattern %q: %v", v.Regex, err))
	}
	if !re.MatchString(s) {
		return Fail(v.message(fmt.Sprintf("Value must match the pattern %q.", v.Regex)))
	}
	return Pass()
}

func (v *RegexValidator) message(fallback string) string {
	if v.ValidationFailedMessage != "" {
		return v.ValidationFailedMessage
	}
	return fallback
}

// StringLengthValidator checks the rune length of a string value.
type StringLengthValidator struct {
	MinLength               int    `json:"minLength"`
	MaxLength               int    `json:"maxLength"`
	ValidationFailedMessage string `json:"validationFailedMessage"`
}

// NewStringLengthValidator returns a StringLengthValidator accepting any
// length.
func NewStringLengthValidator() *StringLengthValidator {
	return &StringLengthValidator{MinLength: 0, MaxLength: math.MaxInt32}
}

func (v *StringLengthValidator) Validate(value any) Result {
	length := len([]rune(stringify(value)))
	if length < v.MinLength || length > v.MaxLength {
		return Fail(v.message())
	}
	return Pass()
}

func (v *StringLengthValidator) message() string {
	if v.ValidationFailedMessage != "" {
		return v.ValidationFailedMessage
	}
	if v.MaxLength == math.MaxInt32 {
		return fmt.Sprintf("Value must be at least %d characters.", v.MinLength)
	}
	return fmt.Sprintf("Value must be between %d and %d characters.", v.MinLength, v.MaxLength)
}

// URIValidator checks that a string value parses as an absolute URI.
type URIValidator struct {
	AllowEmptyString        bool   `json:"allowEmptyString"`
	ValidationFailedMessage string `json:"validationFailedMessage"`
}

// NewURIValidator returns a URIValidator with default messaging.
func NewURIValidator() *URIValidator {
	return &URIValidator{ValidationFailedMessage: "Value must be a valid absolute URI."}
}

func (v *URIValidator) Validate(value any) Result {
	s := stringify(value)
	if s == "" && v.AllowEmptyString {
		return Pass()
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Fail(v.ValidationFailedMessage)
	}
	return Pass()
}

// Comparison operators accepted by ComparisonValidator.
const (
	OperatorGreaterThan          = "greaterThan"
	OperatorGreaterThanOrEqualTo = "greaterThanOrEqualTo"
	OperatorLessThan             = "lessThan"
	OperatorLessThanOrEqualTo    = "lessThanOrEqualTo"
)

// ComparisonValidator compares a numeric value against a configured operand.
type ComparisonValidator struct {
	Operator                string  `json:"operator"`
	Value                   float64 `json:"value"`
	ValidationFailedMessage string  `json:"validationFailedMessage"`
}

// NewComparisonValidator returns a ComparisonValidator with a permissive
// default comparison.
func NewComparisonValidator() *ComparisonValidator {
	return &ComparisonValidator{Operator: OperatorGreaterThanOrEqualTo, Value: -math.MaxFloat64}
}

func (v *ComparisonValidator) Validate(value any) Result {
	n, ok := toFloat(value)
	if !ok {
		return Fail(v.message("Value must be numeric."))
	}
	var valid bool
	switch v.Operator {
	case OperatorGreaterThan:
		valid = n > v.Value
	case OperatorGreaterThanOrEqualTo:
		valid = n >= v.Value
	case OperatorLessThan:
		valid = n < v.Value
	case OperatorLessThanOrEqualTo:
		valid = n <= v.Value
	default:
		return Fail(fmt.Sprintf("Unknown comparison operator %q.", v.Operator))
	}
	if !valid {
		return Fail(v.message(fmt.Sprintf("Value must be %s %s.",
			operatorPhrase(v.Operator), formatNumber(v.Value))))
	}
	return Pass()
}

func (v *ComparisonValidator) message(fallback string) string {
	if v.ValidationFailedMessage != "" {
		return v.ValidationFailedMessage
	}
	return fallback
}

func operatorPhrase(op string) string {
	switch op {
	case OperatorGreaterThan:
		return "greater than"
	case OperatorGreaterThanOrEqualTo:
		return "greater than or equal to"
	case OperatorLessThan:
		return "less than"
	case OperatorLessThanOrEqualTo:
		return "less than or equal to"
	default:
		return op
	}
}

// =============================================================================
// Value Helpers
// =============================================================================

// stringify renders a value the way it would be shown to a user. A nil value
// stringifies to the empty string.
func stringify(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// toFloat coerces decoded JSON scalars (and numeric strings) to float64.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// formatNumber renders a float without a trailing ".000000" when it holds an
// integral value, which is the common case for recipe bounds.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
