package rule

import (
	"regexp"
	"strings"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

/*
 * Value-literal classification.
 *
 * The target expression language has no separate literal syntax for numbers
 * vs. strings vs. identifiers, so the builder infers intent from shape.
 * Classify decides, per raw operand, whether to emit it verbatim (keyword,
 * numeral, macro token, pre-quoted string, field reference) or to wrap it in
 * double quotes.
 *
 * Priority order resolves ambiguity: a value equal to a known field name is
 * treated as a reference, not a string, because cross-field comparison is
 * the more common intent. Field matching only inspects the substring up to
 * the first colon so modifier suffixes like "status:isset" stay bare.
 *
 * Classify applies only to operands that carry values; operands that are
 * field or path references by contract bypass it entirely.
 */

// MacroSigil prefixes backend-builtin references such as @request.auth.id.
const MacroSigil = "@"

// numeralPattern matches signed integer and decimal literals.
var numeralPattern = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Classify turns a raw user-supplied value into a renderable token.
// fields is the set of known field names of the active database's schemas;
// a nil set disables field-reference recognition.
func Classify(raw string, fields types.FieldSet) string {
	v := strings.TrimSpace(raw)

	if isKeyword(v) {
		return v
	}
	if numeralPattern.MatchString(v) {
		return v
	}
	if strings.HasPrefix(v, MacroSigil) {
		return v
	}
	if isQuoted(v) {
		return v
	}
	if ref, _, _ := strings.Cut(v, ":"); fields.Has(ref) {
		return v
	}

	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// isKeyword reports whether v is a bare boolean or null keyword.
// Case-insensitive so pasted values like "True" stay unquoted.
func isKeyword(v string) bool {
	switch strings.ToLower(v) {
	case "true", "false", "null":
		return true
	}
	return false
}

// isQuoted reports whether v is already wrapped in a matching pair of
// single or double quotes.
func isQuoted(v string) bool {
	if len(v) < 2 {
		return false
	}
	first, last := v[0], v[len(v)-1]
	return first == last && (first == '"' || first == '\'')
}
