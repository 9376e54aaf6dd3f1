package assistant

import (
	"context"
	"regexp"
	"strings"
)

// Direct-intent matching: an exact product lookup ("producto <token>") is
// unambiguous, so a model round trip for it only adds latency and cost. The
// matcher resolves that one pattern class by calling the product tool
// handler directly; everything else falls through to the model path.

var (
	skuPattern   = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9.\-]*$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
)

// cue words that introduce a product token.
var productCues = map[string]bool{
	"producto":  true,
	"productos": true,
	"product":   true,
}

// MatchDirectIntent checks the raw user message for the product-cue pattern
// and, when it matches, resolves it through the registry without the model.
// The second return is false when no direct answer could be produced; the
// caller must then fall through to the full model path. Failures are treated
// as "no match", never as errors.
func MatchDirectIntent(ctx context.Context, reg *Registry, text string) (string, bool) {
	token, ok := extractProductToken(text)
	if !ok {
		return "", false
	}

	name, args := classifyProductToken(token)
	out, err := reg.Invoke(ctx, name, args)
	if err != nil || strings.TrimSpace(out.Content) == "" {
		return "", false
	}
	return out.Content, true
}

// extractProductToken finds the cue word and returns the token following it,
// stripped of surrounding quotes and punctuation.
func extractProductToken(text string) (string, bool) {
	fields := strings.Fields(text)
	for i, f := range fields {
		if productCues[strings.ToLower(strings.Trim(f, `"'¿?!¡.,:;`))] && i+1 < len(fields) {
			token := strings.Trim(fields[i+1], `"'¿?!¡.,:;()`)
			if token != "" {
				return token, true
			}
		}
	}
	return "", false
}

// classifyProductToken picks the lookup tool by token shape:
// all digits of length >= 8 is a barcode, a code-shaped token is a SKU,
// anything else is free text. A plain word ("aceite") is not code-shaped:
// a SKU must carry a digit, a hyphen or a dot, so word tokens go to the
// name search instead of a doomed SKU lookup.
func classifyProductToken(token string) (tool string, args map[string]interface{}) {
	switch {
	case digitPattern.MatchString(token) && len(token) >= 8:
		return ToolProductByBarcode, map[string]interface{}{"barcode": token}
	case skuPattern.MatchString(token) && strings.ContainsAny(token, "0123456789.-"):
		return ToolProductBySKU, map[string]interface{}{"sku": token}
	default:
		return ToolProductsByName, map[string]interface{}{"names": []interface{}{token}}
	}
}
