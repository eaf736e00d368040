package recommendation

import (
	"regexp"
	"strings"

	"github.com/artpar/deploykit/internal/core/recipe"
)

// =============================================================================
// Replacement Tokens
// =============================================================================

// replacementTokenRegex matches a default value embedding one {token} run of
// word characters. The bracketed substring, braces included, is the token
// map key.
var replacementTokenRegex = regexp.MustCompile(`^.*\{(\w+)\}.*$`)

// seedReplacementTokens walks every configurable setting (and its children)
// once at construction and registers each token found in a string default
// with an empty substitution. Re-registering an already-seen token resets it
// to empty; real values are assigned later through SetReplacementToken.
func (r *Recommendation) seedReplacementTokens(items []*recipe.OptionSettingItem) {
	for _, item := range items {
		if s, ok := item.DefaultValue.(string); ok {
			if m := replacementTokenRegex.FindStringSubmatch(s); m != nil {
				r.ReplacementTokens["{"+m[1]+"}"] = ""
			}
		}
		r.seedReplacementTokens(item.ChildOptionSettings)
	}
}

// SetReplacementToken assigns the substitution for a token key. The key is
// the literal bracketed substring, e.g. "{AccountId}".
func (r *Recommendation) SetReplacementToken(token, value string) {
	r.ReplacementTokens[token] = value
}

// applyReplacementTokens substitutes every occurrence of each assigned token
// in the value. Tokens still holding their empty seed are left literal so
// callers can see what remains unresolved.
func (r *Recommendation) applyReplacementTokens(value string) string {
	for token, substitution := range r.ReplacementTokens {
		if substitution == "" {
			continue
		}
		value = strings.ReplaceAll(value, token, substitution)
	}
	return value
}
