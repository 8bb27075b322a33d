// Package preprocess provides text cleaning, skill normalization and
// lightweight TF-IDF vectorization used by the parsers, matcher and scorers.
package preprocess

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// stopWords is a minimal English stop-word list; enough to keep
// keyword vectors from being dominated by function words.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"he": {}, "her": {}, "his": {}, "in": {}, "is": {}, "it": {}, "its": {},
	"of": {}, "on": {}, "or": {}, "our": {}, "she": {}, "that": {},
	"the": {}, "their": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"we": {}, "were": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

// skillSynonyms maps a normalized skill to additional tokens that should
// count as the same skill.
var skillSynonyms = map[string][]string{
	"rest api development":       {"rest", "api", "rest api"},
	"rest api":                   {"rest", "api"},
	"ci cd pipelines":            {"cicd", "ci", "cd", "ci cd"},
	"nosql databases":            {"nosql"},
	"amazon web services":        {"aws"},
	"aws":                        {"amazon web services"},
	"graphql":                    {"graph ql"},
	"microservices architecture": {"microservices"},
}

// CleanText normalizes line endings and collapses runs of whitespace
// while preserving word boundaries.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeText lowercases and strips trailing parenthesized metadata,
// e.g. "Python (>10,000 lines)" becomes "python".
func NormalizeText(text string) string {
	base := text
	if idx := strings.Index(text, "("); idx >= 0 {
		base = text[:idx]
	}
	return strings.ToLower(strings.TrimSpace(base))
}

// NormalizeSkill normalizes a single skill token. Separators like "/"
// and "-" become spaces so "CI/CD" and "ci cd" compare equal.
func NormalizeSkill(skill string) string {
	s := NormalizeText(skill)
	s = strings.ReplaceAll(s, "/", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExpandSkillSynonyms adds known synonyms and acronyms for each skill
// in the set.
func ExpandSkillSynonyms(skills map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(skills))
	for sk := range skills {
		expanded[sk] = struct{}{}
		for _, syn := range skillSynonyms[sk] {
			expanded[syn] = struct{}{}
		}
	}
	return expanded
}

// NormalizeSkillSet normalizes and expands a list of raw skill strings
// into a set.
func NormalizeSkillSet(raw []string) map[string]struct{} {
	normalized := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		if n := NormalizeSkill(s); n != "" {
			normalized[n] = struct{}{}
		}
	}
	return ExpandSkillSynonyms(normalized)
}

var tokenRe = regexp.MustCompile(`[a-z0-9][a-z0-9+#.]+`)

// Tokenize lowercases text and returns alphanumeric tokens of length
// two or more with stop words removed. "+", "#" and "." survive inside
// tokens so "c++", "c#" and "node.js" stay whole.
func Tokenize(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	out := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// IsStopWord reports whether the lowercase token is on the stop-word list
func IsStopWord(token string) bool {
	_, ok := stopWords[strings.ToLower(token)]
	return ok
}
