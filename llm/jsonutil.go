package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Pre-compiled patterns for JSON extraction from LLM responses.
var (
	// jsonFencePattern matches a code block explicitly tagged as JSON.
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*\\n?(.*?)```")
	// anyFencePattern matches any fenced code block.
	anyFencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")
	// jsonObjectPattern matches the first top-level {...} span (greedy).
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[\s\S]*\}`)

	// Repair patterns for common LLM JSON artifacts.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	missingObjCommaPat   = regexp.MustCompile(`\}(\s*)\{`)
	missingArrCommaPat   = regexp.MustCompile(`\](\s*)\[`)
	unquotedKeyPattern   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// ExtractJSON locates a JSON object candidate inside an LLM response.
// Methods are tried in order of preference and the first hit wins:
//
//  1. a code block tagged as JSON
//  2. any code block whose trimmed body starts with { and ends with }
//  3. the first top-level {...} span in the text
//  4. the entire trimmed text, if it already parses as JSON
//
// Returns "" when no candidate is found. The candidate is not
// guaranteed to parse; see RepairJSON.
func ExtractJSON(content string) string {
	if m := jsonFencePattern.FindStringSubmatch(content); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}

	if m := anyFencePattern.FindStringSubmatch(content); len(m) > 1 {
		body := strings.TrimSpace(m[1])
		if strings.HasPrefix(body, "{") && strings.HasSuffix(body, "}") {
			return body
		}
	}

	if m := jsonObjectPattern.FindString(content); m != "" {
		return m
	}

	trimmed := strings.TrimSpace(content)
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}

	return ""
}

// RepairJSON applies a bounded, ordered sequence of textual rewrites
// that fix the JSON artifacts LLMs most commonly produce: trailing
// commas, missing commas between adjacent objects or arrays, and
// unquoted object keys. The rules run exactly once; callers re-attempt
// a parse a single time after repair and then give up.
func RepairJSON(raw string) string {
	out := trailingCommaPattern.ReplaceAllString(raw, "$1")
	out = missingObjCommaPat.ReplaceAllString(out, "},$1{")
	out = missingArrCommaPat.ReplaceAllString(out, "],$1[")
	out = unquotedKeyPattern.ReplaceAllString(out, `$1"$2":`)
	return out
}
