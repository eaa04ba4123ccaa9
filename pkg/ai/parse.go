package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"go-learnlab-backend/internal/domain"
)

// ObjectResult is the tagged outcome of extracting a JSON object from
// free-form gateway text. Callers check Parsed and decide explicitly what an
// unparseable reply means for them; there is no silent placeholder.
type ObjectResult struct {
	Doc    domain.Document
	Raw    string
	Parsed bool
}

// ArrayResult is the tagged outcome of extracting a JSON array.
type ArrayResult struct {
	List   []domain.Document
	Raw    string
	Parsed bool
}

// ParseObject extracts the outermost {...} span from the text and decodes it.
// The span runs from the first '{' to the last '}', matching how the gateway
// wraps a single object in prose.
func ParseObject(content string) ObjectResult {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		var doc domain.Document
		if err := json.Unmarshal([]byte(content[start:end+1]), &doc); err == nil {
			return ObjectResult{Doc: doc, Raw: content, Parsed: true}
		}
	}
	return ObjectResult{Raw: content}
}

// ParseArray extracts the outermost [...] span and decodes it as a list of
// objects.
func ParseArray(content string) ArrayResult {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		var list []domain.Document
		if err := json.Unmarshal([]byte(content[start:end+1]), &list); err == nil {
			return ArrayResult{List: list, Raw: content, Parsed: true}
		}
	}
	return ArrayResult{Raw: content}
}

// structuredSectionKeywords maps each structured-content field to the
// headings the keyword fallback scans for.
var structuredSectionKeywords = map[string][]string{
	"problemStatement": {"problem", "challenge", "issue"},
	"solution":         {"solution", "approach", "product"},
	"targetAudience":   {"audience", "users", "customers", "target"},
	"valueProposition": {"value", "unique", "proposition", "advantage"},
	"marketFit":        {"market", "fit", "opportunity", "timing"},
	"executionPlan":    {"execution", "implementation", "plan", "roadmap"},
	"callToAction":     {"action", "next", "call"},
}

// FallbackStructured extracts structured-content sections by keyword when the
// gateway returned prose instead of JSON. The result is marked so consumers
// can tell low-fidelity content from a real parse.
func FallbackStructured(content string) domain.Document {
	lines := strings.Split(content, "\n")
	doc := domain.Document{"parseFallback": true}
	for key, keywords := range structuredSectionKeywords {
		doc[key] = extractSection(lines, keywords)
	}
	return doc
}

func extractSection(lines []string, keywords []string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				end := i + 3
				if end > len(lines) {
					end = len(lines)
				}
				return strings.TrimSpace(strings.Join(lines[i:end], " "))
			}
		}
	}
	return ""
}

var numberedLine = regexp.MustCompile(`^\d+\.\s*`)

// FallbackQuestions pulls question-looking lines out of prose: anything
// ending in a question mark or carrying a list number. Capped at 10.
func FallbackQuestions(content string) []domain.Document {
	var questions []domain.Document
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.Contains(trimmed, "?") || numberedLine.MatchString(trimmed) {
			questions = append(questions, domain.Document{
				"questionText":     numberedLine.ReplaceAllString(trimmed, ""),
				"questionType":     "general",
				"difficulty":       "medium",
				"expectedKeywords": []string{},
				"category":         "general",
			})
		}
		if len(questions) == 10 {
			break
		}
	}
	return questions
}
