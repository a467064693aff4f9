package analyzer

import "fmt"

// SystemPrompt is the fixed system message for every review request.
const SystemPrompt = "You are an expert code reviewer who provides detailed, actionable feedback."

// reviewTemplate embeds the filename and full source text and requests
// the exact JSON schema the normalizer parses. The schema keys are the
// binding contract with the model backend and must not change.
const reviewTemplate = `You are an expert code reviewer. Analyze the following code and provide a detailed review.

Filename: %s

Code:
%s
Provide your review in the following JSON format:
{
    "overall_quality_score": <number 0-100>,
    "summary": "<brief summary of code quality>",
    "errors": [
        {"type": "<error type>", "line": <line number or null>, "description": "<description>", "severity": "high|medium|low"}
    ],
    "warnings": [
        {"type": "<warning type>", "line": <line number or null>, "description": "<description>"}
    ],
    "suggestions": [
        {"category": "<category>", "description": "<suggestion>", "priority": "high|medium|low"}
    ],
    "strengths": ["<strength 1>", "<strength 2>"],
    "readability_score": <number 0-100>,
    "modularity_score": <number 0-100>,
    "best_practices_score": <number 0-100>,
    "security_concerns": ["<concern 1>", "<concern 2>"],
    "performance_notes": ["<note 1>", "<note 2>"]
}

Be thorough and specific in your analysis. Focus on:
1. Code structure and organization
2. Readability and naming conventions
3. Potential bugs or errors
4. Security vulnerabilities
5. Performance improvements
6. Best practices adherence
7. Documentation quality
`

// BuildPrompt renders the review instruction for a single file.
func BuildPrompt(filename, content string) string {
	return fmt.Sprintf(reviewTemplate, filename, content)
}
