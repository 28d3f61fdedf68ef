package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ResumeExtraction is the structured output of the résumé parsing call.
// When the model reply cannot be parsed, the typed fields stay empty and the
// reply is preserved verbatim in Raw.
type ResumeExtraction struct {
	Skills     []string          `json:"skills"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Raw        string            `json:"-"`
}

type ExperienceEntry struct {
	Company  string `json:"company"`
	Role     string `json:"role"`
	Duration string `json:"duration"`
}

const extractSystemPrompt = "You are a resume parser. Extract structured information from the resume text provided. " +
	"Focus on technical skills, experience, and provide a professional summary. Return only valid JSON."

func extractUserPrompt(resumeText string) string {
	return fmt.Sprintf(`Parse this resume and extract the following information in JSON format:
{
  "skills": ["array of technical skills"],
  "summary": "brief professional summary",
  "experience": [{"company": "string", "role": "string", "duration": "string"}]
}

Resume:
"""
%s
"""`, resumeText)
}

// ExtractResume runs the schema-constrained parsing call. A transport or API
// failure is returned as an error; a reply that is not valid JSON is not an
// error, it yields an extraction with empty fields and Raw set.
func (c *Client) ExtractResume(ctx context.Context, resumeText string) (ResumeExtraction, error) {
	reply, err := c.Complete(ctx, extractSystemPrompt, extractUserPrompt(resumeText))
	if err != nil {
		return ResumeExtraction{}, err
	}

	extraction, ok := parseExtractionReply(reply)
	if !ok {
		c.log.Warn("resume extraction reply was not parseable JSON, keeping raw output",
			zap.Int("reply_len", len(reply)))
	}
	return extraction, nil
}

// parseExtractionReply decodes a model reply into a ResumeExtraction. When
// the reply holds no decodable JSON object the extraction carries only Raw
// and ok is false.
func parseExtractionReply(reply string) (ResumeExtraction, bool) {
	payload, found := extractJSON(reply)
	if !found {
		return ResumeExtraction{Raw: reply}, false
	}

	var extraction ResumeExtraction
	if err := json.Unmarshal([]byte(payload), &extraction); err != nil {
		return ResumeExtraction{Raw: reply}, false
	}
	return extraction, true
}

const scoreSystemPrompt = "You are an AI hiring specialist. Rate the resume for a mid-senior AI engineer role " +
	"on a scale of 0-100. Consider technical skills, experience, education, and overall fit for AI engineering " +
	"roles. Return only the numeric score."

// ScoreResume asks the model to rate a résumé and returns the raw reply.
// The caller is responsible for parsing and range-checking the value.
func (c *Client) ScoreResume(ctx context.Context, resumeText string) (string, error) {
	user := fmt.Sprintf("Rate this resume for an AI engineer position:\n\n%s", resumeText)
	return c.Complete(ctx, scoreSystemPrompt, user)
}

// extractJSON pulls the outermost JSON object out of a reply that may be
// wrapped in prose or markdown fences.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
