package llm

import (
	"reflect"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"bare object", `{"skills":[]}`, `{"skills":[]}`, true},
		{"markdown fence", "```json\n{\"summary\":\"x\"}\n```", `{"summary":"x"}`, true},
		{"prose around", `Here you go: {"a":1} hope that helps`, `{"a":1}`, true},
		{"no object", "I could not parse this resume.", "", false},
		{"empty", "", "", false},
		{"reversed braces", "} {", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := extractJSON(tc.in)
			if found != tc.found {
				t.Fatalf("found = %v, want %v", found, tc.found)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseExtractionReply(t *testing.T) {
	reply := "Sure! ```json\n" +
		`{"skills":["Go","Kubernetes"],"summary":"Engineer","experience":[{"company":"Acme","role":"SWE","duration":"2y"}]}` +
		"\n```"

	extraction, ok := parseExtractionReply(reply)
	if !ok {
		t.Fatalf("expected reply to parse")
	}
	if !reflect.DeepEqual(extraction.Skills, []string{"Go", "Kubernetes"}) {
		t.Fatalf("unexpected skills: %v", extraction.Skills)
	}
	if extraction.Summary != "Engineer" {
		t.Fatalf("unexpected summary: %q", extraction.Summary)
	}
	if len(extraction.Experience) != 1 || extraction.Experience[0].Company != "Acme" {
		t.Fatalf("unexpected experience: %+v", extraction.Experience)
	}
	if extraction.Raw != "" {
		t.Fatalf("raw should be empty on successful parse, got %q", extraction.Raw)
	}
}

func TestParseExtractionReplyMalformed(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"no json", "the resume looks great"},
		{"broken json", `{"skills": [unquoted]}`},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			extraction, ok := parseExtractionReply(tc.reply)
			if ok {
				t.Fatalf("expected parse failure")
			}
			if extraction.Raw != tc.reply {
				t.Fatalf("raw fallback not preserved: %q", extraction.Raw)
			}
			if len(extraction.Skills) != 0 || extraction.Summary != "" {
				t.Fatalf("typed fields should stay empty, got %+v", extraction)
			}
		})
	}
}
