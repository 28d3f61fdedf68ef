package storage

import (
	"database/sql"
	"reflect"
	"testing"
)

func TestSkillsRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		skills []string
		joined string
	}{
		{"several", []string{"Go", "Postgres", "Kubernetes"}, "Go,Postgres,Kubernetes"},
		{"one", []string{"Go"}, "Go"},
		{"none", nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := joinSkills(tc.skills)
			if got != tc.joined {
				t.Fatalf("joined = %q, want %q", got, tc.joined)
			}
			back := splitSkills(got)
			if !reflect.DeepEqual(back, tc.skills) {
				t.Fatalf("round trip = %v, want %v", back, tc.skills)
			}
		})
	}
}

func TestSplitSkillsTrimsBlanks(t *testing.T) {
	got := splitSkills(" Go , , Postgres ,")
	if !reflect.DeepEqual(got, []string{"Go", "Postgres"}) {
		t.Fatalf("got %v", got)
	}
}

func TestVectorParamRoundTrip(t *testing.T) {
	v, err := vectorParam([]float32{1, 2.5, -3})
	if err != nil {
		t.Fatalf("vectorParam: %v", err)
	}
	s, ok := v.(string)
	if !ok {
		t.Fatalf("expected string param, got %T", v)
	}
	if s != "[1,2.5,-3]" {
		t.Fatalf("unexpected pgvector literal: %q", s)
	}

	back, err := parseVector(sql.NullString{String: s, Valid: true})
	if err != nil {
		t.Fatalf("parseVector: %v", err)
	}
	if !reflect.DeepEqual(back, []float32{1, 2.5, -3}) {
		t.Fatalf("round trip = %v", back)
	}
}

func TestVectorParamNil(t *testing.T) {
	v, err := vectorParam(nil)
	if err != nil || v != nil {
		t.Fatalf("nil embedding should become NULL, got %v (%v)", v, err)
	}

	out, err := parseVector(sql.NullString{})
	if err != nil || out != nil {
		t.Fatalf("NULL column should parse to nil, got %v (%v)", out, err)
	}
}
