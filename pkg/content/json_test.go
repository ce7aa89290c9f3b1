package content

import "testing"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare json", `{"topic":"Fractions"}`, `{"topic":"Fractions"}`},
		{"plain fence", "```\n{\"topic\":\"Fractions\"}\n```", `{"topic":"Fractions"}`},
		{"json fence", "```json\n{\"topic\":\"Fractions\"}\n```", `{"topic":"Fractions"}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n ", `{}`},
		{"fence only at end is kept", `{"a":1}`, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	type payload struct {
		Topic string `json:"topic"`
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"clean object", `{"topic":"Fractions"}`, "Fractions", false},
		{"fenced object", "```json\n{\"topic\":\"Fractions\"}\n```", "Fractions", false},
		{"leading prose", `Here is the result: {"topic":"Fractions"}`, "Fractions", false},
		{"not json", "no object here", "", true},
		{"truncated object", `{"topic":"Frac`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out payload
			err := decodeResponse(tt.raw, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeResponse(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if out.Topic != tt.want {
				t.Errorf("topic = %q, want %q", out.Topic, tt.want)
			}
		})
	}
}
