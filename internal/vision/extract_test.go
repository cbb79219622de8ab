package vision

import "testing"

func TestExtractText_PlainString(t *testing.T) {
	raw := `{"choices":[{"message":{"content":"A red chair near a window."}}]}`
	if got := ExtractText(raw); got != "A red chair near a window." {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_TrimsWhitespace(t *testing.T) {
	raw := `{"choices":[{"message":{"content":"  spaced out \n"}}]}`
	if got := ExtractText(raw); got != "spaced out" {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_ContentParts(t *testing.T) {
	raw := `{"choices":[{"message":{"content":[
		{"type":"refusal","refusal":"nope"},
		{"type":"text","text":"A dog on a couch."},
		{"type":"text","text":"ignored second part"}
	]}}]}`
	if got := ExtractText(raw); got != "A dog on a couch." {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_OutputTextPart(t *testing.T) {
	raw := `{"choices":[{"message":{"content":[{"type":"output_text","text":"An empty desk."}]}}]}`
	if got := ExtractText(raw); got != "An empty desk." {
		t.Errorf("got %q", got)
	}
}

func TestExtractText_PartsWithoutText_FallsBackToRaw(t *testing.T) {
	raw := `{"choices":[{"message":{"content":[{"type":"audio","id":"a1"}]}}]}`
	if got := ExtractText(raw); got != raw {
		t.Errorf("got %q, want whole raw response", got)
	}
}

func TestExtractText_UnknownShape_FallsBackToRaw(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no_choices", `{"error":{"message":"overloaded"}}`},
		{"null_content", `{"choices":[{"message":{"content":null}}]}`},
		{"numeric_content", `{"choices":[{"message":{"content":42}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractText(tc.raw); got != tc.raw {
				t.Errorf("got %q, want whole raw response", got)
			}
		})
	}
}

func TestExtractText_EmptyString(t *testing.T) {
	raw := `{"choices":[{"message":{"content":""}}]}`
	if got := ExtractText(raw); got != "" {
		t.Errorf("got %q, want empty (caller treats as failure)", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want shape
	}{
		{"string", `{"choices":[{"message":{"content":"hi"}}]}`, shapeText},
		{"parts", `{"choices":[{"message":{"content":[]}}]}`, shapeParts},
		{"missing", `{}`, shapeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.raw); got != tc.want {
				t.Errorf("classify = %v, want %v", got, tc.want)
			}
		})
	}
}
