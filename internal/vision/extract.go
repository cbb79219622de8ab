package vision

import (
	"strings"

	"github.com/tidwall/gjson"
)

// shape identifies the layout of the message content in a chat
// completion response. Some models return a plain string, others a
// structured list of typed content parts.
type shape int

const (
	shapeUnknown shape = iota
	shapeText          // content is a plain string
	shapeParts         // content is a list of typed parts
)

// classify inspects the raw response JSON and tags its content shape.
func classify(raw string) shape {
	content := gjson.Get(raw, "choices.0.message.content")
	switch {
	case content.Type == gjson.String:
		return shapeText
	case content.IsArray():
		return shapeParts
	default:
		return shapeUnknown
	}
}

// ExtractText pulls the description text out of a raw chat completion
// response. For an unknown shape, or a part list with no text-typed
// part, it falls back to the whole raw response rather than failing;
// the caller decides whether an empty result is an error.
func ExtractText(raw string) string {
	content := gjson.Get(raw, "choices.0.message.content")

	switch classify(raw) {
	case shapeText:
		return strings.TrimSpace(content.String())

	case shapeParts:
		var text string
		content.ForEach(func(_, part gjson.Result) bool {
			switch part.Get("type").String() {
			case "text", "output_text":
				text = strings.TrimSpace(part.Get("text").String())
				return false
			}
			return true
		})
		if text != "" {
			return text
		}
		return strings.TrimSpace(raw)

	default:
		return strings.TrimSpace(raw)
	}
}
