package article

const (
	// ContentType is used for streamed article bodies and failure messages.
	ContentType = "text/plain; charset=utf-8"

	// FailureMessage ends every response whose generation failed.
	FailureMessage = "Falha ao gerar o artigo em streaming."

	// TrailerStatus is announced before the body and set once the stream ends.
	TrailerStatus  = "X-Stream-Status"
	StatusComplete = "complete"
	StatusError    = "error"

	DefaultTone = "Informal"
)

// Tones are the labels offered to users. The relay forwards any value.
var Tones = []string{"Informal", "Técnico", "Persuasivo", "Acadêmico"}

// Request is the body of POST /generate-article-stream.
type Request struct {
	Topic string `json:"topic"`
	Tone  string `json:"tone"`
}
