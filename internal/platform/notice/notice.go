// Package notice holds the inline status message a screen shows after an
// action.
package notice

const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// Message is empty until an action completes.
type Message struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

func Success(text string) Message { return Message{Text: text, Type: TypeSuccess} }

func Failure(text string) Message { return Message{Text: text, Type: TypeError} }

func (m Message) IsZero() bool { return m.Text == "" }

func (m Message) IsError() bool { return m.Type == TypeError }
