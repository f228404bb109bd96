package models

// Block is one entry of a rich-text body. Text blocks use Style, ListItem,
// Children and MarkDefs; image blocks use Asset; markdown blocks use Markdown.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
	Asset    Reference `json:"asset,omitempty"`
	Alt      string    `json:"alt,omitempty"`
	Markdown string    `json:"markdown,omitempty"`
}

type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef is an annotation referenced from a span's Marks by Key.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

// PlainText joins the text of all spans.
func (b Block) PlainText() string {
	var text string
	for _, s := range b.Children {
		text += s.Text
	}
	return text
}
