package live

// ClientEvent is a native event forwarded by the browser.
type ClientEvent struct {
	// QID is the data-qid of the element the event was dispatched to.
	QID string `json:"qid"`

	// Event is the host event name, e.g. "click".
	Event string `json:"event"`

	// Value is the element's value property, for form controls.
	Value *string `json:"value,omitempty"`

	// Checked is the element's checked property, for checkboxes and radios.
	Checked *bool `json:"checked,omitempty"`
}

// Update replaces the children of one element.
type Update struct {
	QID  string `json:"qid"`
	HTML string `json:"html"`
}

// Message types sent to the client.
const (
	MessageUpdate = "update"
	MessageError  = "error"
)

// ServerMessage is sent to the browser after each handled event.
type ServerMessage struct {
	Type    string   `json:"type"`
	Updates []Update `json:"updates,omitempty"`
	Error   string   `json:"error,omitempty"`
}
