package anthropic

// Message is one turn of a conversation.
type Message struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// UserMessage returns a user turn with single-part text content.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: Text(text)}
}

// AssistantMessage returns an assistant turn with single-part text content.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: Text(text)}
}

// String renders the message as "Role: content".
func (m Message) String() string {
	return m.Role.String() + ": " + m.Content.String()
}
