package model

import (
	"encoding/json"
	"fmt"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Context is the ordered conversation history of a session. It is owned by
// the front-end that created it and passed explicitly to every operation.
// On disk and on the wire it is a plain JSON array of messages.
type Context struct {
	messages []Message
}

func NewContext(messages ...Message) *Context {
	c := &Context{messages: make([]Message, 0, len(messages))}
	c.messages = append(c.messages, messages...)
	return c
}

// Append adds msg to the end of the conversation and returns the same context.
func (c *Context) Append(msg Message) *Context {
	c.messages = append(c.messages, msg)
	return c
}

// DropLast removes the most recent message, if any.
func (c *Context) DropLast() {
	if len(c.messages) > 0 {
		c.messages = c.messages[:len(c.messages)-1]
	}
}

// Messages returns a copy of the conversation in chronological order.
func (c *Context) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Context) Len() int {
	return len(c.messages)
}

func (c *Context) MarshalJSON() ([]byte, error) {
	if c.messages == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.messages)
}

func (c *Context) UnmarshalJSON(data []byte) error {
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return err
	}
	for i, msg := range messages {
		if _, err := ParseRole(string(msg.Role)); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	if messages == nil {
		messages = make([]Message, 0)
	}
	c.messages = messages
	return nil
}
