package ai

import (
	"fmt"
	"strings"

	"uiforge/internal/storage"
)

const systemPrompt = `You are an expert React engineer generating a single self-contained component.
Rules:
- Respond with exactly one fenced code block tagged jsx containing the full component source.
- Use a default export. Use only React and Tailwind CSS classes, no other imports.
- The component must be renderable standalone with no props required.
- Do not include explanations outside the code block.`

const titlePrompt = `Suggest a short descriptive title (at most five words) for a React component session based on the conversation so far.
Respond with a JSON object of the form {"title": "..."} and nothing else.`

// transcriptLimit bounds how many prior turns are replayed upstream.
const transcriptLimit = 20

// BuildGenerateMessages assembles the chat history for a generation request:
// system prompt, recent transcript, then the new user prompt.
func BuildGenerateMessages(session *storage.Session, prompt string) []ChatMessage {
	messages := []ChatMessage{{Role: storage.RoleSystem, Content: systemPrompt}}
	messages = append(messages, transcript(session)...)
	messages = append(messages, ChatMessage{Role: storage.RoleUser, Content: prompt})
	return messages
}

// BuildRefineMessages embeds the current component source and asks for a
// full replacement rather than a diff.
func BuildRefineMessages(session *storage.Session, instruction string) []ChatMessage {
	var b strings.Builder
	b.WriteString("Here is the current component source:\n\n```jsx\n")
	b.WriteString(session.Code.JSX)
	b.WriteString("\n```\n\n")
	if session.Code.CSS != "" {
		b.WriteString("Additional CSS:\n\n```css\n")
		b.WriteString(session.Code.CSS)
		b.WriteString("\n```\n\n")
	}
	fmt.Fprintf(&b, "Revise it as follows: %s\n\nRespond with the complete revised component source, not a diff.", instruction)

	messages := []ChatMessage{{Role: storage.RoleSystem, Content: systemPrompt}}
	messages = append(messages, transcript(session)...)
	messages = append(messages, ChatMessage{Role: storage.RoleUser, Content: b.String()})
	return messages
}

// BuildTitleMessages asks for a {"title": "..."} JSON object describing the
// session.
func BuildTitleMessages(session *storage.Session) []ChatMessage {
	messages := []ChatMessage{{Role: storage.RoleSystem, Content: titlePrompt}}
	messages = append(messages, transcript(session)...)
	return messages
}

// transcript replays the most recent session messages as chat turns.
func transcript(session *storage.Session) []ChatMessage {
	history := session.Messages
	if len(history) > transcriptLimit {
		history = history[len(history)-transcriptLimit:]
	}

	messages := make([]ChatMessage, 0, len(history))
	for _, msg := range history {
		if msg.Role != storage.RoleUser && msg.Role != storage.RoleAssistant {
			continue
		}
		messages = append(messages, ChatMessage{Role: msg.Role, Content: msg.Content})
	}
	return messages
}
