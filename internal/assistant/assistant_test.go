package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer(t *testing.T) {
	tests := []struct {
		question string
		contains string
	}{
		{"I want to report an issue", "anonymously"},
		{"How is the BUDGET split?", "$1.2B"},
		{"Project Tracking", "42 active projects"},
		{"Find Documents", "[Decisions]"},
		{"Public Participation", "public meetings"},
		{"hi", "Hello!"},
		{"what is this", "not sure I understand"},
		{"", "not sure I understand"},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Contains(t, Answer(tt.question), tt.contains)
		})
	}
}

func TestAnswer_EveryTopicHasAnAnswer(t *testing.T) {
	for _, topic := range Topics {
		assert.NotEqual(t, defaultAnswer, Answer(topic), topic)
	}
}

func TestResponder_Ask(t *testing.T) {
	r := NewResponder()

	asked, reply, err := r.Ask("Tell me about the budget")
	require.NoError(t, err)

	assert.Equal(t, User, asked.Sender)
	assert.Equal(t, "Tell me about the budget", asked.Content)
	assert.Empty(t, asked.HTML)

	assert.Equal(t, Bot, reply.Sender)
	assert.NotEqual(t, asked.ID, reply.ID)
	assert.Contains(t, reply.HTML, "<strong>$1.2B</strong>")
	assert.Contains(t, reply.HTML, `<a href="/data?tab=budget">Data Explorer</a>`)
	assert.False(t, reply.Timestamp.Before(asked.Timestamp))
}

func TestResponder_RenderList(t *testing.T) {
	html, err := NewResponder().Render(Answer("report"))
	require.NoError(t, err)
	assert.Contains(t, html, "<ol>")
	assert.Equal(t, 3, strings.Count(html, "<li>"))
}

func TestWidget_EmbedScriptReplacesStaleFrame(t *testing.T) {
	w := Widget{URL: "https://cdn.botpress.cloud/webchat/v2.2/shareable.html"}

	script, err := w.EmbedScript("chat-container")
	require.NoError(t, err)

	removeAt := strings.Index(script, "stale.remove()")
	appendAt := strings.Index(script, "appendChild(frame)")
	require.NotEqual(t, -1, removeAt)
	require.NotEqual(t, -1, appendAt)
	assert.Less(t, removeAt, appendAt)
	assert.Equal(t, 1, strings.Count(script, `createElement("iframe")`))
	assert.Contains(t, script, `frame.id = "botpress-webchat"`)
	assert.Contains(t, script, `getElementById("chat-container")`)
	assert.Contains(t, script, "cdn.botpress.cloud/webchat/v2.2/shareable.html")
}

func TestWidget_EmbedScriptEscapes(t *testing.T) {
	script, err := Widget{URL: `x";alert(1);"`}.EmbedScript("c")
	require.NoError(t, err)
	assert.NotContains(t, script, `x";alert`)
}
