// Package assistant answers citizen questions in the chat view.
//
// Two variants exist and a deployment picks one: the hosted widget, which
// embeds a third-party chat frame, and the keyword responder, which answers
// from a fixed table.
package assistant

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
)

// Senders.
const (
	User = "user"
	Bot  = "bot"
)

// Message is one chat bubble.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	HTML      string    `json:"html,omitempty"` // rendered content, bot messages only
}

type rule struct {
	keywords []string
	answer   string
}

// Rules are tried in order; the first whose keyword appears in the
// lowercased question wins.
var rules = []rule{
	{
		keywords: []string{"report", "issue", "problem", "complaint"},
		answer: "I can help you report an issue **anonymously**.\n\n" +
			"1. Describe the problem and where it is.\n" +
			"2. Attach any photos or documents.\n" +
			"3. You will receive a tracking ID to follow its status.\n\n" +
			"Your report is never linked to your identity.",
	},
	{
		keywords: []string{"budget", "allocation", "spending", "expenditure"},
		answer: "The annual budget is **$1.2B** for fiscal year 2023-2024. " +
			"Education receives the largest share at 28%.\n\n" +
			"See the [Data Explorer](/data?tab=budget) for the full breakdown and individual expenditures.",
	},
	{
		keywords: []string{"project", "construction", "progress", "timeline"},
		answer: "There are **42 active projects** across 8 departments.\n\n" +
			"Open [Project Tracking](/projects?tab=list) to search projects by name, department or location, " +
			"or the [timeline](/projects?tab=timeline) to follow milestones.",
	},
	{
		keywords: []string{"document", "decision", "policy", "minutes"},
		answer: "Policy decisions and their supporting documents are listed under " +
			"[Decisions](/data?tab=decisions), from proposal to implementation.",
	},
	{
		keywords: []string{"track", "status", "tracking id"},
		answer: "Each request gets a unique **tracking ID**. Use it here to check the status " +
			"without revealing who you are.",
	},
	{
		keywords: []string{"service", "permit", "license", "help"},
		answer: "I can guide you through citizen services such as permits, licenses and public records requests. " +
			"Tell me which service you need.",
	},
	{
		keywords: []string{"participat", "meeting", "vote", "council"},
		answer: "You can take part in public meetings and comment on proposed decisions. " +
			"Proposed and under-review decisions in [Decisions](/data?tab=decisions) accept public input.",
	},
	{
		keywords: []string{"hello", " hi ", " hey "},
		answer: "Hello! Ask me about the budget, public projects, decisions, or how to report an issue.",
	},
}

const defaultAnswer = "I'm not sure I understand. You can ask me about **budget information**, " +
	"**project tracking**, **finding documents**, or how to **report an issue** anonymously."

// Greeting opens every keyword conversation.
const Greeting = "Hello! I'm the OpenGovTools assistant. How can I help you today?"

// Answer returns the markdown reply for question.
func Answer(question string) string {
	q := " " + strings.ToLower(strings.TrimSpace(question)) + " "
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(q, kw) {
				return r.answer
			}
		}
	}
	return defaultAnswer
}

// Responder is the keyword variant of the assistant.
type Responder struct {
	md  goldmark.Markdown
	now func() time.Time

	mu    sync.Mutex
	cache map[string]string
}

func NewResponder() *Responder {
	return &Responder{
		md:    goldmark.New(),
		now:   time.Now,
		cache: make(map[string]string),
	}
}

// Ask records the user's question and produces the bot reply.
func (r *Responder) Ask(question string) (Message, Message, error) {
	asked := Message{
		ID:        uuid.NewString(),
		Content:   question,
		Sender:    User,
		Timestamp: r.now(),
	}
	reply, err := r.Reply(Answer(question))
	if err != nil {
		return Message{}, Message{}, err
	}
	return asked, reply, nil
}

// Reply wraps markdown content in a bot message.
func (r *Responder) Reply(content string) (Message, error) {
	html, err := r.Render(content)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    Bot,
		Timestamp: r.now(),
		HTML:      html,
	}, nil
}

// Render converts markdown to HTML. Answers come from a fixed table, so
// the results are cached.
func (r *Responder) Render(content string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if html, ok := r.cache[content]; ok {
		return html, nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render answer: %w", err)
	}
	html := buf.String()
	if len(r.cache) < 256 {
		r.cache[content] = html
	}
	return html, nil
}

// FrameID is the DOM id of the hosted chat frame.
const FrameID = "botpress-webchat"

// Widget is the hosted chat frame variant.
type Widget struct {
	URL string
}

var embedScript = template.Must(template.New("embed").Parse(`(function () {
  var container = document.getElementById("{{js .Container}}");
  if (!container) return;
  var stale = document.getElementById("{{js .FrameID}}");
  if (stale) stale.remove();
  var frame = document.createElement("iframe");
  frame.id = "{{js .FrameID}}";
  frame.src = "{{js .URL}}";
  frame.style.width = "100%";
  frame.style.height = "500px";
  frame.style.border = "none";
  container.appendChild(frame);
})();`))

// EmbedScript returns the script that mounts the frame inside container.
// Any frame left from an earlier mount is removed first so the page never
// holds more than one.
func (w Widget) EmbedScript(container string) (string, error) {
	var buf bytes.Buffer
	err := embedScript.Execute(&buf, struct {
		Container, FrameID, URL string
	}{container, FrameID, w.URL})
	if err != nil {
		return "", fmt.Errorf("widget script: %w", err)
	}
	return buf.String(), nil
}

// FAQ is a question shown beside the chat.
type FAQ struct {
	Question string
	Answer   string
}

var FAQs = []FAQ{
	{
		Question: "How do I report an issue anonymously?",
		Answer: `Simply type "I want to report an issue" in the chat, and the assistant will guide you ` +
			"through the anonymous reporting process.",
	},
	{
		Question: "Can I track the status of my request?",
		Answer: "Yes, you'll receive a unique tracking ID for each request that you can use to check its " +
			"status without revealing your identity.",
	},
	{
		Question: "What kind of issues can I report?",
		Answer: "You can report infrastructure problems, service issues, concerns about public projects, " +
			"or provide feedback on government services.",
	},
	{
		Question: "How is my anonymity protected?",
		Answer: "The system uses end-to-end encryption and doesn't store personally identifiable information. " +
			"Your IP address and device information are not linked to your reports.",
	},
}

// Topics are the quick-start prompts.
var Topics = []string{
	"Budget Information",
	"Project Tracking",
	"Report an Issue",
	"Find Documents",
	"Citizen Services",
	"Public Participation",
}
