package pages

import (
	"encoding/json"
	"strconv"

	"github.com/a-h/templ"

	"opengov/views/components"
	"opengov/views/models"
)

// ChatContainer holds the hosted chat frame.
const ChatContainer = "chat-container"

type feature struct {
	title, description, url, cta string
}

var features = []feature{
	{"Budget Transparency", "See how public money is allocated and spent, department by department.", "/data?tab=budget", "Explore the budget"},
	{"Project Tracking", "Follow public works projects from kickoff to completion.", "/projects", "Track projects"},
	{"Policy Decisions", "Review decisions and supporting documents as they move through approval.", "/data?tab=decisions", "Browse decisions"},
	{"AI Assistant", "Get answers about government services or report an issue anonymously.", "/chat", "Ask the assistant"},
}

var oauthProviders = []string{"GitHub", "Google"}

var ratings = []struct{ value, label string }{{"positive", "Helpful"}, {"negative", "Not Helpful"}}

var profileFields = []components.Field{
	{Name: "name", Label: "Full Name"},
	{Name: "email", Label: "Email", Type: "email"},
	{Name: "phone", Label: "Phone", Type: "tel"},
	{Name: "occupation", Label: "Occupation"},
	{Name: "organization", Label: "Organization"},
	{Name: "address", Label: "Address"},
	{Name: "city", Label: "City"},
	{Name: "state", Label: "State"},
	{Name: "zipCode", Label: "ZIP Code"},
}

var (
	languages = [][2]string{{"english", "English"}, {"spanish", "Spanish"}, {"french", "French"}, {"chinese", "Chinese"}}
	timeouts  = [][2]string{{"15", "15 minutes"}, {"30", "30 minutes"}, {"60", "1 hour"}, {"120", "2 hours"}}
	cadences  = [][2]string{{"realtime", "Real-time"}, {"daily", "Daily digest"}, {"weekly", "Weekly summary"}}
)

func options(selected string, pairs [][2]string) []models.Option {
	out := make([]models.Option, len(pairs))
	for i, p := range pairs {
		out[i] = models.Option{Value: p[0], Label: p[1], Selected: p[0] == selected}
	}
	return out
}

func fontSizes(selected string) []models.Option {
	var out []models.Option
	for px := 12; px <= 24; px += 2 {
		v := strconv.Itoa(px)
		out = append(out, models.Option{Value: v, Label: v + "px", Selected: v == selected})
	}
	return out
}

func topicVals(topic string) string {
	vals, _ := json.Marshal(map[string]string{"message": topic})
	return string(vals)
}

// widgetScript wraps the mount script, which escapes every value it embeds.
func widgetScript(js string) templ.Component {
	return templ.Raw("<script>" + js + "</script>")
}
