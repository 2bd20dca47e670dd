package components

import "strconv"

type navItem struct {
	Key   string
	Label string
	URL   string
}

var navItems = []navItem{
	{"home", "Home", "/"},
	{"data", "Data Explorer", "/data"},
	{"projects", "Project Tracking", "/projects"},
	{"chat", "AI Assistant", "/chat"},
}

var accountItems = []navItem{
	{"profile", "Profile", "/profile"},
	{"settings", "Settings", "/settings"},
}

// Field is a labelled input with its inline error.
type Field struct {
	Name        string
	Label       string
	Type        string // defaults to text
	Placeholder string
	Textarea    bool
}

func (f Field) inputType() string {
	if f.Type == "" {
		return "text"
	}
	return f.Type
}

var (
	expenditureHeaders = []string{"ID", "Department", "Project", "Amount", "Date", "Status"}
	projectHeaders     = []string{"Project", "Department", "Location", "Budget", "Timeline", "Progress", "Status"}
	activityHeaders    = []string{"Type", "Description", "Date", "Status"}
)

func width(pct int) string {
	return "width: " + strconv.Itoa(pct) + "%"
}
