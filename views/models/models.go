package models

// UserView is the signed-in user shown in the sidebar and profile
type UserView struct {
	Name     string
	Email    string
	Image    string
	Initials string
}

// Toast is a transient notification
type Toast struct {
	Title       string
	Description string
	Error       bool
}

// Shell is the data every full page needs
type Shell struct {
	Title  string
	Active string // sidebar section
	User   *UserView
	Toasts []Toast
}

// Option is a select choice
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Pager describes the footer of a paginated table
type Pager struct {
	Page       int
	TotalPages int
	Start      int
	End        int
	Total      int
	Noun       string // "expenditures", "projects"...
	PrevURL    string // empty when on the first page
	NextURL    string // empty when on the last page
	Target     string // element replaced by the fragment
}

// Filters carries the current filter controls of a table
type Filters struct {
	Action     string // fragment endpoint
	Target     string
	Query      string
	QueryLabel string
	Category   string // name of the category parameter
	Options    []Option
	Date       string // YYYY-MM-DD, activity history only
	ShowDate   bool
	ExportURL  string // CSV download, when offered
}

// Badge is a colored status pill
type Badge struct {
	Label string
	Class string
}

// ExpenditureRow represents an expenditure for template rendering
type ExpenditureRow struct {
	ID         string
	Department string
	Project    string
	Amount     string
	Date       string
	Status     Badge
}

// ProjectRow represents a project for template rendering
type ProjectRow struct {
	ID         string
	Name       string
	Department string
	Location   string
	Budget     string
	Period     string
	Progress   int
	Status     Badge
}

// ActivityRow represents an activity history entry
type ActivityRow struct {
	ID          string
	Type        Badge
	Description string
	Date        string
	Status      *Badge
}

// DocumentLink is a decision attachment
type DocumentLink struct {
	Name string
	URL  string
}

// DecisionView is one entry of the decision timeline
type DecisionView struct {
	ID              string
	Title           string
	DescriptionHTML string
	Date            string
	Department      string
	Status          Badge
	Documents       []DocumentLink
}

// MilestoneView is one step of a project timeline
type MilestoneView struct {
	Date        string
	Title       string
	Description string
	Completed   bool
}

// TimelineView is a project with its milestones
type TimelineView struct {
	ID         string
	Name       string
	Department string
	Period     string
	Status     Badge
	Completed  int
	Milestones []MilestoneView
}

// Table is a filtered, paginated list
type Table[T any] struct {
	Filters Filters
	Rows    []T
	Pager   Pager
	Empty   string
}

// StatCard is a headline figure
type StatCard struct {
	Title       string
	Value       string
	Description string
}

// BudgetBar is one department's share of the budget chart
type BudgetBar struct {
	Department string
	Percentage int
	Color      string
}

// Tab is a page section switcher entry
type Tab struct {
	Label  string
	URL    string
	Active bool
}

// DataPage is the data explorer
type DataPage struct {
	Stats        []StatCard
	Tabs         []Tab
	Tab          string
	Budget       []BudgetBar
	Largest      string
	Expenditures Table[ExpenditureRow]
	Decisions    Table[DecisionView]
}

// ProjectsPage is the project tracker
type ProjectsPage struct {
	Stats    []StatCard
	Tabs     []Tab
	Tab      string
	Map      []ProjectRow
	Projects Table[ProjectRow]
	Timeline Table[TimelineView]
}

// HomePage is the landing page
type HomePage struct {
	SignedIn bool
	Budget   []BudgetBar
	Projects []ProjectRow
}

// Form holds submitted values and per-field errors
type Form struct {
	Values map[string]string
	Checks map[string]bool
	Errors map[string]string
}

// Value returns a submitted value
func (f Form) Value(name string) string { return f.Values[name] }

// Checked reports whether a checkbox is on
func (f Form) Checked(name string) bool { return f.Checks[name] }

// Error returns the message for a field
func (f Form) Error(name string) string { return f.Errors[name] }

// MessageView is a chat bubble
type MessageView struct {
	ID   string
	HTML string
	Text string
	Bot  bool
	Time string
}

// FAQView is a question beside the chat
type FAQView struct {
	Question string
	Answer   string
}

// ChatPage is the assistant page in either variant
type ChatPage struct {
	Widget       bool
	WidgetScript string
	Messages     []MessageView
	FAQs         []FAQView
	Topics       []string
}

// ProfilePage is the profile editor
type ProfilePage struct {
	User       UserView
	Profile    Form
	Password   Form
	Activities Table[ActivityRow]
}

// SettingsPage groups the settings tabs
type SettingsPage struct {
	Tab           string
	Tabs          []Tab
	Account       Form
	Notifications Form
	Privacy       Form
}
