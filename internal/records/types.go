package records

import "time"

// Expenditure is one line of government spending.
type Expenditure struct {
	ID         string    `bson:"id" json:"id" yaml:"id"`
	Department string    `bson:"department" json:"department" yaml:"department"`
	Project    string    `bson:"project" json:"project" yaml:"project"`
	Amount     int64     `bson:"amount" json:"amount" yaml:"amount"` // whole dollars
	Date       time.Time `bson:"date" json:"date" yaml:"date"`
	Status     string    `bson:"status" json:"status" yaml:"status"`
}

// Project is a tracked public works project.
type Project struct {
	ID         string    `bson:"id" json:"id" yaml:"id"`
	Name       string    `bson:"name" json:"name" yaml:"name"`
	Department string    `bson:"department" json:"department" yaml:"department"`
	Location   string    `bson:"location" json:"location" yaml:"location"`
	Budget     int64     `bson:"budget" json:"budget" yaml:"budget"`
	StartDate  time.Time `bson:"start_date" json:"startDate" yaml:"startDate"`
	EndDate    time.Time `bson:"end_date" json:"endDate" yaml:"endDate"`
	Progress   int       `bson:"progress" json:"progress" yaml:"progress"` // percent
	Status     string    `bson:"status" json:"status" yaml:"status"`
}

// Activity is an entry in a citizen's account history.
type Activity struct {
	ID          string    `bson:"id" json:"id" yaml:"id"`
	Type        string    `bson:"type" json:"type" yaml:"type"`
	Description string    `bson:"description" json:"description" yaml:"description"`
	Date        time.Time `bson:"date" json:"date" yaml:"date"`
	Status      string    `bson:"status,omitempty" json:"status,omitempty" yaml:"status,omitempty"`
}

// Document links supporting material to a decision.
type Document struct {
	Name string `bson:"name" json:"name" yaml:"name"`
	URL  string `bson:"url" json:"url" yaml:"url"`
}

// Decision is a policy decision moving through the legislative process.
type Decision struct {
	ID          string     `bson:"id" json:"id" yaml:"id"`
	Title       string     `bson:"title" json:"title" yaml:"title"`
	Description string     `bson:"description" json:"description" yaml:"description"` // markdown
	Date        time.Time  `bson:"date" json:"date" yaml:"date"`
	Status      string     `bson:"status" json:"status" yaml:"status"`
	Department  string     `bson:"department" json:"department" yaml:"department"`
	Documents   []Document `bson:"documents,omitempty" json:"documents,omitempty" yaml:"documents,omitempty"`
}

// Milestone is a dated step of a timeline project.
type Milestone struct {
	Date        time.Time `bson:"date" json:"date" yaml:"date"`
	Title       string    `bson:"title" json:"title" yaml:"title"`
	Description string    `bson:"description" json:"description" yaml:"description"`
	Completed   bool      `bson:"completed" json:"completed" yaml:"completed"`
}

// TimelineProject is a project with its milestone schedule.
type TimelineProject struct {
	ID         string      `bson:"id" json:"id" yaml:"id"`
	Name       string      `bson:"name" json:"name" yaml:"name"`
	Department string      `bson:"department" json:"department" yaml:"department"`
	StartDate  time.Time   `bson:"start_date" json:"startDate" yaml:"startDate"`
	EndDate    time.Time   `bson:"end_date" json:"endDate" yaml:"endDate"`
	Status     string      `bson:"status" json:"status" yaml:"status"`
	Milestones []Milestone `bson:"milestones" json:"milestones" yaml:"milestones"`
}

// CompletedMilestones counts milestones already reached.
func (p TimelineProject) CompletedMilestones() int {
	n := 0
	for _, m := range p.Milestones {
		if m.Completed {
			n++
		}
	}
	return n
}

// BudgetAllocation is one department's share of the annual budget.
type BudgetAllocation struct {
	Department string `bson:"department" json:"department" yaml:"department"`
	Percentage int    `bson:"percentage" json:"percentage" yaml:"percentage"`
	Color      string `bson:"color" json:"color" yaml:"color"`
}

// StatCard is a headline figure shown above a view.
type StatCard struct {
	Title       string `bson:"title" json:"title" yaml:"title"`
	Value       string `bson:"value" json:"value" yaml:"value"`
	Description string `bson:"description" json:"description" yaml:"description"`
}

// Stats groups headline figures per page.
type Stats struct {
	Data     []StatCard `bson:"data" json:"data" yaml:"data"`
	Projects []StatCard `bson:"projects" json:"projects" yaml:"projects"`
}
