package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"opengov/internal/format"
	"opengov/internal/listing"
	"opengov/internal/records"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatCSV   = "csv"
)

type listOptions struct {
	query  string
	status string
	date   string
	page   int
	format string
}

func (o listOptions) filter() (listing.Filter, error) {
	f := listing.Filter{Search: o.query, Category: o.status}
	if o.date != "" {
		d, err := listing.ParseDate(o.date)
		if err != nil {
			return listing.Filter{}, err
		}
		f.Date = &d
	}
	return f, nil
}

// pageOutput is the json and yaml document for one page.
type pageOutput[T any] struct {
	Data       []T          `json:"data" yaml:"data"`
	Pagination listing.Meta `json:"pagination" yaml:"pagination"`
}

// view binds a record kind to its filter and its renderings.
type view[T any] struct {
	spec   listing.Spec[T]
	header []string
	row    func(T) []string
	csv    func(io.Writer, []T) error
}

var (
	projectsView = view[records.Project]{
		spec:   records.ProjectSpec,
		header: []string{"ID", "NAME", "DEPARTMENT", "LOCATION", "BUDGET", "PROGRESS", "STATUS"},
		row: func(p records.Project) []string {
			return []string{p.ID, p.Name, p.Department, p.Location, format.Dollars(p.Budget), strconv.Itoa(p.Progress) + "%", p.Status}
		},
		csv: records.WriteProjectsCSV,
	}
	expendituresView = view[records.Expenditure]{
		spec:   records.ExpenditureSpec,
		header: []string{"ID", "DEPARTMENT", "PROJECT", "AMOUNT", "DATE", "STATUS"},
		row: func(e records.Expenditure) []string {
			return []string{e.ID, e.Department, e.Project, format.Dollars(e.Amount), format.Date(e.Date), e.Status}
		},
		csv: records.WriteExpendituresCSV,
	}
	activitiesView = view[records.Activity]{
		spec:   records.ActivitySpec,
		header: []string{"ID", "TYPE", "DESCRIPTION", "DATE", "STATUS"},
		row: func(a records.Activity) []string {
			status := a.Status
			if status == "" {
				status = "-"
			}
			return []string{a.ID, format.Label(a.Type), a.Description, format.DateTime(a.Date), status}
		},
		csv: records.WriteActivitiesCSV,
	}
	decisionsView = view[records.Decision]{
		spec:   records.DecisionSpec,
		header: []string{"ID", "TITLE", "DEPARTMENT", "DATE", "STATUS"},
		row: func(d records.Decision) []string {
			return []string{d.ID, d.Title, d.Department, format.Date(d.Date), d.Status}
		},
		csv: records.WriteDecisionsCSV,
	}
)

func newListCmd(load loader) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:       "list <projects|expenditures|activities|decisions>",
		Short:     "List records with search, filters and pagination",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"projects", "expenditures", "activities", "decisions"},
		Example: `  govdata list projects --status Delayed
  govdata list expenditures --query education --format json
  govdata list activities --date 2023-11-25 --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatTable, formatJSON, formatYAML, formatCSV:
			default:
				return fmt.Errorf("unknown format %q: use table, json, yaml or csv", opts.format)
			}
			f, err := opts.filter()
			if err != nil {
				return err
			}
			catalog, err := load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch args[0] {
			case "projects":
				return writeList(out, projectsView, catalog.Projects, f, opts)
			case "expenditures":
				return writeList(out, expendituresView, catalog.Expenditures, f, opts)
			case "activities":
				return writeList(out, activitiesView, catalog.Activities, f, opts)
			default:
				return writeList(out, decisionsView, catalog.Decisions, f, opts)
			}
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.query, "query", "q", "", "case-insensitive text search")
	flags.StringVar(&opts.status, "status", "", "category filter: department for expenditures, type for activities, status otherwise")
	flags.StringVar(&opts.date, "date", "", "calendar day filter for activities (YYYY-MM-DD)")
	flags.IntVar(&opts.page, "page", 1, "page number")
	flags.StringVarP(&opts.format, "format", "o", formatTable, "output format: table, json, yaml or csv")
	return cmd
}

// writeList renders one page of the filtered records. CSV carries every
// match so that it can be used as an export.
func writeList[T any](w io.Writer, v view[T], items []T, f listing.Filter, opts listOptions) error {
	if opts.format == formatCSV {
		return v.csv(w, v.spec.Apply(items, f))
	}

	p := v.spec.Query(items, f, opts.page)
	doc := pageOutput[T]{Data: p.Items, Pagination: p.Meta()}
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(v.header, "\t"))
	for _, it := range p.Items {
		fmt.Fprintln(tw, strings.Join(v.row(it), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if p.Total == 0 {
		_, err := fmt.Fprintln(w, "No records found.")
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d to %d of %d (page %d of %d)\n", p.Start(), p.End(), p.Total, p.Page, p.TotalPages)
	return err
}
