package ui

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zhouzirui/candidate-desk/backend/internal/model/candidate"
	candidateService "github.com/zhouzirui/candidate-desk/backend/internal/service/candidate"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const appliedAtLayout = "2006-01-02 15:04:05"

type indexView struct {
	Stats        candidate.Stats
	Candidates   []candidate.Candidate
	Pagination   *candidateService.Pagination
	PageLimit    int
	Search       string
	StatusFilter string
	DomainFilter string
	ReturnTo     string
}

func appPage(title string, body ...Node) Node {
	return Doctype(HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | Candidate Selection")),
			Link(Rel("icon"), Href("data:,")),
			StyleEl(Raw(stylesheet)),
		),
		Body(
			Div(Class("app"),
				Header(Class("header"),
					H1(Text("Candidate Selection System")),
					P(Text("Manage and review candidate applications")),
				),
				Main(Class("main-content"), Group(body)),
			),
		),
	))
}

func errorPage(title, message string) Node {
	return appPage(title,
		Div(Class("error"),
			H2(Text(title)),
			P(Text(message)),
			A(Href("/"), Text("Back to candidates")),
		),
	)
}

func indexPage(v indexView) Node {
	body := []Node{
		statsCards(v.Stats),
		filterBar(v),
		candidateTable(v.Candidates, v.ReturnTo),
	}
	if v.Pagination != nil {
		body = append(body, pager(*v.Pagination, v.PageLimit, v.StatusFilter, v.DomainFilter))
	}
	return appPage("Candidates", body...)
}

func statsCards(stats candidate.Stats) Node {
	card := func(class, label string, n int) Node {
		return Div(Class("stat-card "+class),
			H3(Text(label)),
			Span(Class("stat-number"), Text(strconv.Itoa(n))),
		)
	}
	return Div(Class("stats-container"),
		card("total", "Total Candidates", stats.Total),
		card("pending", "Pending", stats.ByStatus[candidate.StatusPending]),
		card("selected", "Selected", stats.ByStatus[candidate.StatusSelected]),
		card("rejected", "Rejected", stats.ByStatus[candidate.StatusRejected]),
	)
}

func filterBar(v indexView) Node {
	options := []Node{Option(Value(""), Text("All Status"), If(v.StatusFilter == "", Selected()))}
	for _, status := range candidate.Statuses {
		options = append(options, Option(
			Value(string(status)),
			Text(statusLabel(status)),
			If(v.StatusFilter == string(status), Selected()),
		))
	}

	return Form(Class("filters"), Method("get"), Action("/"),
		Div(Class("search-bar"),
			Input(Type("text"), Name("q"), Value(v.Search), Class("search-input"),
				Placeholder("Search by email or domain...")),
		),
		Select(Name("status"), Class("status-filter"), Group(options)),
		If(v.DomainFilter != "", Input(Type("hidden"), Name("domain"), Value(v.DomainFilter))),
		Button(Type("submit"), Class("btn"), Text("Apply")),
	)
}

func candidateTable(items []candidate.Candidate, returnTo string) Node {
	if len(items) == 0 {
		return Div(Class("empty-state"), Text("No candidates found"))
	}
	return Div(Class("candidate-list"),
		Table(
			THead(Tr(
				Th(Text("Email")),
				Th(Text("Domain")),
				Th(Text("Applied At")),
				Th(Text("Status")),
				Th(Text("Actions")),
			)),
			TBody(Map(items, func(c candidate.Candidate) Node {
				return candidateRow(c, returnTo)
			})),
		),
	)
}

func candidateRow(c candidate.Candidate, returnTo string) Node {
	action := func(status candidate.Status, label, class string) Node {
		return Form(Method("post"), Action("/candidates/"+url.PathEscape(c.ID)+"/status"), Class("inline"),
			Input(Type("hidden"), Name("status"), Value(string(status))),
			Input(Type("hidden"), Name("return"), Value(returnTo)),
			Button(Type("submit"), Class("btn "+class), Text(label)),
		)
	}

	return Tr(Class("candidate-row"),
		Td(Class("email"), Text(c.Email)),
		Td(Class("domain"), Text(c.Domain)),
		Td(Class("date"), Text(formatAppliedAt(c.AppliedAt))),
		Td(Span(Class("status-badge status-"+string(c.Status)), Text(string(c.Status)))),
		Td(Class("actions"),
			If(c.Status != candidate.StatusSelected, action(candidate.StatusSelected, "Select", "btn-select")),
			If(c.Status != candidate.StatusRejected, action(candidate.StatusRejected, "Reject", "btn-reject")),
			If(c.Status != candidate.StatusPending, action(candidate.StatusPending, "Reset", "btn-reset")),
		),
	)
}

func pager(p candidateService.Pagination, limit int, status, domain string) Node {
	link := func(page int, label string, enabled bool) Node {
		if !enabled {
			return Span(Class("btn disabled"), Text(label))
		}
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(limit))
		if status != "" {
			q.Set("status", status)
		}
		if domain != "" {
			q.Set("domain", domain)
		}
		return A(Class("btn"), Href("/?"+q.Encode()), Text(label))
	}

	return Div(Class("pagination"),
		link(p.CurrentPage-1, "Previous", p.HasPrevPage),
		Span(Textf("Page %d of %d", p.CurrentPage, p.TotalPages)),
		link(p.CurrentPage+1, "Next", p.HasNextPage),
	)
}

func statusLabel(s candidate.Status) string {
	raw := string(s)
	if raw == "" {
		return raw
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}

// formatAppliedAt renders "2026-02-05 01:36:15" as "Feb 5, 2026"; other values pass through.
func formatAppliedAt(raw string) string {
	t, err := time.Parse(appliedAtLayout, raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006")
}
