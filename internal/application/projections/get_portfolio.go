package projections

import (
	"bytes"
	"context"
	"sort"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"advisory/internal/domain/availability"
	domainProject "advisory/internal/domain/project"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in profile descriptions is escaped, not passed through.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// GetPortfolioQuery carries query parameters.
type GetPortfolioQuery struct {
	ProgrammerID string
}

// PortfolioProject is one portfolio entry with its parsed technology tags.
type PortfolioProject struct {
	ID            string
	Title         string
	Description   string
	Participation string
	Technologies  []string
	RepoURL       string
	DemoURL       string
}

// GetPortfolioResult carries the query result: the full public profile page.
type GetPortfolioResult struct {
	ProgrammerID     string
	Name             string
	Specialty        string
	PhotoURL         string
	DescriptionHTML  string // markdown description rendered to HTML
	Email            string
	LinkedIn         string
	GitHub           string
	PortfolioURL     string
	Windows          []availability.Window // ordered Sunday..Saturday
	AcademicProjects []PortfolioProject
	WorkProjects     []PortfolioProject
}

// GetPortfolioDeps holds dependencies for GetPortfolio.
type GetPortfolioDeps struct {
	ProgrammerStore ProgrammerStore
	ProjectStore    ProjectStore
}

// QueryGetPortfolio retrieves the public portfolio page for one programmer:
// profile, rendered description, weekly windows, and projects split into the
// academic and work sections.
// PRE: ProgrammerID is non-empty
// POST: Returns the portfolio, or an error if the profile does not exist
func QueryGetPortfolio(ctx context.Context, query GetPortfolioQuery, deps GetPortfolioDeps) (GetPortfolioResult, error) {
	p, err := deps.ProgrammerStore.GetByID(ctx, query.ProgrammerID)
	if err != nil {
		return GetPortfolioResult{}, err
	}

	var description bytes.Buffer
	if err := mdRenderer.Convert([]byte(p.Description), &description); err != nil {
		description.Reset()
		description.WriteString(p.Description)
	}

	windows, err := deps.ProgrammerStore.ListWindows(ctx, p.ID)
	if err != nil {
		return GetPortfolioResult{}, err
	}
	sortWindowsByWeekday(windows)

	projects, err := deps.ProjectStore.ListByProgrammer(ctx, p.ID)
	if err != nil {
		return GetPortfolioResult{}, err
	}

	result := GetPortfolioResult{
		ProgrammerID:    p.ID,
		Name:            p.Name,
		Specialty:       p.Specialty,
		PhotoURL:        p.PhotoURL,
		DescriptionHTML: description.String(),
		Email:           p.Contact.Email,
		LinkedIn:        p.Contact.LinkedIn,
		GitHub:          p.Contact.GitHub,
		PortfolioURL:    p.Contact.PortfolioURL,
		Windows:         windows,
	}
	for _, pr := range projects {
		entry := PortfolioProject{
			ID:            pr.ID,
			Title:         pr.Title,
			Description:   pr.Description,
			Participation: pr.Participation,
			Technologies:  pr.TechList(),
			RepoURL:       pr.RepoURL,
			DemoURL:       pr.DemoURL,
		}
		if pr.Category == domainProject.CategoryWork {
			result.WorkProjects = append(result.WorkProjects, entry)
		} else {
			result.AcademicProjects = append(result.AcademicProjects, entry)
		}
	}
	return result, nil
}

// sortWindowsByWeekday orders windows Sunday..Saturday for display.
func sortWindowsByWeekday(windows []availability.Window) {
	ordinal := make(map[string]int, len(availability.DayNames))
	for i, d := range availability.DayNames {
		ordinal[d] = i
	}
	sort.SliceStable(windows, func(i, j int) bool {
		di, _ := availability.CanonicalDay(windows[i].Day)
		dj, _ := availability.CanonicalDay(windows[j].Day)
		return ordinal[di] < ordinal[dj]
	})
}
