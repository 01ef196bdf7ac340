package projections

import (
	"context"

	"advisory/internal/application/listutil"
)

// GetProgrammerListQuery carries query parameters. Search matches name or
// specialty, case-insensitively; Specialty narrows to one canonical value
// ("" or "All" match everything).
type GetProgrammerListQuery struct {
	Search    string
	Specialty string
	Page      listutil.PageParams
}

// ProgrammerCard is one row of the browsing grid.
type ProgrammerCard struct {
	ID        string
	Name      string
	Specialty string
	PhotoURL  string
}

// GetProgrammerListResult carries the query result.
type GetProgrammerListResult struct {
	Programmers []ProgrammerCard
	PageInfo    listutil.PageInfo
}

// GetProgrammerListDeps holds dependencies for GetProgrammerList.
type GetProgrammerListDeps struct {
	ProgrammerStore ProgrammerStore
}

// QueryGetProgrammerList retrieves the filtered roster for browsing. The
// roster is small, so filtering happens in memory over the full list and
// pagination is applied last.
// PRE: Valid query parameters
// POST: Returns matching profiles ordered by name with page metadata
func QueryGetProgrammerList(ctx context.Context, query GetProgrammerListQuery, deps GetProgrammerListDeps) (GetProgrammerListResult, error) {
	all, err := deps.ProgrammerStore.List(ctx)
	if err != nil {
		return GetProgrammerListResult{}, err
	}

	var matched []ProgrammerCard
	for _, p := range all {
		if !p.MatchesFilter(query.Search, query.Specialty) {
			continue
		}
		matched = append(matched, ProgrammerCard{
			ID:        p.ID,
			Name:      p.Name,
			Specialty: p.Specialty,
			PhotoURL:  p.PhotoURL,
		})
	}

	info := listutil.NewPageInfo(query.Page.Page, query.Page.PerPage, len(matched))
	start := info.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + info.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	return GetProgrammerListResult{
		Programmers: matched[start:end],
		PageInfo:    info,
	}, nil
}
