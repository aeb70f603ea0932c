package httpx

import (
	"net/http"

	"github.com/learnix/learnix-portal/internal/domain/nav"
	"github.com/learnix/learnix-portal/internal/http/ui/viewmodel"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session
// context. The sidebar entries come from the navigation model and are a
// pure function of the session.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
	}

	session := CurrentSession(r.Context())
	if !session.IsAnonymous() {
		layout.IsAuthenticated = true
		layout.User = &viewmodel.User{
			Name:  session.Identity.Name,
			Email: session.Identity.Email,
			Role:  string(session.Identity.Role),
		}
		layout.Nav = nav.VisibleEntries(session)
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// markPageError flags the template data so the page shows a load failure
// notice instead of empty sections.
func markPageError(data map[string]any) {
	data["LoadError"] = true
}
