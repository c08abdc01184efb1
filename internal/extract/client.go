package extract

import (
	"path"
	"regexp"
	"strings"

	"archview/internal/model"
)

var (
	// fetch call whose URL is a template string interpolating the API base
	// variable followed by an /api/ path, e.g.
	// fetch(`${apiUrl}/api/orders/123`). The first path segment after /api/
	// is the route fragment.
	fetchRe = regexp.MustCompile("fetch\\(\\s*`\\$\\{[A-Za-z0-9_.]+\\}/api/([A-Za-z0-9_-]+)")

	pageFileRe = regexp.MustCompile(`^page(?:\.(?:ts|tsx|js|jsx))?$`)
)

// realtimeHookup is the literal call that wires a page to the websocket
// channel (socket.io client).
const realtimeHookup = "io("

// ClientProfile recognizes file-routed client pages and their outbound
// calls. Client extraction runs strictly after server extraction: route and
// gateway lookups consult components already in the model, and an edge
// whose server counterpart is missing is permanently lost (single pass, no
// second resolution).
type ClientProfile struct{}

// NewClientProfile returns the client recognition profile.
func NewClientProfile() *ClientProfile {
	return &ClientProfile{}
}

// PageID wraps a route path as a page component identifier.
func PageID(route string) string {
	return "Page(" + route + ")"
}

// pageRoute derives the page's route from its path relative to the client
// root: separators normalized to forward slashes, the conventional page
// filename stripped, the empty remainder mapped to the site root.
func pageRoute(relPath string) string {
	p := strings.ReplaceAll(relPath, "\\", "/")
	p = strings.Trim(p, "/")
	if base := path.Base(p); pageFileRe.MatchString(base) {
		p = path.Dir(p)
		if p == "." {
			p = ""
		}
	}
	if p == "" {
		return "/"
	}
	return p
}

// Extract recognizes one client page file and emits its facts. relPath is
// the file's path relative to the client root.
func (p *ClientProfile) Extract(relPath, text string, m *model.Model) {
	route := pageRoute(relPath)
	id := PageID(route)

	label := route
	if label != "/" {
		label = "/" + label
	}
	m.UpsertComponent(model.Component{
		ID:         id,
		Kind:       model.KindClientPage,
		Label:      label,
		SourcePath: relPath,
	})

	for _, match := range fetchRe.FindAllStringSubmatch(text, -1) {
		fragment := match[1]
		if ctrl, ok := m.ControllerByRoute(fragment); ok {
			m.AppendInteraction(model.Interaction{
				SourceID: id,
				TargetID: ctrl.ID,
				Label:    "GET /api/" + fragment,
			})
		}
	}

	if strings.Contains(text, realtimeHookup) {
		if gw, ok := m.FirstGateway(); ok {
			m.AppendInteraction(model.Interaction{
				SourceID: id,
				TargetID: gw.ID,
				Label:    "connects to",
				Async:    true,
			})
		}
	}
}
