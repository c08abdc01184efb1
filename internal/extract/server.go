package extract

import (
	"regexp"
	"strings"

	"archview/internal/model"
)

// DefaultPersistenceService is the identifier of the persistence-access
// service recognized out of the box.
const DefaultPersistenceService = "PrismaService"

var (
	exportedClassRe = regexp.MustCompile(`export\s+class\s+([A-Za-z_][A-Za-z0-9_]*)`)
	controllerRe    = regexp.MustCompile(`@Controller\(\s*['"` + "`" + `]([^'"` + "`" + `]*)['"` + "`" + `]\s*\)`)
	injectableRe    = regexp.MustCompile(`@Injectable\s*\(`)
	gatewayRe       = regexp.MustCompile(`@WebSocketGateway`)
	typeNameRe      = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// paramQualifiers are the visibility/readonly words skipped when mining a
// constructor parameter for its declared type.
var paramQualifiers = map[string]bool{
	"private":   true,
	"public":    true,
	"protected": true,
	"readonly":  true,
}

// ServerProfile recognizes decorator-annotated, dependency-injected server
// classes (controllers, services, websocket gateways).
type ServerProfile struct {
	markers     []kindMatcher
	persistence []string
}

// NewServerProfile builds the server recognition profile. Extra markers
// extend the built-in grammar: extraServices and extraGateways are literal
// decorator markers, extraPersistence adds persistence service identifiers
// searched for as raw substrings.
func NewServerProfile(extraServices, extraGateways, extraPersistence []string) *ServerProfile {
	p := &ServerProfile{
		persistence: append([]string{DefaultPersistenceService}, extraPersistence...),
	}

	// Checked as alternatives, first match wins.
	p.markers = append(p.markers, kindMatcher{
		kind:  model.KindController,
		match: reMatcher(controllerRe),
		label: func(name string, c capture) string {
			return name + "\n/api" + c.value
		},
	})
	p.markers = append(p.markers, kindMatcher{
		kind:  model.KindService,
		match: reMatcher(injectableRe),
		label: func(name string, _ capture) string { return name },
	})
	for _, m := range extraServices {
		p.markers = append(p.markers, kindMatcher{
			kind:  model.KindService,
			match: substringMatcher(m),
			label: func(name string, _ capture) string { return name },
		})
	}
	p.markers = append(p.markers, kindMatcher{
		kind:  model.KindGateway,
		match: reMatcher(gatewayRe),
		label: func(name string, _ capture) string { return name + "\nWebSocket" },
	})
	for _, m := range extraGateways {
		p.markers = append(p.markers, kindMatcher{
			kind:  model.KindGateway,
			match: substringMatcher(m),
			label: func(name string, _ capture) string { return name + "\nWebSocket" },
		})
	}

	return p
}

// DefaultServerProfile returns the profile with only the built-in grammar.
func DefaultServerProfile() *ServerProfile {
	return NewServerProfile(nil, nil, nil)
}

// PersistenceServices returns the persistence identifiers this profile
// recognizes, for the aggregator's synthesis step.
func (p *ServerProfile) PersistenceServices() []string {
	return p.persistence
}

// Extract recognizes one server file and emits its facts into the model.
// A file with no exported class contributes nothing. Only the first
// exported class in a file is recognized.
func (p *ServerProfile) Extract(path, text string, m *model.Model) {
	cls := exportedClassRe.FindStringSubmatch(text)
	if cls == nil {
		return
	}
	name := cls[1]

	for _, km := range p.markers {
		c, ok := km.match(text)
		if !ok {
			continue
		}
		m.UpsertComponent(model.Component{
			ID:         name,
			Kind:       km.kind,
			Label:      km.label(name, c),
			SourcePath: path,
		})
		break
	}

	// Constructor injection happens whether or not a marker classified the
	// class; a dangling source is filtered at render time.
	for _, dep := range constructorDeps(text) {
		m.AppendInteraction(model.Interaction{SourceID: name, TargetID: dep, Label: "injects"})
	}

	for _, svc := range p.persistence {
		if name != svc && strings.Contains(text, svc) {
			m.AppendInteraction(model.Interaction{SourceID: name, TargetID: svc, Label: "uses"})
		}
	}
}

// constructorDeps mines the primary constructor's parameter list for
// declared type names. A missing constructor, an empty parameter list, or a
// signature that defeats the simple parenthesis balance yields nothing.
func constructorDeps(text string) []string {
	idx := strings.Index(text, "constructor")
	if idx < 0 {
		return nil
	}
	rest := text[idx:]
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		return nil
	}

	depth := 0
	end := -1
	for i := open; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return nil
	}

	params := rest[open+1 : end]
	var deps []string
	for _, param := range strings.Split(params, ",") {
		if dep, ok := paramType(param); ok {
			deps = append(deps, dep)
		}
	}
	return deps
}

// paramType extracts the declared type from one "qualifiers name: Type"
// parameter fragment.
func paramType(param string) (string, bool) {
	_, typed, ok := strings.Cut(param, ":")
	if !ok {
		return "", false
	}
	name := typeNameRe.FindString(typed)
	if name == "" || paramQualifiers[name] {
		return "", false
	}
	return name, true
}
