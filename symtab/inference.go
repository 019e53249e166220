package symtab

import (
	"strings"
	"unicode"

	"github.com/qair/ir-compiler/ast"
)

// prefixSuffix is one row of the method-name pattern table (spec §4.B
// pass 3b). Prefixes are tried longest-first so e.g. "select" is preferred
// over any shorter accidental overlap.
type prefixSuffix struct {
	prefix string
	suffix string
}

var namePatterns = []prefixSuffix{
	{"enter", "Input"},
	{"type", "Input"},
	{"set", "Input"},
	{"fill", "Input"},
	{"input", "Input"},
	{"click", "Button"},
	{"press", "Button"},
	{"tap", "Button"},
	{"select", "Select"},
	{"choose", "Select"},
	{"check", "Checkbox"},
	{"uncheck", "Checkbox"},
	{"toggle", "Checkbox"},
	{"get", ""},
	{"read", ""},
}

// inferFromName applies the name-pattern table to a method name, returning
// a candidate target name that "need not exist" (spec §4.B): the caller is
// responsible for checking it against declared field names.
func inferFromName(methodName string) (candidate string, ok bool) {
	best := ""
	for _, p := range namePatterns {
		if strings.HasPrefix(methodName, p.prefix) && len(p.prefix) > len(best) {
			best = p.prefix
		}
	}
	for _, p := range namePatterns {
		if p.prefix != best {
			continue
		}
		rest := methodName[len(p.prefix):]
		if rest == "" {
			continue
		}
		name := lowerFirst(rest)
		if p.suffix == "" {
			// "get"/"read": candidate is the field name verbatim (no
			// suffix appended), e.g. getWelcomeMessage -> welcomeMessage.
			return name, true
		}
		return name + p.suffix, true
	}
	return "", false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// inferMethodBinding implements the method-inference pass (spec §4.B pass
// 3): for a method inside a page-object class, first try to bind to a
// locator field referenced in the method body (3a), otherwise fall back to
// the name-pattern table (3b).
func inferMethodBinding(method *ast.Node, class *ClassInfo) (targetName string, targetNode *ast.Node, ok bool) {
	body := firstChildOfType(method, ast.BlockStatement)
	if body != nil {
		refs := ast.FindAll(body, func(n *ast.Node) bool { return n.Type == ast.MemberReference })
		for _, ref := range refs {
			member := ref.AttrString("member")
			if decl, isField := class.Fields[member]; isField {
				if _, isBy := IsByInvocation(decl.InitializerNode); isBy {
					return member, decl.InitializerNode, true
				}
			}
		}
	}
	if candidate, matched := inferFromName(method.Name); matched {
		if decl, exists := class.Fields[candidate]; exists {
			return candidate, decl.InitializerNode, true
		}
		// Candidate does not correspond to a declared field; spec §4.B
		// says it is "discarded if not found" — callers still learn the
		// candidate name (useful for Scenario 3-style deferred lookup via
		// the project-wide name->id map) but get ok=false here since no
		// local field backs it in this class.
		return candidate, nil, false
	}
	return "", nil, false
}

// collectMethodBindings runs the method-inference pass over every method of
// every page-object class in classes, returning method name -> candidate
// target name (spec "Method-target binding" record, §3). Binding is kept
// even when the candidate field could not be verified locally, since a
// page object and the test that calls it may live in different files; the
// IR linker (§4.H) performs the final, project-wide name->id resolution.
func collectMethodBindings(classes map[string]*ClassInfo) map[string]map[string]string {
	out := map[string]map[string]string{}
	for className, class := range classes {
		if !class.IsPageObject {
			continue
		}
		methodMap := map[string]string{}
		for _, method := range class.Methods {
			if candidate, _, ok := inferMethodBinding(method, class); ok {
				methodMap[method.Name] = candidate
			} else if candidate != "" {
				methodMap[method.Name] = candidate
			}
		}
		out[className] = methodMap
	}
	return out
}
