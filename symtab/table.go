package symtab

import "github.com/qair/ir-compiler/ast"

// Table is the per-tree symbol table built by the three passes of spec
// §4.B. One Table is built per AST tree (spec §4.G: "for a single AST tree,
// build the symbol table").
type Table struct {
	tree           *ast.Tree
	declarations   map[string]*Declaration
	classes        map[string]*ClassInfo
	methodBindings map[string]map[string]string // class -> method -> target name
	registry       *Registry
}

// Build runs all three symbol-table passes over tree and returns the
// resulting Table. registry may be nil; when non-nil it supplies
// project-wide page-object class information for cross-file resolution
// (spec §4.B priority 1 needs to know a qualifier's declared type may name
// a page object declared in a different source file).
func Build(tree *ast.Tree, registry *Registry) *Table {
	t := &Table{
		tree:         tree,
		declarations: collectDeclarations(tree.Root),
		classes:      collectClasses(tree.Root),
		registry:     registry,
	}
	t.methodBindings = collectMethodBindings(t.classes)
	return t
}

// Classes returns every class discovered in this tree, keyed by class
// name; ClassInfo.IsPageObject marks the page objects among them (spec
// §4.D).
func (t *Table) Classes() map[string]*ClassInfo { return t.classes }

// Declarations exposes the flat declaration table for one tree, used by the
// locator extractor (spec §4.C) to enumerate candidate fields/variables.
func (t *Table) Declarations() map[string]*Declaration { return t.declarations }

// MethodBindings exposes this tree's method->target bindings, keyed by
// class name then method name.
func (t *Table) MethodBindings() map[string]map[string]string { return t.methodBindings }

// classInfo looks up a class by name, preferring the local tree and falling
// back to the project-wide registry (cross-file page objects).
func (t *Table) classInfo(name string) *ClassInfo {
	if c, ok := t.classes[name]; ok {
		return c
	}
	if t.registry != nil {
		return t.registry.Classes[name]
	}
	return nil
}

// methodTarget looks up a method binding by class name, preferring the
// local tree and falling back to the registry.
func (t *Table) methodTarget(className, methodName string) (string, bool) {
	if m, ok := t.methodBindings[className]; ok {
		if target, ok := m[methodName]; ok {
			return target, true
		}
	}
	if t.registry != nil {
		if m, ok := t.registry.MethodBindings[className]; ok {
			if target, ok := m[methodName]; ok {
				return target, true
			}
		}
	}
	return "", false
}

// instanceClass returns the declared class name of a local variable/field
// name, if known, consulting the registry when the declaration is not in
// this tree (e.g. a field declared in a base test class elsewhere).
func (t *Table) instanceClass(name string) (string, bool) {
	if decl, ok := t.declarations[name]; ok && decl.DeclaredType != "" {
		return decl.DeclaredType, true
	}
	if t.registry != nil {
		if typ, ok := t.registry.InstanceTypes[name]; ok {
			return typ, true
		}
	}
	return "", false
}

// Registry aggregates symbol-table output across every file of a project
// so that cross-file page-object calls (a test in one file invoking a
// page-object method declared in another) can still resolve. It is built
// once, before the extraction pass runs over any file (spec §5: stages A-E
// are pure per-tree; the registry is the one piece of read-only shared
// state they are allowed to consult, never mutate, during extraction).
type Registry struct {
	Classes        map[string]*ClassInfo
	MethodBindings map[string]map[string]string
	InstanceTypes  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		Classes:        map[string]*ClassInfo{},
		MethodBindings: map[string]map[string]string{},
		InstanceTypes:  map[string]string{},
	}
}

// Merge folds one file's Table into the registry. Existing entries win on
// name collision (first file wins), matching linage.Merge's
// first-occurrence-wins policy in the teacher repo.
func (r *Registry) Merge(t *Table) {
	for name, class := range t.classes {
		if _, exists := r.Classes[name]; !exists {
			r.Classes[name] = class
		}
	}
	for class, methods := range t.methodBindings {
		dst, ok := r.MethodBindings[class]
		if !ok {
			dst = map[string]string{}
			r.MethodBindings[class] = dst
		}
		for method, target := range methods {
			if _, exists := dst[method]; !exists {
				dst[method] = target
			}
		}
	}
	for name, decl := range t.declarations {
		if decl.DeclaredType == "" {
			continue
		}
		if _, exists := r.InstanceTypes[name]; !exists {
			r.InstanceTypes[name] = decl.DeclaredType
		}
	}
}
