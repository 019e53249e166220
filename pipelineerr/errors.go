// Package pipelineerr defines the abstract error taxonomy shared by every
// pipeline stage (spec §7): structural AST violations, non-fatal extraction
// warnings, dangling references, id collisions, schema failures and missing
// configuration. Every kind is carried by the one Error type, which holds an
// optional cause (set by the structural, schema-validation and parse
// constructors) and implements Unwrap so callers can use errors.As/Is,
// following the wrapped-error convention the rest of this module inherits
// from the teacher's inspector packages (fmt.Errorf("...: %w", err)).
package pipelineerr

import "fmt"

// Kind names one of the abstract error categories from spec §7.
type Kind string

const (
	Structural       Kind = "StructuralError"
	ExtractionWarn   Kind = "ExtractionWarning"
	Reference        Kind = "ReferenceError"
	IdCollision      Kind = "IdCollisionError"
	SchemaValidation Kind = "SchemaValidationError"
	Config           Kind = "ConfigError"
	Parse            Kind = "ParseError"
)

// Error is the concrete carrier for every abstract kind in the taxonomy.
// Project and FilePath are populated when known; either may be empty.
type Error struct {
	Kind     Kind
	Project  string
	FilePath string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	loc := e.Project
	if e.FilePath != "" {
		if loc != "" {
			loc += ":"
		}
		loc += e.FilePath
	}
	prefix := string(e.Kind)
	if loc != "" {
		prefix = fmt.Sprintf("%s[%s]", prefix, loc)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Fatal reports whether an error of this kind aborts the invocation.
// ExtractionWarning is the only non-fatal kind; every ReferenceError is
// fatal, so a target-reference problem that is only a warning is
// constructed with NewExtractionWarning instead of NewReferenceError.
func (k Kind) Fatal() bool {
	return k != ExtractionWarn
}

func NewStructuralError(project, filePath, message string, cause error) *Error {
	return &Error{Kind: Structural, Project: project, FilePath: filePath, Message: message, Cause: cause}
}

func NewExtractionWarning(project, filePath, message string) *Error {
	return &Error{Kind: ExtractionWarn, Project: project, FilePath: filePath, Message: message}
}

func NewReferenceError(project, filePath, message string) *Error {
	return &Error{Kind: Reference, Project: project, FilePath: filePath, Message: message}
}

func NewIdCollisionError(project, message string) *Error {
	return &Error{Kind: IdCollision, Project: project, Message: message}
}

func NewSchemaValidationError(project, filePath, message string, cause error) *Error {
	return &Error{Kind: SchemaValidation, Project: project, FilePath: filePath, Message: message, Cause: cause}
}

func NewConfigError(project, message string) *Error {
	return &Error{Kind: Config, Project: project, Message: message}
}

func NewParseError(project, filePath, message string, cause error) *Error {
	return &Error{Kind: Parse, Project: project, FilePath: filePath, Message: message, Cause: cause}
}

// Diagnostics accumulates non-fatal warnings for one pipeline invocation
// (spec §5, §7: "warnings accumulate in a per-project diagnostics list
// attached to the returned IR bundle"). It is append-only and never
// dropped silently.
type Diagnostics struct {
	Warnings []*Error
}

func (d *Diagnostics) Add(err *Error) {
	if err == nil {
		return
	}
	d.Warnings = append(d.Warnings, err)
}

func (d *Diagnostics) Empty() bool {
	return d == nil || len(d.Warnings) == 0
}
