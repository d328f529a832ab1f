package export

import (
	"fmt"
	"strings"
)

// Kind classifies export failures.
type Kind int

const (
	KindNoSelection Kind = iota + 1
	KindNoParticleSystem
	KindInvalidParticle
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindNoSelection:
		return "no selection"
	case KindNoParticleSystem:
		return "no particle system"
	case KindInvalidParticle:
		return "invalid particle"
	case KindIO:
		return "i/o error"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by Export. Every failure aborts the call; whatever was
// already written stays on disk.
type Error struct {
	Kind Kind
	Op   string // "open", "write", "read", "rewrite", "validate", "resolve"
	Path string
	Err  error
}

// Sentinels for errors.Is.
var (
	ErrNoSelection      = &Error{Kind: KindNoSelection}
	ErrNoParticleSystem = &Error{Kind: KindNoParticleSystem}
	ErrInvalidParticle  = &Error{Kind: KindInvalidParticle}
	ErrIO               = &Error{Kind: KindIO}
)

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("export: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		if e.Path != "" {
			b.WriteString(" " + e.Path)
		}
		b.WriteString(": ")
	}
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Message is the text shown to the user.
func (e *Error) Message() string {
	switch e.Kind {
	case KindNoSelection:
		return "No object selected."
	case KindNoParticleSystem:
		return "Selected object does not have a hair particle system."
	case KindInvalidParticle:
		if e.Err != nil {
			return fmt.Sprintf("Invalid particle data: %v.", e.Err)
		}
		return "Invalid particle data."
	case KindIO:
		if e.Err != nil {
			return fmt.Sprintf("Could not write %s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("Could not write %s.", e.Path)
	}
	return e.Error()
}
