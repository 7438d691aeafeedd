package model

import "fmt"

// Type is the kind of an architecture element.
type Type int

const (
	Organisation Type = iota
	Department
	Domain
	Team
	Service
	Application
	Database
	Queue
)

// Types lists every element type in declaration order.
var Types = []Type{Organisation, Department, Domain, Team, Service, Application, Database, Queue}

var typeNames = map[Type]string{
	Organisation: "organisation",
	Department:   "department",
	Domain:       "domain",
	Team:         "team",
	Service:      "service",
	Application:  "application",
	Database:     "database",
	Queue:        "queue",
}

// String returns the input literal for the type (e.g. "database").
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps an input literal to its Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown element type %q", s)
}

// Element is a node of the containment tree with its computed identifier.
// Elements are built once by the id assigner and never mutated afterwards.
type Element struct {
	ID          string
	Name        string
	Type        Type
	Description *string
	Technology  *string
	Deployment  *string
	Children    []*Element
}

// Relation is a directed edge between two elements, referenced by identifier.
type Relation struct {
	From        string
	To          string
	Description *string
	Technology  *string
}

// Str returns the value behind an optional string, or "" when absent.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ContainerSuffix reports whether t renders as a C4 container and, if so,
// the suffix appended to the Container construct ("Db", "Queue" or "").
// Every Type must be listed here; an unlisted value panics.
func (t Type) ContainerSuffix() (suffix string, container bool) {
	switch t {
	case Application:
		return "", true
	case Database:
		return "Db", true
	case Queue:
		return "Queue", true
	case Organisation, Department, Domain, Team, Service:
		return "", false
	}
	panic(fmt.Sprintf("model: unhandled element type %d", int(t)))
}
