package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nodeadmin/dlrepair/expr"
)

// fixtureAxiom is one line of a fixture.yaml axiom list. Only the
// fields relevant to Type are populated; this is a toy internal format
// (SPEC_FULL.md's "not an OWL/OBO parser"), not a serialization of
// expr.Axiom's full shape.
type fixtureAxiom struct {
	Type       string   `yaml:"type"`
	Concepts   []string `yaml:"concepts,omitempty"`
	Sub        string   `yaml:"sub,omitempty"`
	Sup        string   `yaml:"sup,omitempty"`
	Concept    string   `yaml:"concept,omitempty"`
	Individual string   `yaml:"individual,omitempty"`
	Role       string   `yaml:"role,omitempty"`
	SubRole    string   `yaml:"subRole,omitempty"`
	SupRole    string   `yaml:"supRole,omitempty"`
}

// fixtureFile is the on-disk shape of fixture.yaml: a flat list of
// concept/role names and two axiom lists, static and refutable.
type fixtureFile struct {
	Concepts  []string       `yaml:"concepts"`
	Roles     []string       `yaml:"roles"`
	Static    []fixtureAxiom `yaml:"static"`
	Refutable []fixtureAxiom `yaml:"refutable"`
}

// loadFixture reads a fixture.yaml from path and decodes its static and
// refutable axiom lists. Concepts and roles are declared up front only
// so the fixture reads like a small ontology description; they don't
// otherwise constrain which names appear in axioms.
func loadFixture(path string) (static, refutable []expr.Axiom, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading fixture %q", path)
	}
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, nil, errors.Wrapf(err, "decoding fixture %q", path)
	}
	static, err = decodeAxioms(f.Static)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding static axioms")
	}
	refutable, err = decodeAxioms(f.Refutable)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decoding refutable axioms")
	}
	return static, refutable, nil
}

func decodeAxioms(raw []fixtureAxiom) ([]expr.Axiom, error) {
	out := make([]expr.Axiom, 0, len(raw))
	for i, a := range raw {
		axiom, err := decodeAxiom(a)
		if err != nil {
			return nil, errors.Wrapf(err, "axiom %d", i)
		}
		out = append(out, axiom)
	}
	return out, nil
}

func decodeAxiom(a fixtureAxiom) (expr.Axiom, error) {
	switch a.Type {
	case "sub_class_of":
		return expr.SubClassOf(expr.Atomic(a.Sub), expr.Atomic(a.Sup)), nil
	case "equivalent_classes":
		return expr.EquivalentClasses(atomics(a.Concepts)...), nil
	case "disjoint_classes":
		return expr.DisjointClasses(atomics(a.Concepts)...), nil
	case "class_assertion":
		return expr.ClassAssertion(expr.Atomic(a.Concept), a.Individual), nil
	case "sub_object_property_of":
		return expr.SubObjectPropertyOf(expr.NamedRole(a.SubRole), expr.NamedRole(a.SupRole)), nil
	case "object_property_domain":
		return expr.ObjectPropertyDomain(expr.NamedRole(a.Role), expr.Atomic(a.Concept)), nil
	case "object_property_range":
		return expr.ObjectPropertyRange(expr.NamedRole(a.Role), expr.Atomic(a.Concept)), nil
	default:
		return expr.Axiom{}, errors.Errorf("unknown fixture axiom type %q", a.Type)
	}
}

func atomics(names []string) []expr.Concept {
	out := make([]expr.Concept, len(names))
	for i, n := range names {
		out[i] = expr.Atomic(n)
	}
	return out
}
