package expr

import "fmt"

// AxiomKind tags the variant of an Axiom (§3: TBox, RBox, ABox, non-logical).
type AxiomKind int

const (
	// TBox
	KindSubClassOf AxiomKind = iota
	KindEquivalentClasses
	KindDisjointClasses
	KindDisjointUnion
	KindObjectPropertyDomain
	KindObjectPropertyRange

	// RBox
	KindSubObjectPropertyOf
	KindSubPropertyChainOf
	KindInverseProperties
	KindTransitiveProperty
	KindSymmetricProperty
	KindAsymmetricProperty
	KindReflexiveProperty
	KindIrreflexiveProperty
	KindEquivalentProperties
	KindDisjointProperties

	// ABox
	KindClassAssertion
	KindPropertyAssertion
	KindNegativePropertyAssertion
	KindSameIndividual
	KindDifferentIndividuals

	// Non-logical
	KindDeclaration
	KindAnnotation
)

func (k AxiomKind) String() string {
	names := [...]string{
		"SubClassOf", "EquivalentClasses", "DisjointClasses", "DisjointUnion",
		"ObjectPropertyDomain", "ObjectPropertyRange",
		"SubObjectPropertyOf", "SubPropertyChainOf", "InverseProperties",
		"TransitiveProperty", "SymmetricProperty", "AsymmetricProperty",
		"ReflexiveProperty", "IrreflexiveProperty", "EquivalentProperties",
		"DisjointProperties",
		"ClassAssertion", "PropertyAssertion", "NegativePropertyAssertion",
		"SameIndividual", "DifferentIndividuals",
		"Declaration", "Annotation",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("AxiomKind(%d)", int(k))
}

// DeclarationKind distinguishes the entity kind a Declaration introduces.
type DeclarationKind int

const (
	DeclareClass DeclarationKind = iota
	DeclareObjectProperty
	DeclareIndividual
)

// Axiom is an immutable Description Logic assertion (§3). Every non-
// Declaration axiom carries an optional Origin: the pre-refinement axiom
// it was derived from, per the origin-annotation lifecycle of §3/§9.
type Axiom struct {
	kind AxiomKind

	// TBox / general concept fields.
	concepts []Concept // SubClassOf: [sub, sup]; Equivalent/DisjointClasses: n; DisjointUnion: [defined, parts...]

	// RBox / role fields.
	roles    []Role // SubObjectPropertyOf: [sub, sup]; Equivalent/DisjointProperties: n; InverseProperties: [r1, r2]
	chain    []Role // SubPropertyChainOf chain (super role is roles[0])
	role     Role   // single-role axioms (Transitive/Symmetric/Asymmetric/Reflexive/Irreflexive, Domain/Range)
	concept1 Concept // ObjectPropertyDomain/Range filler concept

	// ABox fields.
	individuals []string // ClassAssertion: [a]; SameIndividual/DifferentIndividuals: n; Property assertions: [subject, object]
	concept2    Concept  // ClassAssertion concept

	// Non-logical.
	declKind DeclarationKind
	entity   string
	annotation string

	origin *Axiom // pre-refinement axiom, nil if this is an original axiom
}

// --- TBox constructors ---

// SubClassOf constructs C ⊑ D.
func SubClassOf(sub, sup Concept) Axiom {
	return Axiom{kind: KindSubClassOf, concepts: []Concept{sub, sup}}
}

// Sub returns the subclass side of a SubClassOf axiom.
func (a Axiom) Sub() Concept { return a.concepts[0] }

// Sup returns the superclass side of a SubClassOf axiom.
func (a Axiom) Sup() Concept { return a.concepts[1] }

// EquivalentClasses constructs C₁ ≡ ... ≡ Cₙ.
func EquivalentClasses(cs ...Concept) Axiom {
	return Axiom{kind: KindEquivalentClasses, concepts: append([]Concept(nil), cs...)}
}

// DisjointClasses constructs Disjoint(C₁, ..., Cₙ).
func DisjointClasses(cs ...Concept) Axiom {
	return Axiom{kind: KindDisjointClasses, concepts: append([]Concept(nil), cs...)}
}

// DisjointUnion constructs DisjointUnion(A, C₁, ..., Cₙ): A ≡ C₁⊔...⊔Cₙ and the Cᵢ pairwise disjoint.
func DisjointUnion(defined Concept, parts ...Concept) Axiom {
	cs := append([]Concept{defined}, parts...)
	return Axiom{kind: KindDisjointUnion, concepts: cs}
}

// ObjectPropertyDomain constructs Domain(R) = C.
func ObjectPropertyDomain(r Role, c Concept) Axiom {
	return Axiom{kind: KindObjectPropertyDomain, role: r, concept1: c}
}

// ObjectPropertyRange constructs Range(R) = C.
func ObjectPropertyRange(r Role, c Concept) Axiom {
	return Axiom{kind: KindObjectPropertyRange, role: r, concept1: c}
}

// Concepts returns the concept operands for the concept-carrying axiom
// kinds (EquivalentClasses, DisjointClasses, DisjointUnion); for
// DisjointUnion, element 0 is the defined class.
func (a Axiom) Concepts() []Concept { return a.concepts }

// DomainRangeConcept returns the filler concept for
// ObjectPropertyDomain/Range axioms.
func (a Axiom) DomainRangeConcept() Concept { return a.concept1 }

// --- RBox constructors ---

// SubObjectPropertyOf constructs R ⊑ S.
func SubObjectPropertyOf(sub, sup Role) Axiom {
	return Axiom{kind: KindSubObjectPropertyOf, roles: []Role{sub, sup}}
}

// SubPropertyChainOf constructs R₁ ∘ ... ∘ Rₙ ⊑ S.
func SubPropertyChainOf(chain []Role, sup Role) Axiom {
	return Axiom{kind: KindSubPropertyChainOf, chain: append([]Role(nil), chain...), roles: []Role{sup}}
}

// Chain returns the chain roles of a SubPropertyChainOf axiom.
func (a Axiom) Chain() []Role { return a.chain }

// SubRole returns the sub-role side of a SubObjectPropertyOf axiom.
func (a Axiom) SubRole() Role { return a.roles[0] }

// SupRole returns the super-role side of SubObjectPropertyOf or the
// target role of a SubPropertyChainOf.
func (a Axiom) SupRole() Role {
	if a.kind == KindSubPropertyChainOf {
		return a.roles[0]
	}
	return a.roles[1]
}

// InverseProperties constructs InverseOf(R1, R2).
func InverseProperties(r1, r2 Role) Axiom {
	return Axiom{kind: KindInverseProperties, roles: []Role{r1, r2}}
}

// TransitiveProperty constructs Transitive(R).
func TransitiveProperty(r Role) Axiom { return Axiom{kind: KindTransitiveProperty, role: r} }

// SymmetricProperty constructs Symmetric(R).
func SymmetricProperty(r Role) Axiom { return Axiom{kind: KindSymmetricProperty, role: r} }

// AsymmetricProperty constructs Asymmetric(R).
func AsymmetricProperty(r Role) Axiom { return Axiom{kind: KindAsymmetricProperty, role: r} }

// ReflexiveProperty constructs Reflexive(R).
func ReflexiveProperty(r Role) Axiom { return Axiom{kind: KindReflexiveProperty, role: r} }

// IrreflexiveProperty constructs Irreflexive(R).
func IrreflexiveProperty(r Role) Axiom { return Axiom{kind: KindIrreflexiveProperty, role: r} }

// EquivalentProperties constructs R₁ ≡ ... ≡ Rₙ.
func EquivalentProperties(rs ...Role) Axiom {
	return Axiom{kind: KindEquivalentProperties, roles: append([]Role(nil), rs...)}
}

// DisjointProperties constructs Disjoint(R₁, ..., Rₙ).
func DisjointProperties(rs ...Role) Axiom {
	return Axiom{kind: KindDisjointProperties, roles: append([]Role(nil), rs...)}
}

// Roles returns the role operands for the role-set axiom kinds
// (SubObjectPropertyOf, InverseProperties, EquivalentProperties,
// DisjointProperties).
func (a Axiom) Roles() []Role { return a.roles }

// RoleArg returns the single role operand (Transitive/Symmetric/
// Asymmetric/Reflexive/Irreflexive, Domain/Range).
func (a Axiom) RoleArg() Role { return a.role }

// --- ABox constructors ---

// ClassAssertion constructs C(a).
func ClassAssertion(c Concept, individual string) Axiom {
	return Axiom{kind: KindClassAssertion, concept2: c, individuals: []string{individual}}
}

// AssertedConcept returns the concept of a ClassAssertion axiom.
func (a Axiom) AssertedConcept() Concept { return a.concept2 }

// Individual returns the sole individual of a ClassAssertion.
func (a Axiom) Individual() string { return a.individuals[0] }

// PropertyAssertion constructs R(a, b).
func PropertyAssertion(r Role, subject, object string) Axiom {
	return Axiom{kind: KindPropertyAssertion, role: r, individuals: []string{subject, object}}
}

// NegativePropertyAssertion constructs ¬R(a, b).
func NegativePropertyAssertion(r Role, subject, object string) Axiom {
	return Axiom{kind: KindNegativePropertyAssertion, role: r, individuals: []string{subject, object}}
}

// Subject returns the first individual of a (Negative)PropertyAssertion.
func (a Axiom) Subject() string { return a.individuals[0] }

// Object returns the second individual of a (Negative)PropertyAssertion.
func (a Axiom) Object() string { return a.individuals[1] }

// SameIndividual constructs a₁ ≈ ... ≈ aₙ.
func SameIndividual(individuals ...string) Axiom {
	return Axiom{kind: KindSameIndividual, individuals: append([]string(nil), individuals...)}
}

// DifferentIndividuals constructs a₁ ≠ ... ≠ aₙ.
func DifferentIndividuals(individuals ...string) Axiom {
	return Axiom{kind: KindDifferentIndividuals, individuals: append([]string(nil), individuals...)}
}

// Individuals returns the individual names for SameIndividual /
// DifferentIndividuals axioms (and the [subject, object] pair for
// property assertions).
func (a Axiom) Individuals() []string { return a.individuals }

// --- Non-logical constructors ---

// Declaration constructs a Declaration(kind, entity) axiom.
func Declaration(kind DeclarationKind, entity string) Axiom {
	return Axiom{kind: KindDeclaration, declKind: kind, entity: entity}
}

// DeclKind returns the declared entity kind.
func (a Axiom) DeclKind() DeclarationKind { return a.declKind }

// Entity returns the declared entity name.
func (a Axiom) Entity() string { return a.entity }

// Annotation constructs a free-form annotation axiom.
func Annotation(text string) Axiom { return Axiom{kind: KindAnnotation, annotation: text} }

// AnnotationText returns the annotation payload.
func (a Axiom) AnnotationText() string { return a.annotation }

// --- common accessors ---

// Kind reports the variant of a.
func (a Axiom) Kind() AxiomKind { return a.kind }

// Origin returns the pre-refinement axiom this one was derived from, or
// nil if a is an original (non-refined) axiom.
func (a Axiom) Origin() *Axiom { return a.origin }

// WithOrigin returns a copy of a carrying origin as its provenance. Per
// §3, replace() preserves the origin of the axiom being replaced: if old
// already carries an origin, that (the ultimate original) is propagated
// rather than old itself, so Origin() always points at the true root.
func (a Axiom) WithOrigin(old Axiom) Axiom {
	root := old
	if old.origin != nil {
		root = *old.origin
	}
	cp := a
	cp.origin = &root
	return cp
}

// IsNoOpWeakening reports whether a is the weakening no-op sentinel ⊥ ⊑ ⊤.
func IsNoOpWeakening(a Axiom) bool {
	return a.kind == KindSubClassOf && a.concepts[0].IsBottom() && a.concepts[1].IsTop()
}

// IsNoOpStrengthening reports whether a is the strengthening no-op
// sentinel ⊤ ⊑ ⊥.
func IsNoOpStrengthening(a Axiom) bool {
	return a.kind == KindSubClassOf && a.concepts[0].IsTop() && a.concepts[1].IsBottom()
}

// NoOpWeakening is the sentinel weakened axiom ⊥ ⊑ ⊤.
func NoOpWeakening() Axiom { return SubClassOf(Bottom(), Top()) }

// NoOpStrengthening is the sentinel strengthened axiom ⊤ ⊑ ⊥.
func NoOpStrengthening() Axiom { return SubClassOf(Top(), Bottom()) }
