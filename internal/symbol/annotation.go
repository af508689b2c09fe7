package symbol

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"addinlint/internal/source"
)

// AnnotationKind is one of the four recognized marker annotations. Anything
// else the host attaches to a declaration is dropped at the ingestion
// boundary, so rule logic never compares annotation names.
type AnnotationKind uint8

const (
	AnnInterfaceMarker AnnotationKind = iota
	AnnStructMarker
	AnnFieldMarker
	AnnIgnoreMarker

	annotationKinds
)

func (k AnnotationKind) String() string {
	switch k {
	case AnnInterfaceMarker:
		return "AddInInterface"
	case AnnStructMarker:
		return "AddInStructure"
	case AnnFieldMarker:
		return "AddInField"
	case AnnIgnoreMarker:
		return "AddInIgnore"
	}
	return "unknown"
}

// MarkerText returns the annotation as it is written above a declaration,
// used by the fix synthesizer when inserting the structure marker.
func (k AnnotationKind) MarkerText() string {
	return "[" + k.String() + "]"
}

// annotationAliases maps every accepted spelling (host attribute classes may
// be referenced with or without the Attribute suffix) to the kind.
var annotationAliases = map[string]AnnotationKind{
	"addininterface":          AnnInterfaceMarker,
	"addininterfaceattribute": AnnInterfaceMarker,
	"addinstructure":          AnnStructMarker,
	"addinstructureattribute": AnnStructMarker,
	"addinfield":              AnnFieldMarker,
	"addinfieldattribute":     AnnFieldMarker,
	"addinignore":             AnnIgnoreMarker,
	"addinignoreattribute":    AnnIgnoreMarker,
}

// LookupAnnotation resolves an attribute name to its marker kind.
func LookupAnnotation(name string) (AnnotationKind, bool) {
	k, ok := annotationAliases[strings.ToLower(name)]
	return k, ok
}

// Annotation is one recognized marker with its typed named arguments.
type Annotation struct {
	Kind AnnotationKind
	Span source.Span

	// NameOverride is the externally-visible name argument.
	NameOverride string
	// OriginalName is the legacy name argument, consulted after NameOverride.
	OriginalName string
	// TypeTag is the raw type-tag argument; internal/interop parses it.
	TypeTag string
	// Order is the ordering/length argument.
	Order    int
	HasOrder bool
}

// AnnotationSet is the typed set of recognized markers on one declaration or
// member. At most one annotation per kind survives ingestion (first wins).
type AnnotationSet []Annotation

// Has reports whether the set contains the given marker kind.
func (s AnnotationSet) Has(kind AnnotationKind) bool {
	_, ok := s.Get(kind)
	return ok
}

// Get returns the annotation of the given kind.
func (s AnnotationSet) Get(kind AnnotationKind) (Annotation, bool) {
	for _, a := range s {
		if a.Kind == kind {
			return a, true
		}
	}
	return Annotation{}, false
}

func (s AnnotationSet) add(a Annotation) AnnotationSet {
	if s.Has(a.Kind) {
		return s
	}
	return append(s, a)
}

// resolveAnnotation builds a typed Annotation from a raw (name, args) pair,
// returning false for unrecognized names. Name arguments are NFC-normalized:
// overrides originate in foreign source text and must compare consistently.
func resolveAnnotation(name string, args map[string]string, span source.Span) (Annotation, bool) {
	kind, ok := LookupAnnotation(name)
	if !ok {
		return Annotation{}, false
	}
	ann := Annotation{Kind: kind, Span: span}
	for key, val := range args {
		switch strings.ToLower(key) {
		case "name":
			ann.NameOverride = norm.NFC.String(val)
		case "originalname":
			ann.OriginalName = norm.NFC.String(val)
		case "type":
			ann.TypeTag = val
		case "order", "length":
			if n, err := strconv.Atoi(val); err == nil {
				ann.Order = n
				ann.HasOrder = true
			}
		}
	}
	return ann, true
}
