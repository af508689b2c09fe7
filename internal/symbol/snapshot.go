package symbol

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"addinlint/internal/source"
)

// snapshotSchemaVersion is the JSON schema the loader understands. The host
// compiler bumps it whenever the export format changes.
const snapshotSchemaVersion = 1

// The snapshot is the host boundary: the compiler toolchain exports its
// resolved semantic model (declarations, annotations, spans) as one JSON
// document per program. The linter never parses host source text itself.

type spanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type typeJSON struct {
	Name      string     `json:"name"`
	Array     bool       `json:"array,omitempty"`
	Nullable  bool       `json:"nullable,omitempty"`
	ValueType bool       `json:"value_type,omitempty"`
	Args      []typeJSON `json:"args,omitempty"`
}

type annotationJSON struct {
	Name string            `json:"name"`
	Args map[string]string `json:"args,omitempty"`
	Span *spanJSON         `json:"span,omitempty"`
}

type defaultJSON struct {
	Kind        string `json:"kind"`
	LiteralType string `json:"literal_type,omitempty"`
}

type paramJSON struct {
	Name    string       `json:"name"`
	Type    typeJSON     `json:"type"`
	Mode    string       `json:"mode,omitempty"`
	Default *defaultJSON `json:"default,omitempty"`
	Span    *spanJSON    `json:"span,omitempty"`
}

type methodJSON struct {
	Name       string      `json:"name"`
	Access     string      `json:"access,omitempty"`
	Static     bool        `json:"static,omitempty"`
	Span       *spanJSON   `json:"span,omitempty"`
	NameSpan   *spanJSON   `json:"name_span,omitempty"`
	AccessSpan *spanJSON   `json:"access_span,omitempty"`
	Params     []paramJSON `json:"params,omitempty"`
}

type memberJSON struct {
	Name        string           `json:"name"`
	Property    bool             `json:"property,omitempty"`
	Static      bool             `json:"static,omitempty"`
	Const       bool             `json:"const,omitempty"`
	Synthesized bool             `json:"synthesized,omitempty"`
	Access      string           `json:"access,omitempty"`
	Type        typeJSON         `json:"type"`
	Span        *spanJSON        `json:"span,omitempty"`
	NameSpan    *spanJSON        `json:"name_span,omitempty"`
	TypeSpan    *spanJSON        `json:"type_span,omitempty"`
	AccessSpan  *spanJSON        `json:"access_span,omitempty"`
	Annotations []annotationJSON `json:"annotations,omitempty"`
}

type ctorJSON struct {
	Access     string    `json:"access,omitempty"`
	ParamCount int       `json:"param_count"`
	Span       *spanJSON `json:"span,omitempty"`
}

type declJSON struct {
	Kind        string           `json:"kind"`
	Name        string           `json:"name"`
	Namespace   string           `json:"namespace,omitempty"`
	Access      string           `json:"access,omitempty"`
	File        string           `json:"file,omitempty"`
	Span        *spanJSON        `json:"span,omitempty"`
	NameSpan    *spanJSON        `json:"name_span,omitempty"`
	AccessSpan  *spanJSON        `json:"access_span,omitempty"`
	Annotations []annotationJSON `json:"annotations,omitempty"`
	Members     []memberJSON     `json:"members,omitempty"`
	Methods     []methodJSON     `json:"methods,omitempty"`
	Ctors       []ctorJSON       `json:"ctors,omitempty"`
	Implements  []string         `json:"implements,omitempty"`
}

type snapshotJSON struct {
	Schema       int        `json:"schema"`
	BaseDir      string     `json:"base_dir,omitempty"`
	Files        []string   `json:"files,omitempty"`
	Declarations []declJSON `json:"declarations"`
}

// LoadSnapshot reads a program snapshot from disk and materializes the
// Program, loading every referenced source file into a FileSet. Source files
// that cannot be read become empty virtual placeholders so span-dependent
// checks degrade to skips instead of failing the run.
func LoadSnapshot(path string) (*Program, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return ParseSnapshot(path, data)
}

// ParseSnapshot materializes a Program from raw snapshot bytes.
func ParseSnapshot(path string, data []byte) (*Program, error) {
	var snap snapshotJSON
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("snapshot %s: unsupported schema %d (want %d)", path, snap.Schema, snapshotSchemaVersion)
	}

	baseDir := snap.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(path)
	}

	ld := newLoader(baseDir)
	for _, f := range snap.Files {
		ld.fileID(f)
	}

	prog := &Program{
		Decls: make([]*Decl, 0, len(snap.Declarations)),
		Files: ld.fs,
		Path:  path,
		Hash:  sha256.Sum256(data),
	}
	for i := range snap.Declarations {
		d, err := ld.decl(&snap.Declarations[i])
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: declaration %d: %w", path, i, err)
		}
		prog.Decls = append(prog.Decls, d)
	}
	return prog, nil
}

type loader struct {
	fs    *source.FileSet
	ids   map[string]source.FileID
	base  string
}

func newLoader(baseDir string) *loader {
	return &loader{
		fs:   source.NewFileSetWithBase(baseDir),
		ids:  make(map[string]source.FileID),
		base: baseDir,
	}
}

// fileID loads a referenced file once, falling back to a virtual placeholder
// when it cannot be read.
func (ld *loader) fileID(path string) source.FileID {
	if id, ok := ld.ids[path]; ok {
		return id
	}
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(ld.base, path)
	}
	id, err := ld.fs.Load(full)
	if err != nil {
		id = ld.fs.AddVirtual(full, nil)
	}
	ld.ids[path] = id
	return id
}

func (ld *loader) span(file source.FileID, s *spanJSON) source.Span {
	if s == nil {
		return source.Span{}
	}
	if s.End < s.Start {
		return source.Span{}
	}
	return source.Span{File: file, Start: s.Start, End: s.End}
}

func (ld *loader) typeRef(t typeJSON) TypeRef {
	out := TypeRef{
		Name:      t.Name,
		Array:     t.Array,
		Nullable:  t.Nullable,
		ValueType: t.ValueType,
	}
	for _, a := range t.Args {
		out.Args = append(out.Args, ld.typeRef(a))
	}
	return out
}

func (ld *loader) annotations(file source.FileID, raw []annotationJSON) AnnotationSet {
	var set AnnotationSet
	for _, a := range raw {
		ann, ok := resolveAnnotation(a.Name, a.Args, ld.span(file, a.Span))
		if !ok {
			continue // unknown annotations are simply absent from the set
		}
		set = set.add(ann)
	}
	return set
}

func (ld *loader) decl(raw *declJSON) (*Decl, error) {
	kind := ParseDeclKind(raw.Kind)
	if kind == DeclInvalid {
		return nil, fmt.Errorf("unknown declaration kind %q", raw.Kind)
	}
	if raw.Name == "" {
		return nil, fmt.Errorf("declaration without a name")
	}
	file := ld.fileID(raw.File)

	d := &Decl{
		Kind:        kind,
		Name:        raw.Name,
		Namespace:   raw.Namespace,
		Access:      ParseAccess(raw.Access),
		Span:        ld.span(file, raw.Span),
		NameSpan:    ld.span(file, raw.NameSpan),
		AccessSpan:  ld.span(file, raw.AccessSpan),
		Annotations: ld.annotations(file, raw.Annotations),
		Implements:  raw.Implements,
	}

	for _, m := range raw.Members {
		d.Members = append(d.Members, Member{
			Name:        m.Name,
			Property:    m.Property,
			Static:      m.Static,
			Const:       m.Const,
			Synthesized: m.Synthesized,
			Access:      ParseAccess(m.Access),
			Type:        ld.typeRef(m.Type),
			Span:        ld.span(file, m.Span),
			NameSpan:    ld.span(file, m.NameSpan),
			TypeSpan:    ld.span(file, m.TypeSpan),
			AccessSpan:  ld.span(file, m.AccessSpan),
			Annotations: ld.annotations(file, m.Annotations),
		})
	}

	for _, m := range raw.Methods {
		method := Method{
			Name:       m.Name,
			Access:     ParseAccess(m.Access),
			Static:     m.Static,
			Span:       ld.span(file, m.Span),
			NameSpan:   ld.span(file, m.NameSpan),
			AccessSpan: ld.span(file, m.AccessSpan),
		}
		for _, p := range m.Params {
			param := Param{
				Name: p.Name,
				Type: ld.typeRef(p.Type),
				Mode: ParsePassMode(p.Mode),
				Span: ld.span(file, p.Span),
			}
			if p.Default != nil {
				param.Default = DefaultValue{
					Kind:        ParseDefaultKind(p.Default.Kind),
					LiteralType: p.Default.LiteralType,
				}
			}
			method.Params = append(method.Params, param)
		}
		d.Methods = append(d.Methods, method)
	}

	for _, c := range raw.Ctors {
		d.Ctors = append(d.Ctors, Ctor{
			Access:     ParseAccess(c.Access),
			ParamCount: c.ParamCount,
			Span:       ld.span(file, c.Span),
		})
	}

	return d, nil
}
