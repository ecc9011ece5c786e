package model

import "encoding/json"

// MarshalJSON renders {file, line_start, line_end?}.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(locationJSON{File: l.File, LineStart: l.LineStart, LineEnd: l.LineEnd})
}

// UnmarshalJSON restores a Location from {file, line_start, line_end?}.
func (l *Location) UnmarshalJSON(data []byte) error {
	var aux locationJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.File = aux.File
	l.LineStart = aux.LineStart
	l.LineEnd = aux.LineEnd
	return nil
}

type codeEntityJSON struct {
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Location      Location `json:"location"`
	Signature     string   `json:"signature,omitempty"`
	Docstring     string   `json:"docstring,omitempty"`
	Parent        string   `json:"parent,omitempty"`
	QualifiedName string   `json:"qualified_name"`
}

// MarshalJSON renders the full CodeEntity shape per spec section 6,
// including the derived qualified_name field.
func (e CodeEntity) MarshalJSON() ([]byte, error) {
	return json.Marshal(codeEntityJSON{
		Name:          e.Name,
		Type:          string(e.Kind),
		Location:      e.Location,
		Signature:     e.Signature,
		Docstring:     e.Docstring,
		Parent:        e.ParentName,
		QualifiedName: e.QualifiedName(),
	})
}

// UnmarshalJSON restores a CodeEntity; qualified_name is recomputed and not
// trusted from the wire (it is derivable and spec treats it as identity,
// not independent state).
func (e *CodeEntity) UnmarshalJSON(data []byte) error {
	var aux codeEntityJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Name = aux.Name
	e.Kind = EntityKind(aux.Type)
	e.Location = aux.Location
	e.Signature = aux.Signature
	e.Docstring = aux.Docstring
	e.ParentName = aux.Parent
	return nil
}

type docReferenceJSON struct {
	Text      string   `json:"text"`
	CleanText string   `json:"clean_text"`
	Location  Location `json:"location"`
	Type      string   `json:"type"`
	Context   string   `json:"context,omitempty"`
}

func (r DocReference) MarshalJSON() ([]byte, error) {
	return json.Marshal(docReferenceJSON{
		Text:      r.Text,
		CleanText: r.CleanText(),
		Location:  r.Location,
		Type:      string(r.Kind),
		Context:   r.Context,
	})
}

func (r *DocReference) UnmarshalJSON(data []byte) error {
	var aux docReferenceJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Text = aux.Text
	r.Location = aux.Location
	r.Kind = ReferenceKind(aux.Type)
	r.Context = aux.Context
	return nil
}

type codeDocLinkJSON struct {
	Entity     CodeEntity   `json:"entity"`
	Reference  DocReference `json:"reference"`
	LinkKind   string       `json:"link_kind"`
	Confidence float64      `json:"confidence"`
}

func (l CodeDocLink) MarshalJSON() ([]byte, error) {
	return json.Marshal(codeDocLinkJSON{
		Entity:     l.Entity,
		Reference:  l.Reference,
		LinkKind:   string(l.Kind),
		Confidence: l.Confidence,
	})
}

func (l *CodeDocLink) UnmarshalJSON(data []byte) error {
	var aux codeDocLinkJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.Entity = aux.Entity
	l.Reference = aux.Reference
	l.Kind = LinkKind(aux.LinkKind)
	l.Confidence = aux.Confidence
	return nil
}

type codeFileJSON struct {
	Path     string       `json:"path"`
	Language string       `json:"language"`
	Entities []CodeEntity `json:"entities"`
	Imports  []string     `json:"imports"`
}

func (f CodeFile) MarshalJSON() ([]byte, error) {
	entities := f.Entities
	if entities == nil {
		entities = []CodeEntity{}
	}
	imports := f.Imports
	if imports == nil {
		imports = []string{}
	}
	return json.Marshal(codeFileJSON{
		Path:     f.Path,
		Language: string(f.Language),
		Entities: entities,
		Imports:  imports,
	})
}

func (f *CodeFile) UnmarshalJSON(data []byte) error {
	var aux codeFileJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Path = aux.Path
	f.Language = Language(aux.Language)
	f.Entities = aux.Entities
	f.Imports = aux.Imports
	return nil
}

type headerInfoJSON struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

type docFileJSON struct {
	Path       string         `json:"path"`
	Format     string         `json:"format"`
	Title      string         `json:"title,omitempty"`
	References []DocReference `json:"references"`
	Headers    []headerInfoJSON `json:"headers"`
}

func (f DocFile) MarshalJSON() ([]byte, error) {
	refs := f.References
	if refs == nil {
		refs = []DocReference{}
	}
	headers := make([]headerInfoJSON, len(f.Headers))
	for i, h := range f.Headers {
		headers[i] = headerInfoJSON{Level: h.Level, Text: h.Text, Line: h.Line}
	}
	return json.Marshal(docFileJSON{
		Path:       f.Path,
		Format:     string(f.Format),
		Title:      f.Title,
		References: refs,
		Headers:    headers,
	})
}

func (f *DocFile) UnmarshalJSON(data []byte) error {
	var aux docFileJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Path = aux.Path
	f.Format = DocFormat(aux.Format)
	f.Title = aux.Title
	f.References = aux.References
	f.Headers = make([]HeaderInfo, len(aux.Headers))
	for i, h := range aux.Headers {
		f.Headers[i] = HeaderInfo{Level: h.Level, Text: h.Text, Line: h.Line}
	}
	return nil
}
