package brewin

// FieldDef is one field of a class's merged layout.
type FieldDef struct {
	Name    string
	Type    string
	Default *Node
	Pos     Position
	// Owner is the class whose declaration supplied this entry.
	Owner string
}

type Param struct {
	Name string
	Type string
}

type MethodDef struct {
	Name       string
	ReturnType string
	Params     []Param
	Body       *Node
	Pos        Position
	Class      *ClassDef
}

// ClassDef is the load-time description of a class. It is immutable once
// the program has been loaded and is shared by every instance.
type ClassDef struct {
	Name    string
	Parent  *ClassDef
	Pos     Position
	Methods map[string]*MethodDef

	// fields is the merged layout: the parent's merged fields with this
	// class's declarations overwriting same-named entries in place.
	fields     []*FieldDef
	fieldIndex map[string]int
	ownFields  []string
	methodList []*MethodDef
	source     string
}

// Fields returns the merged field layout in declaration order.
func (cd *ClassDef) Fields() []*FieldDef {
	return append([]*FieldDef(nil), cd.fields...)
}

// Field looks up a field in the merged layout.
func (cd *ClassDef) Field(name string) (*FieldDef, bool) {
	idx, ok := cd.fieldIndex[name]
	if !ok {
		return nil, false
	}
	return cd.fields[idx], true
}

// OwnFields returns the names of fields declared directly in this class.
func (cd *ClassDef) OwnFields() []string {
	return append([]string(nil), cd.ownFields...)
}

// MethodList returns the class's own methods in declaration order.
func (cd *ClassDef) MethodList() []*MethodDef {
	return append([]*MethodDef(nil), cd.methodList...)
}

// Ancestors returns the chain from cd's parent up to the root.
func (cd *ClassDef) Ancestors() []*ClassDef {
	var out []*ClassDef
	for p := cd.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

func newClassDef(name string, parent *ClassDef, pos Position) *ClassDef {
	cd := &ClassDef{
		Name:       name,
		Parent:     parent,
		Pos:        pos,
		Methods:    make(map[string]*MethodDef),
		fieldIndex: make(map[string]int),
	}
	if parent != nil {
		cd.fields = append(cd.fields, parent.fields...)
		for k, v := range parent.fieldIndex {
			cd.fieldIndex[k] = v
		}
	}
	return cd
}

func (cd *ClassDef) mergeField(field *FieldDef) {
	if idx, ok := cd.fieldIndex[field.Name]; ok {
		cd.fields[idx] = field
		return
	}
	cd.fieldIndex[field.Name] = len(cd.fields)
	cd.fields = append(cd.fields, field)
}
