package brewin

import "fmt"

// classTable is the program-wide registry of class definitions. It is
// filled in a single pass at load time and only read afterwards.
type classTable struct {
	classes map[string]*ClassDef
	order   []string
	source  string
}

func newClassTable(source string) *classTable {
	return &classTable{classes: make(map[string]*ClassDef), source: source}
}

func (t *classTable) lookup(name string) (*ClassDef, bool) {
	cd, ok := t.classes[name]
	return cd, ok
}

func (t *classTable) errorf(kind ErrorKind, pos Position, format string, args ...any) error {
	return newSourceError(kind, t.source, pos, format, args...)
}

// define compiles one (class NAME [inherits PARENT] MEMBER...) form. The
// parent must already be defined.
func (t *classTable) define(form *Node) (*ClassDef, error) {
	if form.Head() != keywordClass {
		return nil, t.errorf(SyntaxError, form.Pos(), "expected class definition, found %s", form)
	}
	nameNode := form.Item(1)
	if nameNode == nil || nameNode.IsList() || IsReserved(nameNode.Atom) {
		return nil, t.errorf(SyntaxError, form.Pos(), "malformed class name")
	}
	name := nameNode.Atom
	if _, exists := t.classes[name]; exists {
		return nil, t.errorf(NameError, form.Pos(), "duplicate class name %s", name)
	}

	bodyStart := 2
	var parent *ClassDef
	if marker := form.Item(2); marker != nil && !marker.IsList() && marker.Atom == keywordInherits {
		parentNode := form.Item(3)
		if parentNode == nil || parentNode.IsList() {
			return nil, t.errorf(SyntaxError, form.Pos(), "class %s: inherits needs a base class name", name)
		}
		base, ok := t.classes[parentNode.Atom]
		if !ok {
			return nil, t.errorf(NameError, form.Pos(), "base class %s does not exist", parentNode.Atom)
		}
		parent = base
		bodyStart = 4
	}

	cd := newClassDef(name, parent, form.Pos())
	cd.source = t.source
	ownFields := make(map[string]struct{})
	for _, member := range form.List[bodyStart:] {
		switch member.Head() {
		case keywordField:
			field, err := t.compileField(name, member)
			if err != nil {
				return nil, err
			}
			if _, dup := ownFields[field.Name]; dup {
				return nil, t.errorf(NameError, member.Pos(), "duplicate field %s", field.Name)
			}
			ownFields[field.Name] = struct{}{}
			cd.ownFields = append(cd.ownFields, field.Name)
			cd.mergeField(field)
		case keywordMethod:
			method, err := t.compileMethod(cd, member)
			if err != nil {
				return nil, err
			}
			if _, dup := cd.Methods[method.Name]; dup {
				return nil, t.errorf(NameError, member.Pos(), "duplicate method %s", method.Name)
			}
			cd.Methods[method.Name] = method
			cd.methodList = append(cd.methodList, method)
		default:
			return nil, t.errorf(SyntaxError, member.Pos(), "class %s: unknown member %s", name, member)
		}
	}

	t.classes[name] = cd
	t.order = append(t.order, name)
	return cd, nil
}

// (field TYPE NAME [DEFAULT])
func (t *classTable) compileField(owner string, member *Node) (*FieldDef, error) {
	if member.Len() < 3 || member.Len() > 4 {
		return nil, t.errorf(SyntaxError, member.Pos(), "malformed field %s", member)
	}
	typeNode, nameNode := member.Item(1), member.Item(2)
	if typeNode.IsList() || nameNode.IsList() {
		return nil, t.errorf(SyntaxError, member.Pos(), "malformed field %s", member)
	}
	if IsReserved(nameNode.Atom) {
		return nil, t.errorf(SyntaxError, member.Pos(), "reserved word %s cannot name a field", nameNode.Atom)
	}
	return &FieldDef{
		Name:    nameNode.Atom,
		Type:    typeNode.Atom,
		Default: member.Item(3),
		Pos:     member.Pos(),
		Owner:   owner,
	}, nil
}

// (method RETTYPE NAME ((TYPE NAME)...) BODY)
func (t *classTable) compileMethod(cd *ClassDef, member *Node) (*MethodDef, error) {
	if member.Len() != 5 {
		return nil, t.errorf(SyntaxError, member.Pos(), "malformed method %s", member)
	}
	retNode, nameNode, paramsNode, body := member.Item(1), member.Item(2), member.Item(3), member.Item(4)
	if retNode.IsList() || nameNode.IsList() || !paramsNode.IsList() || !body.IsList() {
		return nil, t.errorf(SyntaxError, member.Pos(), "malformed method %s", member)
	}
	if IsReserved(nameNode.Atom) {
		return nil, t.errorf(SyntaxError, member.Pos(), "reserved word %s cannot name a method", nameNode.Atom)
	}
	method := &MethodDef{
		Name:       nameNode.Atom,
		ReturnType: retNode.Atom,
		Body:       body,
		Pos:        member.Pos(),
		Class:      cd,
	}
	seen := make(map[string]struct{}, paramsNode.Len())
	for _, p := range paramsNode.List {
		if !p.IsList() || p.Len() != 2 || p.Item(0).IsList() || p.Item(1).IsList() {
			return nil, t.errorf(SyntaxError, member.Pos(), "method %s: malformed parameter %s", method.Name, p)
		}
		param := Param{Type: p.Item(0).Atom, Name: p.Item(1).Atom}
		if IsReserved(param.Name) {
			return nil, t.errorf(SyntaxError, member.Pos(), "method %s: reserved word %s cannot name a parameter", method.Name, param.Name)
		}
		if _, dup := seen[param.Name]; dup {
			return nil, t.errorf(NameError, member.Pos(), "method %s: duplicate parameter %s", method.Name, param.Name)
		}
		seen[param.Name] = struct{}{}
		method.Params = append(method.Params, param)
	}
	return method, nil
}

// validate checks every declared type once all classes exist, so fields and
// parameters may refer to classes defined later in the program.
func (t *classTable) validate() error {
	for _, name := range t.order {
		cd := t.classes[name]
		for _, field := range cd.fields {
			if field.Owner != cd.Name {
				continue
			}
			if _, err := t.fieldDefault(field); err != nil {
				return err
			}
		}
		for _, method := range cd.methodList {
			if !t.knownType(method.ReturnType, true) {
				return t.errorf(TypeError, method.Pos, "method %s: invalid return type %s", method.Name, method.ReturnType)
			}
			for _, p := range method.Params {
				if !t.knownType(p.Type, false) {
					return t.errorf(TypeError, method.Pos, "method %s: invalid type %s for parameter %s", method.Name, p.Type, p.Name)
				}
			}
		}
	}
	return nil
}

// fieldDefault converts a field's default literal to a typed value. Class
// typed fields may only default to null.
func (t *classTable) fieldDefault(field *FieldDef) (Value, error) {
	if !t.knownType(field.Type, false) {
		return Value{}, t.errorf(TypeError, field.Pos, "invalid type %s for field %s", field.Type, field.Name)
	}
	if field.Default == nil {
		return zeroValue(field.Type), nil
	}
	if field.Default.IsList() {
		return Value{}, t.errorf(TypeError, field.Pos, "field %s: default must be a literal", field.Name)
	}
	val, ok := parseLiteral(field.Default.Atom)
	if !ok {
		return Value{}, t.errorf(TypeError, field.Pos, "field %s: invalid default %s", field.Name, field.Default.Atom)
	}
	if !isPrimitiveType(field.Type) && !val.IsNull() {
		return Value{}, t.errorf(TypeError, field.Pos, "field %s: class-typed field may only default to null", field.Name)
	}
	stored, ok := t.assign(field.Type, val)
	if !ok {
		return Value{}, t.errorf(TypeError, field.Pos, "field %s: default %s does not match type %s", field.Name, field.Default.Atom, field.Type)
	}
	return stored, nil
}

func (t *classTable) describe(name string) string {
	cd, ok := t.classes[name]
	if !ok {
		return name
	}
	if cd.Parent == nil {
		return cd.Name
	}
	return fmt.Sprintf("%s < %s", cd.Name, cd.Parent.Name)
}

// undefine drops the most recently defined class. Sessions use it to roll
// back a definition that failed validation.
func (t *classTable) undefine(name string) {
	if len(t.order) == 0 || t.order[len(t.order)-1] != name {
		return
	}
	delete(t.classes, name)
	t.order = t.order[:len(t.order)-1]
}
