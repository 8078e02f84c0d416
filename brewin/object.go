package brewin

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Object is one slice of a run-time instance: the state and methods
// contributed by a single class of the inheritance chain. The most derived
// slice owns its parent slice, which owns the next one up. All slices of an
// instance share one ID.
type Object struct {
	ID     uuid.UUID
	class  *ClassDef
	parent *Object
	fields map[string]*binding
}

// newObject builds the whole slice chain for cd eagerly. Each slice gets
// its own field store initialized from its class's merged layout.
func newObject(classes *classTable, cd *ClassDef, id uuid.UUID) (*Object, error) {
	obj := &Object{
		ID:     id,
		class:  cd,
		fields: make(map[string]*binding, len(cd.fields)),
	}
	for _, field := range cd.fields {
		val, err := classes.fieldDefault(field)
		if err != nil {
			return nil, err
		}
		obj.fields[field.Name] = &binding{value: val, declared: field.Type}
	}
	if cd.Parent != nil {
		parent, err := newObject(classes, cd.Parent, id)
		if err != nil {
			return nil, err
		}
		obj.parent = parent
	}
	return obj, nil
}

func (o *Object) Class() *ClassDef { return o.class }

// Parent returns the slice for the immediate base class, or nil at the root.
func (o *Object) Parent() *Object { return o.parent }

// Field returns the value stored in this slice's field store.
func (o *Object) Field(name string) (Value, bool) {
	b, ok := o.fields[name]
	if !ok {
		return Value{}, false
	}
	return b.value, true
}

func (o *Object) String() string {
	return fmt.Sprintf("<%s %s>", o.class.Name, o.ID.String()[:8])
}

// callMethod dispatches name on recv. original is the object `me` denotes
// inside the method body; nil means recv itself. Resolution starts at recv's
// own method table and forwards to the parent slice whenever the slice does
// not define name or its definition does not accept args. The original
// receiver travels unchanged so inherited code calling `me` re-enters
// dispatch at the most derived class.
func (exec *Execution) callMethod(recv *Object, name string, args []Value, pos Position, original *Object) (Value, error) {
	if original == nil {
		original = recv
	}
	nameSeen := false
	for slice := recv; slice != nil; slice = slice.parent {
		method, ok := slice.class.Methods[name]
		if !ok {
			continue
		}
		nameSeen = true
		params, ok := exec.bindArguments(method, args)
		if !ok {
			continue
		}
		if exec.trace {
			exec.logger.Debug("dispatch",
				"class", slice.class.Name,
				"method", name,
				"receiver", original.class.Name,
				"object", original.ID.String(),
				"line", pos.Line)
		}
		return exec.invoke(slice, original, method, params, pos)
	}
	if nameSeen {
		return Value{}, exec.errorAt(TypeError, pos, "no matching signature for %s.%s(%s)", recv.class.Name, name, describeArgs(args))
	}
	return Value{}, exec.errorAt(NameError, pos, "unknown method %s", name)
}

// bindArguments matches args against the method's formals and returns the
// parameter frame. Arity must match exactly.
func (exec *Execution) bindArguments(method *MethodDef, args []Value) (*Env, bool) {
	if len(method.Params) != len(args) {
		return nil, false
	}
	params := newEnv(nil)
	for i, p := range method.Params {
		val, ok := exec.program.classes.assign(p.Type, args[i])
		if !ok {
			return nil, false
		}
		params.Define(p.Name, p.Type, val)
	}
	return params, true
}

func (exec *Execution) invoke(slice, original *Object, method *MethodDef, params *Env, pos Position) (Value, error) {
	if err := exec.pushFrame(slice.class.Name+"."+method.Name, pos, method.Class.source); err != nil {
		return Value{}, err
	}
	defer exec.popFrame()

	act := &activation{self: slice, me: original, method: method, env: params}
	status, val, err := exec.execStatement(act, method.Body)
	if err != nil {
		return Value{}, err
	}
	if status == statusReturn {
		return val, nil
	}
	return zeroValue(method.ReturnType), nil
}

func describeArgs(args []Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.TypeName()
	}
	return strings.Join(parts, ", ")
}
