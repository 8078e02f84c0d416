package brewin

// binding is a typed storage slot: a local, a parameter, or a field.
type binding struct {
	value    Value
	declared string
}

// Env is one frame of locals. Method parameters live in the outermost
// frame of an activation and every let block pushes a child frame.
type Env struct {
	parent *Env
	values map[string]*binding
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, values: make(map[string]*binding)}
}

// Get walks the frames from innermost to outermost.
func (e *Env) Get(name string) (Value, bool) {
	b, ok := e.lookup(name)
	if !ok {
		return Value{}, false
	}
	return b.value, true
}

func (e *Env) lookup(name string) (*binding, bool) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Define declares name in this frame. It reports false when the frame
// already holds a local of that name.
func (e *Env) Define(name string, declared string, val Value) bool {
	if _, exists := e.values[name]; exists {
		return false
	}
	e.values[name] = &binding{value: val, declared: declared}
	return true
}
