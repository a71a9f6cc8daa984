package scaffold

// NewDefaultRegistry creates a registry with all built-in kinds.
// Kinds are compiled into the binary (not external files).
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	// Register built-in kinds
	// Errors are ignored as kind names and type/framework pairs are
	// guaranteed unique
	_ = r.Register(NewReactViteKind())
	_ = r.Register(NewNextKind())
	_ = r.Register(NewVueKind())
	_ = r.Register(NewReactSupabaseKind())
	_ = r.Register(NewT3Kind())
	_ = r.Register(NewPythonKind())
	_ = r.Register(NewFastAPIKind())
	_ = r.Register(NewDjangoKind())

	return r
}
