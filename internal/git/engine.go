package git

import "fmt"

// Engine names accepted by NewEngine.
const (
	EngineGoGit = "go-git"
	EngineExec  = "git"
	EngineNone  = "none"
)

// NewEngine returns the engine registered under name.
func NewEngine(name string) (Engine, error) {
	switch name {
	case EngineGoGit, "":
		return GoGit{}, nil
	case EngineExec:
		return &Exec{}, nil
	case EngineNone:
		return Unimplemented{}, nil
	default:
		return nil, fmt.Errorf("unknown git engine %q (expected %s, %s or %s)", name, EngineGoGit, EngineExec, EngineNone)
	}
}
