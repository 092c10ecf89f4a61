// Package application contains the extensions that ship with ksp.
package application

import "github.com/jakoblorz/go-ksp/internal/extension"

// Register adds every built-in application to reg
func Register(reg *extension.Registry) error {
	return reg.Register(StructuralMechanicsModule, func() extension.Extension {
		return NewStructuralMechanics()
	})
}

// NewRegistry returns a registry holding the built-in applications
func NewRegistry() *extension.Registry {
	reg := extension.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}
