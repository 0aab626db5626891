package ecosystem

import (
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem/cargo"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem/gem"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem/golang"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem/npm"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem/python"
	"github.com/rios0rios0/depdoctor/infrastructure/ecosystem/terraform"
)

// NewDefaultRegistry creates a registry with every built-in ecosystem.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(npm.New())
	reg.Register(python.New())
	reg.Register(golang.New())
	reg.Register(cargo.New())
	reg.Register(gem.New())
	reg.Register(terraform.New())
	return reg
}
