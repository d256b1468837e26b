package model

// Defaults applied while decoding.
const (
	DefaultWantedBy        = "default.target"
	DefaultRemainAfterExit = RemainAfterExitNo
)

// DefinitionFile is the whole decoded input document.
type DefinitionFile struct {
	Groups []TemplateGroup
}

// TemplateGroup is one template plus the instances derived from it.
type TemplateGroup struct {
	Template  Template
	Instances []Instance
}

// Template carries the defaults every instance of a group may inherit.
type Template struct {
	Unit    TemplateUnit
	Service Service
	Install Install
}

// TemplateUnit holds the base ordering lists. They are never nil after decoding.
type TemplateUnit struct {
	Requires []string
	After    []string
	Wants    []string
}

// Instance is one concrete unit to generate.
type Instance struct {
	Unit InstanceUnit
	// Service, when set, is merged into the template's service block field by field.
	Service *Service
	// Install, when set, replaces the template's install block.
	Install *Install
}

// Name returns the instance's unit name.
func (i Instance) Name() string { return i.Unit.Name }

// FileName returns the name of the descriptor file generated for the instance.
func (i Instance) FileName() string { return i.Unit.Name + ".service" }

// InstanceUnit holds the instance's own [Unit] settings.
type InstanceUnit struct {
	Name        string
	Description string

	Requires []string
	After    []string
	Wants    []string

	InheritRequires bool
	InheritAfter    bool
	InheritWants    bool

	// RequiresMountsFor has no template counterpart.
	RequiresMountsFor []string
}

// Service holds the [Service] attributes. A nil field is absent.
type Service struct {
	EnvironmentFile  *string
	ExecStartPre     *string
	ExecStart        *string
	ExecStop         *string
	Group            *string
	RemainAfterExit  *RemainAfterExit
	Restart          *Restart
	TimeoutStartSec  *uint32
	Type             *ServiceType
	User             *string
	WorkingDirectory *string
}

// Install holds the [Install] settings.
type Install struct {
	WantedBy string
}

// NewTemplate returns a template with every default applied.
func NewTemplate() Template {
	rae := DefaultRemainAfterExit
	return Template{
		Unit: TemplateUnit{
			Requires: []string{},
			After:    []string{},
			Wants:    []string{},
		},
		Service: Service{RemainAfterExit: &rae},
		Install: Install{WantedBy: DefaultWantedBy},
	}
}

// NewInstance returns an instance that inherits every template list.
func NewInstance(name, description string) Instance {
	return Instance{
		Unit: InstanceUnit{
			Name:            name,
			Description:     description,
			InheritRequires: true,
			InheritAfter:    true,
			InheritWants:    true,
		},
	}
}

// Instances returns every instance of the file in declaration order.
func (d *DefinitionFile) Instances() []Instance {
	var out []Instance
	for _, g := range d.Groups {
		out = append(out, g.Instances...)
	}
	return out
}

// Ptr returns a pointer to v. Handy for building Service overrides.
func Ptr[T any](v T) *T { return &v }
