/*
Package dsl provides a fluent Go builder for definition files.

It produces the same fully defaulted model.DefinitionFile that decoding a
YAML document would, which is handy for tests and for programs that derive
their units from other data.

	b := dsl.New()
	b.Template().
		Requires("network-online.target").
		ExecStart("/usr/bin/worker").
		Restart(model.RestartOnFailure)

	b.Last().Instance("worker-a", "Worker A").User("a")
	b.Last().Instance("worker-b", "Worker B").NoInheritRequires()

	def, err := b.Build()
*/
package dsl

import (
	"fmt"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
)

// Builder manages the definition construction.
type Builder struct {
	groups []*TemplateBuilder
}

// New creates a new definition builder.
func New() *Builder {
	return &Builder{}
}

// Template starts a new group with a defaulted template.
func (b *Builder) Template() *TemplateBuilder {
	tb := &TemplateBuilder{tmpl: model.NewTemplate(), builder: b}
	b.groups = append(b.groups, tb)
	return tb
}

// Last returns the most recently started group, or nil.
func (b *Builder) Last() *TemplateBuilder {
	if len(b.groups) == 0 {
		return nil
	}
	return b.groups[len(b.groups)-1]
}

// Build assembles the definition and validates instance names.
func (b *Builder) Build() (*model.DefinitionFile, error) {
	def := &model.DefinitionFile{Groups: make([]model.TemplateGroup, 0, len(b.groups))}
	for _, tb := range b.groups {
		group := model.TemplateGroup{Template: tb.tmpl, Instances: make([]model.Instance, 0, len(tb.instances))}
		for _, ib := range tb.instances {
			group.Instances = append(group.Instances, ib.inst)
		}
		def.Groups = append(def.Groups, group)
	}

	if err := model.Validate(def); err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}
	return def, nil
}

// TemplateBuilder configures one template and its instances.
type TemplateBuilder struct {
	tmpl      model.Template
	instances []*InstanceBuilder
	builder   *Builder
}

// Requires appends to the template's Requires list.
func (t *TemplateBuilder) Requires(units ...string) *TemplateBuilder {
	t.tmpl.Unit.Requires = append(t.tmpl.Unit.Requires, units...)
	return t
}

// After appends to the template's After list.
func (t *TemplateBuilder) After(units ...string) *TemplateBuilder {
	t.tmpl.Unit.After = append(t.tmpl.Unit.After, units...)
	return t
}

// Wants appends to the template's Wants list.
func (t *TemplateBuilder) Wants(units ...string) *TemplateBuilder {
	t.tmpl.Unit.Wants = append(t.tmpl.Unit.Wants, units...)
	return t
}

// Service applies fn to the template's service block.
func (t *TemplateBuilder) Service(fn func(*model.Service)) *TemplateBuilder {
	fn(&t.tmpl.Service)
	return t
}

// ExecStart sets the template's ExecStart.
func (t *TemplateBuilder) ExecStart(cmd string) *TemplateBuilder {
	t.tmpl.Service.ExecStart = model.Ptr(cmd)
	return t
}

// Restart sets the template's Restart policy.
func (t *TemplateBuilder) Restart(r model.Restart) *TemplateBuilder {
	t.tmpl.Service.Restart = model.Ptr(r)
	return t
}

// Type sets the template's service type.
func (t *TemplateBuilder) Type(st model.ServiceType) *TemplateBuilder {
	t.tmpl.Service.Type = model.Ptr(st)
	return t
}

// WantedBy sets the template's install target.
func (t *TemplateBuilder) WantedBy(target string) *TemplateBuilder {
	t.tmpl.Install.WantedBy = target
	return t
}

// Instance adds an instance to this template's group.
func (t *TemplateBuilder) Instance(name, description string) *InstanceBuilder {
	ib := &InstanceBuilder{inst: model.NewInstance(name, description), template: t}
	t.instances = append(t.instances, ib)
	return ib
}

// InstanceBuilder provides a fluent API for configuring an instance.
type InstanceBuilder struct {
	inst     model.Instance
	template *TemplateBuilder
}

// Requires appends to the instance's own Requires entries.
func (i *InstanceBuilder) Requires(units ...string) *InstanceBuilder {
	i.inst.Unit.Requires = append(i.inst.Unit.Requires, units...)
	return i
}

// After appends to the instance's own After entries.
func (i *InstanceBuilder) After(units ...string) *InstanceBuilder {
	i.inst.Unit.After = append(i.inst.Unit.After, units...)
	return i
}

// Wants appends to the instance's own Wants entries.
func (i *InstanceBuilder) Wants(units ...string) *InstanceBuilder {
	i.inst.Unit.Wants = append(i.inst.Unit.Wants, units...)
	return i
}

// RequiresMountsFor appends paths to RequiresMountsFor, marking it present.
func (i *InstanceBuilder) RequiresMountsFor(paths ...string) *InstanceBuilder {
	i.inst.Unit.RequiresMountsFor = append(make([]string, 0, len(paths)), i.inst.Unit.RequiresMountsFor...)
	i.inst.Unit.RequiresMountsFor = append(i.inst.Unit.RequiresMountsFor, paths...)
	return i
}

// NoInheritRequires drops the template's Requires list for this instance.
func (i *InstanceBuilder) NoInheritRequires() *InstanceBuilder {
	i.inst.Unit.InheritRequires = false
	return i
}

// NoInheritAfter drops the template's After list for this instance.
func (i *InstanceBuilder) NoInheritAfter() *InstanceBuilder {
	i.inst.Unit.InheritAfter = false
	return i
}

// NoInheritWants drops the template's Wants list for this instance.
func (i *InstanceBuilder) NoInheritWants() *InstanceBuilder {
	i.inst.Unit.InheritWants = false
	return i
}

// Service applies fn to the instance's service override, creating it if needed.
func (i *InstanceBuilder) Service(fn func(*model.Service)) *InstanceBuilder {
	if i.inst.Service == nil {
		i.inst.Service = &model.Service{}
	}
	fn(i.inst.Service)
	return i
}

// User overrides the service user.
func (i *InstanceBuilder) User(user string) *InstanceBuilder {
	return i.Service(func(s *model.Service) { s.User = model.Ptr(user) })
}

// ExecStart overrides the service command.
func (i *InstanceBuilder) ExecStart(cmd string) *InstanceBuilder {
	return i.Service(func(s *model.Service) { s.ExecStart = model.Ptr(cmd) })
}

// WantedBy replaces the template's install block for this instance.
func (i *InstanceBuilder) WantedBy(target string) *InstanceBuilder {
	i.inst.Install = &model.Install{WantedBy: target}
	return i
}

// Instance adds a sibling instance to the same template.
func (i *InstanceBuilder) Instance(name, description string) *InstanceBuilder {
	return i.template.Instance(name, description)
}
