package resolver_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
	"github.com/cgspeck/gen-systemd-svcs/pkg/resolver"
)

func linesWithPrefix(text, prefix string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.HasPrefix(l, prefix) {
			out = append(out, strings.TrimPrefix(l, prefix))
		}
	}
	return out
}

func TestMergeList(t *testing.T) {
	tests := []struct {
		name    string
		inherit bool
		base    []string
		own     []string
		want    []string
	}{
		{"inherit prepends template", true, []string{"A", "B"}, []string{"C"}, []string{"A", "B", "C"}},
		{"no inherit keeps own only", false, []string{"A", "B"}, []string{"C"}, []string{"C"}},
		{"absent own yields template", true, []string{"A", "B"}, nil, []string{"A", "B"}},
		{"duplicates kept", true, []string{"A"}, []string{"A"}, []string{"A", "A"}},
		{"nothing at all", false, []string{"A"}, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.MergeList(tt.inherit, tt.base, tt.own))
		})
	}
}

func TestResolve_InheritToggle(t *testing.T) {
	tmpl := model.NewTemplate()
	tmpl.Unit.Requires = []string{"A", "B"}

	inst := model.NewInstance("x", "X")
	inst.Unit.Requires = []string{"C"}

	out := resolver.Resolve(inst, tmpl)
	assert.Equal(t, []string{"A", "B", "C"}, linesWithPrefix(out, "Requires="))

	inst.Unit.InheritRequires = false
	out = resolver.Resolve(inst, tmpl)
	assert.Equal(t, []string{"C"}, linesWithPrefix(out, "Requires="))
}

func TestResolve_ServiceOverrideIsPerField(t *testing.T) {
	tmpl := model.NewTemplate()
	tmpl.Service.ExecStart = model.Ptr("X")
	tmpl.Service.User = model.Ptr("U")

	inst := model.NewInstance("x", "X")
	inst.Service = &model.Service{User: model.Ptr("V")}

	out := resolver.Resolve(inst, tmpl)
	assert.Equal(t, []string{"X"}, linesWithPrefix(out, "ExecStart="))
	assert.Equal(t, []string{"V"}, linesWithPrefix(out, "User="))
	assert.Equal(t, []string{"no"}, linesWithPrefix(out, "RemainAfterExit="))
}

func TestResolve_InstallOverrideIsWholesale(t *testing.T) {
	tmpl := model.NewTemplate()
	inst := model.NewInstance("x", "X")
	inst.Install = &model.Install{WantedBy: "multi-user.target"}

	out := resolver.Resolve(inst, tmpl)
	assert.Equal(t, []string{"multi-user.target"}, linesWithPrefix(out, "WantedBy="))
}

func TestResolve_Defaults(t *testing.T) {
	out := resolver.Resolve(model.NewInstance("x", "X"), model.NewTemplate())

	assert.Contains(t, out, "RemainAfterExit=no\n")
	assert.NotContains(t, out, "Type=")
	assert.NotContains(t, out, "RequiresMountsFor")
	assert.Contains(t, out, "WantedBy=default.target\n")
}

func TestResolve_RequiresMountsFor(t *testing.T) {
	inst := model.NewInstance("x", "X")
	inst.Unit.RequiresMountsFor = []string{"/var", "/srv/data"}
	out := resolver.Resolve(inst, model.NewTemplate())
	assert.Contains(t, out, "RequiresMountsFor=/var /srv/data\n")

	inst.Unit.RequiresMountsFor = []string{}
	out = resolver.Resolve(inst, model.NewTemplate())
	assert.Contains(t, out, "RequiresMountsFor=\n")
}

func TestResolve_Deterministic(t *testing.T) {
	tmpl := model.NewTemplate()
	tmpl.Unit.After = []string{"a", "b"}
	inst := model.NewInstance("x", "X")
	inst.Unit.After = []string{"c"}

	assert.Equal(t, resolver.Resolve(inst, tmpl), resolver.Resolve(inst, tmpl))
}

func TestResolve_DoesNotMutateTemplate(t *testing.T) {
	tmpl := model.NewTemplate()
	tmpl.Unit.Wants = make([]string, 1, 8)
	tmpl.Unit.Wants[0] = "a"

	first := model.NewInstance("one", "One")
	first.Unit.Wants = []string{"b"}
	second := model.NewInstance("two", "Two")
	second.Unit.Wants = []string{"c"}

	resolver.Resolve(first, tmpl)
	out := resolver.Resolve(second, tmpl)

	assert.Equal(t, []string{"a", "c"}, linesWithPrefix(out, "Wants="))
	assert.Equal(t, []string{"a"}, tmpl.Unit.Wants)
}

func TestResolve_FullServiceOrder(t *testing.T) {
	tmpl := model.NewTemplate()
	tmpl.Service = model.Service{
		EnvironmentFile:  model.Ptr("/etc/default/app"),
		ExecStartPre:     model.Ptr("/bin/pre"),
		ExecStart:        model.Ptr("/bin/app"),
		ExecStop:         model.Ptr("/bin/stop"),
		Group:            model.Ptr("app"),
		RemainAfterExit:  model.Ptr(model.RemainAfterExitYes),
		Restart:          model.Ptr(model.RestartOnFailure),
		TimeoutStartSec:  model.Ptr(uint32(90)),
		Type:             model.Ptr(model.ServiceTypeOneshot),
		User:             model.Ptr("app"),
		WorkingDirectory: model.Ptr("/srv/app"),
	}
	inst := model.NewInstance("app", "App")

	want := `; THIS FILE IS GENERATED BY gen-systemd-svc
; DO NOT EDIT THIS FILE DIRECTLY!

[Unit]
Description=App

[Service]
EnvironmentFile=/etc/default/app
ExecStartPre=/bin/pre
ExecStart=/bin/app
ExecStop=/bin/stop
Group=app
RemainAfterExit=yes
Restart=on-failure
TimeoutStartSec=90
Type=oneshot
User=app
WorkingDirectory=/srv/app

[Install]
WantedBy=default.target
`
	assert.Equal(t, want, resolver.Resolve(inst, tmpl))
}

func TestResolve_EndToEndScenario(t *testing.T) {
	doc := `
defs:
  - template:
      Unit:
        Requires: [net.target]
        After: [base.service]
      Service:
        ExecStart: /bin/true
    instances:
      - Unit:
          Name: foo
          Description: Foo service
          After: [other.service]
          InheritAfter: true
`
	def, err := model.Parse([]byte(doc), model.FormatYAML)
	require.NoError(t, err)
	require.Len(t, def.Groups, 1)
	require.Len(t, def.Groups[0].Instances, 1)

	inst := def.Groups[0].Instances[0]
	assert.Equal(t, "foo.service", inst.FileName())

	want := `; THIS FILE IS GENERATED BY gen-systemd-svc
; DO NOT EDIT THIS FILE DIRECTLY!

[Unit]
Description=Foo service
Requires=net.target
After=base.service
After=other.service

[Service]
ExecStart=/bin/true
RemainAfterExit=no

[Install]
WantedBy=default.target
`
	assert.Equal(t, want, resolver.Resolve(inst, def.Groups[0].Template))
}
