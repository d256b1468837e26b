// Package resolver merges an instance with its group's template and renders
// the resulting service descriptor. Every function here is pure.
package resolver

import (
	"strconv"
	"strings"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
)

// ToolName is written into the generated-file header.
const ToolName = "gen-systemd-svc"

// Header marks a descriptor as generated.
const Header = "; THIS FILE IS GENERATED BY " + ToolName + "\n" +
	"; DO NOT EDIT THIS FILE DIRECTLY!\n"

// Descriptor is the fully resolved content of one service file.
type Descriptor struct {
	Description string
	Requires    []string
	After       []string
	Wants       []string
	// RequiresMountsFor is nil when the instance did not set it.
	RequiresMountsFor []string
	Service           model.Service
	Install           model.Install
}

// Resolve returns the descriptor text for instance, using template as its base.
func Resolve(instance model.Instance, template model.Template) string {
	return Merge(instance, template).Render()
}

// Merge applies the inheritance and override rules without rendering.
func Merge(instance model.Instance, template model.Template) Descriptor {
	u := instance.Unit
	return Descriptor{
		Description:       u.Description,
		Requires:          MergeList(u.InheritRequires, template.Unit.Requires, u.Requires),
		After:             MergeList(u.InheritAfter, template.Unit.After, u.After),
		Wants:             MergeList(u.InheritWants, template.Unit.Wants, u.Wants),
		RequiresMountsFor: u.RequiresMountsFor,
		Service:           MergeService(instance.Service, template.Service),
		Install:           MergeInstall(instance.Install, template.Install),
	}
}

// MergeList returns base followed by own when inherit is set, otherwise
// just own. Order is kept and duplicates are not removed.
func MergeList(inherit bool, base, own []string) []string {
	out := make([]string, 0, len(base)+len(own))
	if inherit {
		out = append(out, base...)
	}
	return append(out, own...)
}

// MergeService overlays every field set on override onto base.
func MergeService(override *model.Service, base model.Service) model.Service {
	if override == nil {
		return base
	}
	out := base
	pick(&out.EnvironmentFile, override.EnvironmentFile)
	pick(&out.ExecStartPre, override.ExecStartPre)
	pick(&out.ExecStart, override.ExecStart)
	pick(&out.ExecStop, override.ExecStop)
	pick(&out.Group, override.Group)
	pick(&out.RemainAfterExit, override.RemainAfterExit)
	pick(&out.Restart, override.Restart)
	pick(&out.TimeoutStartSec, override.TimeoutStartSec)
	pick(&out.Type, override.Type)
	pick(&out.User, override.User)
	pick(&out.WorkingDirectory, override.WorkingDirectory)
	return out
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

// MergeInstall returns override when set, otherwise base. The install
// block is never merged field by field.
func MergeInstall(override *model.Install, base model.Install) model.Install {
	if override != nil {
		return *override
	}
	return base
}

// Render writes the descriptor in its fixed section and key order.
func (d Descriptor) Render() string {
	var sb strings.Builder
	sb.WriteString(Header)

	sb.WriteString("\n[Unit]\n")
	line(&sb, "Description", d.Description)
	for _, v := range d.Requires {
		line(&sb, "Requires", v)
	}
	for _, v := range d.After {
		line(&sb, "After", v)
	}
	for _, v := range d.Wants {
		line(&sb, "Wants", v)
	}
	if d.RequiresMountsFor != nil {
		line(&sb, "RequiresMountsFor", strings.Join(d.RequiresMountsFor, " "))
	}

	sb.WriteString("\n[Service]\n")
	s := d.Service
	optional(&sb, "EnvironmentFile", s.EnvironmentFile)
	optional(&sb, "ExecStartPre", s.ExecStartPre)
	optional(&sb, "ExecStart", s.ExecStart)
	optional(&sb, "ExecStop", s.ExecStop)
	optional(&sb, "Group", s.Group)
	optional(&sb, "RemainAfterExit", s.RemainAfterExit)
	optional(&sb, "Restart", s.Restart)
	if s.TimeoutStartSec != nil {
		line(&sb, "TimeoutStartSec", strconv.FormatUint(uint64(*s.TimeoutStartSec), 10))
	}
	optional(&sb, "Type", s.Type)
	optional(&sb, "User", s.User)
	optional(&sb, "WorkingDirectory", s.WorkingDirectory)

	sb.WriteString("\n[Install]\n")
	line(&sb, "WantedBy", d.Install.WantedBy)

	return sb.String()
}

func line(sb *strings.Builder, key, value string) {
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(value)
	sb.WriteByte('\n')
}

func optional[T ~string](sb *strings.Builder, key string, v *T) {
	if v != nil {
		line(sb, key, string(*v))
	}
}
