package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a definition document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// FormatFromPath picks JSON for ".json" files and YAML for everything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

type decodeConfig struct {
	strict bool
}

// DecodeOption configures decoding.
type DecodeOption func(*decodeConfig)

// WithStrict rejects keys that do not belong to the model.
func WithStrict(strict bool) DecodeOption {
	return func(c *decodeConfig) {
		c.strict = strict
	}
}

// ParseFile reads and decodes the definition file at path.
func ParseFile(path string, opts ...DecodeOption) (*DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return Parse(data, FormatFromPath(path), opts...)
}

// Parse decodes a definition document.
func Parse(data []byte, format Format, opts ...DecodeOption) (*DefinitionFile, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, &DecodeError{Reason: "invalid JSON document", Err: err}
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &DecodeError{Reason: "invalid YAML document", Err: err}
		}
	}
	return Decode(raw, opts...)
}

// Decode converts a generic tree (maps, slices, scalars) into a
// DefinitionFile, applying every field default. All problems found are
// returned together; each one is a *DecodeError.
func Decode(raw any, opts ...DecodeOption) (*DefinitionFile, error) {
	cfg := &decodeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var w wireFile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			scalarHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused: cfg.strict,
		Result:      &w,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, structureErrors(err)
	}

	return w.convert()
}

var remainAfterExitType = reflect.TypeOf(RemainAfterExit(""))

// scalarHook maps YAML/JSON booleans onto RemainAfterExit and refuses
// fractional numbers for integer fields. JSON numbers are turned into the
// int64/float64 values YAML produces so both formats decode alike.
func scalarHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if n, ok := data.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			data = i
		} else if f, err := n.Float64(); err == nil {
			data = f
		}
		from = reflect.TypeOf(data)
	}

	switch {
	case to == remainAfterExitType && from.Kind() == reflect.Bool:
		if data.(bool) {
			return string(RemainAfterExitYes), nil
		}
		return string(RemainAfterExitNo), nil
	case to.Kind() == reflect.Int64 && from.Kind() == reflect.Float64:
		f := data.(float64)
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("expected an integer, got %v", f)
		}
	}
	return data, nil
}

func structureErrors(err error) error {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return &DecodeError{Err: err}
	}
	var result *multierror.Error
	for _, msg := range merr.Errors {
		result = multierror.Append(result, &DecodeError{Reason: msg})
	}
	return result.ErrorOrNil()
}

type wireFile struct {
	Defs []wireGroup `mapstructure:"defs"`
}

type wireGroup struct {
	Template  *wireTemplate  `mapstructure:"template"`
	Instances []wireInstance `mapstructure:"instances"`
}

type wireTemplate struct {
	Unit    *wireTemplateUnit `mapstructure:"Unit"`
	Service *wireService      `mapstructure:"Service"`
	Install *wireInstall      `mapstructure:"Install"`
}

type wireTemplateUnit struct {
	Requires []string `mapstructure:"Requires"`
	After    []string `mapstructure:"After"`
	Wants    []string `mapstructure:"Wants"`
}

type wireInstance struct {
	Unit    *wireInstanceUnit `mapstructure:"Unit"`
	Service *wireService      `mapstructure:"Service"`
	Install *wireInstall      `mapstructure:"Install"`
}

type wireInstanceUnit struct {
	Name              *string  `mapstructure:"Name"`
	Description       *string  `mapstructure:"Description"`
	Requires          []string `mapstructure:"Requires"`
	After             []string `mapstructure:"After"`
	Wants             []string `mapstructure:"Wants"`
	InheritRequires   *bool    `mapstructure:"InheritRequires"`
	InheritAfter      *bool    `mapstructure:"InheritAfter"`
	InheritWants      *bool    `mapstructure:"InheritWants"`
	RequiresMountsFor []string `mapstructure:"RequiresMountsFor"`
}

type wireService struct {
	EnvironmentFile  *string          `mapstructure:"EnvironmentFile"`
	ExecStartPre     *string          `mapstructure:"ExecStartPre"`
	ExecStart        *string          `mapstructure:"ExecStart"`
	ExecStop         *string          `mapstructure:"ExecStop"`
	Group            *string          `mapstructure:"Group"`
	RemainAfterExit  *RemainAfterExit `mapstructure:"RemainAfterExit"`
	Restart          *Restart         `mapstructure:"Restart"`
	TimeoutStartSec  *int64           `mapstructure:"TimeoutStartSec"`
	Type             *ServiceType     `mapstructure:"Type"`
	User             *string          `mapstructure:"User"`
	WorkingDirectory *string          `mapstructure:"WorkingDirectory"`
}

type wireInstall struct {
	WantedBy *string `mapstructure:"WantedBy"`
}

// convert validates the wire tree and builds the defaulted model.
func (w *wireFile) convert() (*DefinitionFile, error) {
	var result *multierror.Error
	fail := func(path, reason string) {
		result = multierror.Append(result, &DecodeError{Path: path, Reason: reason})
	}

	if w.Defs == nil {
		fail("defs", "missing required field")
		return nil, result.ErrorOrNil()
	}

	def := &DefinitionFile{Groups: make([]TemplateGroup, 0, len(w.Defs))}
	for gi, wg := range w.Defs {
		groupPath := fmt.Sprintf("defs[%d]", gi)
		group := TemplateGroup{Instances: make([]Instance, 0, len(wg.Instances))}

		if wg.Template == nil {
			fail(groupPath+".template", "missing required field")
		} else {
			tmpl, err := wg.Template.convert(groupPath + ".template")
			if err != nil {
				result = multierror.Append(result, err)
			}
			group.Template = tmpl
		}

		for ii, wi := range wg.Instances {
			inst, err := wi.convert(instancePath(gi, ii))
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			group.Instances = append(group.Instances, inst)
		}
		def.Groups = append(def.Groups, group)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return def, nil
}

func (w *wireTemplate) convert(path string) (Template, error) {
	t := NewTemplate()
	if w.Unit != nil {
		t.Unit.Requires = orEmpty(w.Unit.Requires)
		t.Unit.After = orEmpty(w.Unit.After)
		t.Unit.Wants = orEmpty(w.Unit.Wants)
	}

	var err error
	if w.Service != nil {
		var svc Service
		svc, err = w.Service.convert(path + ".Service")
		if svc.RemainAfterExit == nil {
			svc.RemainAfterExit = t.Service.RemainAfterExit
		}
		t.Service = svc
	}
	if w.Install != nil {
		t.Install = w.Install.convert()
	}
	return t, err
}

func (w *wireInstance) convert(path string) (Instance, error) {
	var result *multierror.Error
	fail := func(field, reason string) {
		result = multierror.Append(result, &DecodeError{Path: path + field, Reason: reason})
	}

	if w.Unit == nil {
		fail(".Unit", "missing required field")
		return Instance{}, result.ErrorOrNil()
	}

	u := w.Unit
	var inst Instance
	switch {
	case u.Name == nil:
		fail(".Unit.Name", "missing required field")
	default:
		if err := ValidateName(*u.Name); err != nil {
			result = multierror.Append(result, &DecodeError{Path: path + ".Unit.Name", Err: err})
		}
		inst = NewInstance(*u.Name, "")
	}
	if u.Description == nil {
		fail(".Unit.Description", "missing required field")
	} else {
		inst.Unit.Description = *u.Description
	}

	inst.Unit.Requires = u.Requires
	inst.Unit.After = u.After
	inst.Unit.Wants = u.Wants
	inst.Unit.RequiresMountsFor = u.RequiresMountsFor
	inst.Unit.InheritRequires = boolOr(u.InheritRequires, true)
	inst.Unit.InheritAfter = boolOr(u.InheritAfter, true)
	inst.Unit.InheritWants = boolOr(u.InheritWants, true)

	if w.Service != nil {
		svc, err := w.Service.convert(path + ".Service")
		if err != nil {
			result = multierror.Append(result, err)
		}
		inst.Service = &svc
	}
	if w.Install != nil {
		install := w.Install.convert()
		inst.Install = &install
	}

	return inst, result.ErrorOrNil()
}

func (w *wireService) convert(path string) (Service, error) {
	svc := Service{
		EnvironmentFile:  w.EnvironmentFile,
		ExecStartPre:     w.ExecStartPre,
		ExecStart:        w.ExecStart,
		ExecStop:         w.ExecStop,
		Group:            w.Group,
		RemainAfterExit:  w.RemainAfterExit,
		Restart:          w.Restart,
		Type:             w.Type,
		User:             w.User,
		WorkingDirectory: w.WorkingDirectory,
	}
	if w.TimeoutStartSec != nil {
		v := *w.TimeoutStartSec
		if v < 0 || v > math.MaxUint32 {
			return svc, &DecodeError{
				Path:   path + ".TimeoutStartSec",
				Reason: fmt.Sprintf("value %d out of range [0, %d]", v, uint32(math.MaxUint32)),
			}
		}
		svc.TimeoutStartSec = Ptr(uint32(v))
	}
	return svc, nil
}

func (w *wireInstall) convert() Install {
	if w.WantedBy == nil {
		return Install{WantedBy: DefaultWantedBy}
	}
	return Install{WantedBy: *w.WantedBy}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
