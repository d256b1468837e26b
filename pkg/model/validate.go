package model

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidateName checks that name can be used as a descriptor file name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("name %q is not a valid file name", name)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("name %q must not contain path separators", name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("name %q must not contain NUL", name)
	}
	return nil
}

// CheckCollisions returns a NameCollisionError for every instance whose
// name was already used earlier in the file, across all groups.
func CheckCollisions(def *DefinitionFile) error {
	var result *multierror.Error
	seen := make(map[string]string)
	for gi, g := range def.Groups {
		for ii, inst := range g.Instances {
			path := instancePath(gi, ii)
			if first, ok := seen[inst.Unit.Name]; ok {
				result = multierror.Append(result, &NameCollisionError{
					Name:   inst.Unit.Name,
					First:  first,
					Second: path,
				})
				continue
			}
			seen[inst.Unit.Name] = path
		}
	}
	return result.ErrorOrNil()
}

// Validate re-checks the invariants decoding guarantees. It is used for
// definitions built in code rather than decoded from a document.
func Validate(def *DefinitionFile) error {
	var result *multierror.Error
	for gi, g := range def.Groups {
		for ii, inst := range g.Instances {
			path := instancePath(gi, ii) + ".Unit"
			if err := ValidateName(inst.Unit.Name); err != nil {
				result = multierror.Append(result, &DecodeError{Path: path + ".Name", Err: err})
			}
		}
		if g.Template.Service.RemainAfterExit == nil {
			result = multierror.Append(result, &DecodeError{
				Path:   fmt.Sprintf("defs[%d].template.Service.RemainAfterExit", gi),
				Reason: "template is missing its default",
			})
		}
	}
	if err := CheckCollisions(def); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func instancePath(group, instance int) string {
	return fmt.Sprintf("defs[%d].instances[%d]", group, instance)
}
