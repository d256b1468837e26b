/*
Package model contains the typed Definition Model for gen-systemd-svc.

A definition file is a list of groups. Each group has one Template and any
number of Instances that derive from it. Decoding applies every field
default up front, so the resolver only ever sees fully defaulted values.

# Presence

Override semantics depend on whether a field was given at all, so optional
values keep that information:

  - Optional scalars in Service are pointers. nil means "not given".
  - Optional lists on an instance use the nil slice for "not given" and a
    non-nil (possibly empty) slice for "given".
  - Instance.Service and Instance.Install are pointers. nil means the
    template block is used as-is.

# Merge asymmetry

An instance Service block is merged into the template field by field.
An instance Install block replaces the template's Install block entirely.
Both behaviours are observable in generated output and must be kept as
they are when extending the model.
*/
package model
