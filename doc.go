/*
Package gensvc generates systemd service descriptors from a declarative
definition of templates and instances.

A definition file groups instances under a template. Each instance inherits
the template's Requires/After/Wants lists (unless told not to), overrides
individual [Service] attributes, and may replace the [Install] block. The
Generator resolves every instance and hands one "{name}.service" descriptor
per instance to a sink: a directory, memory, or a Redis hash.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/cgspeck/gen-systemd-svcs"
		"github.com/cgspeck/gen-systemd-svcs/pkg/adapters/file"
		"github.com/cgspeck/gen-systemd-svcs/pkg/model"
	)

	func main() {
		def, err := model.ParseFile("services.yaml")
		if err != nil {
			log.Fatal(err)
		}

		gen := gensvc.New(gensvc.WithSink(file.New("/etc/systemd/system")))
		if _, err := gen.Generate(context.Background(), def); err != nil {
			log.Fatal(err)
		}
	}

# Definition format

	defs:
	  - template:
	      Unit:
	        Requires: [network-online.target]
	      Service:
	        ExecStart: /usr/bin/worker
	        Restart: on-failure
	    instances:
	      - Unit:
	          Name: worker-a
	          Description: Worker A
	        Service:
	          User: a

Resolution itself lives in pkg/resolver and is a pure function of one
instance and its template, so instances may be generated in parallel
(see WithWorkers).
*/
package gensvc
