// Package manifest describes a batch of template runs in a JSON, YAML or TOML
// file. A manifest names the output directory, shared defaults and globals,
// and one entry per generated file:
//
//	output_dir: gen
//	template_dir: templates
//	defaults:
//	  encoding: utf-8
//	templates:
//	  - name: client
//	    template: client.go.tpl
//	    output: client.go
//	    openapi: api/openapi.yaml
//	  - name: readme
//	    inline: "# {{ project }}"
//	    output: README.md
//	    mode: if-absent
//	    params:
//	      project: billing
//
// Load resolves relative directories against the manifest's own location, so
// a manifest behaves the same regardless of the working directory.
package manifest
