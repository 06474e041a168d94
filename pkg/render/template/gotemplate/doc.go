// Package gotemplate implements template.TemplateRenderer on top of pongo2.
// Templates load from a base directory, an fs.FS, or both (the directory
// wins). The engine registers code-generation filters such as pascal, camel,
// snake and kebab.
package gotemplate
