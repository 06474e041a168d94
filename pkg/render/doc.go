// Package render adapts template engines to the runner lifecycle. Template
// is the emitter used for template files and inline sources; Registry holds
// Go-implemented emitters that manifests can reference by name.
package render
