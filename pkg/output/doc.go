// Package output defines the contract between a template run and the
// collaborator that persists its text. A Descriptor says where and how to
// write; a Router does the writing. The filesystem implementation lives in
// internal/output/fsrouter and is constructed via gentpl.NewRouter.
package output
