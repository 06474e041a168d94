// Package orchestrator turns a manifest into template runners and drives them:
// it picks an emitter per entry, attaches OpenAPI context, applies manifest
// defaults to each output descriptor right before rendering, and collects
// every run's diagnostics into a Report.
package orchestrator
