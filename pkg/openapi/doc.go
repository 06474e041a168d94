// Package openapi loads OpenAPI documents and condenses them into a Summary
// that code-generation templates can iterate over. ContextLoader plugs that
// summary into a template run. Implementations live under internal/openapi
// so kin-openapi stays out of the public API.
package openapi
