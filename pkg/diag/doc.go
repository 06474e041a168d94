// Package diag records the errors and warnings a template run produces. A
// Diagnostics value is the single sink threaded through initialisation,
// validation, emission and output routing for one run.
package diag
