// Package domain defines the core business types for the mailcore store.
//
// Types in this package are pure value objects with no behavior beyond
// validation and derived-metric helpers. They are the shared language
// between the store backends, the directory/ledger services, and the CLI.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No http.Request, no context.Context in struct fields
//   - JSON tags are allowed (they're metadata, not behavior)
//   - Pure methods on a type (validation, derived metrics) are allowed
//   - Constants and enums belong here
package domain
