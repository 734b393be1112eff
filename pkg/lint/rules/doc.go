// Package rules provides the built-in lint rules for beylint.
//
// # Rules
//
//   - BEY0002: braces-own-line - Braces owning a multi-line construct must
//     be placed on their own line. Fixable.
//
// # Rule IDs
//
// Rule IDs use the BEYxxxx namespace. IDs are stable across releases and are
// the keys used by configuration files and suppression pragmas.
//
// # Registration
//
// Rules are registered with the default registry via RegisterAll. Each rule
// follows the lint.Rule interface and uses the RuleContext and the fix
// package's replacement-map infrastructure.
package rules
