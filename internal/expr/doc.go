// Package expr provides the immutable expression intermediate representation
// shared by the MathML parser and every code-generation backend.
//
// This package contains type definitions and the precedence oracle only. All
// writer packages import expr; expr imports nothing internal. This keeps the
// IR the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Expression is a sealed interface: only types in this package implement
//     it, so backends can type-switch exhaustively.
//   - Nodes are constructed once and never mutated. A node holds at most two
//     syntactic operands; wider surface forms (n-ary plus, piecewise) are
//     folded or held as explicit pair sequences before construction.
//   - The only link to the surrounding model is the weak Name reference,
//     which is never followed here. Naming is a caller concern.
//   - Quotient and Remainder round toward negative infinity by definition,
//     independent of any target language's native convention. Backends must
//     preserve that, not this package.
package expr
