// Package writer defines the retargetable rendering framework shared by
// every backend: the Writer contract, the per-instance configuration
// surface, and the error taxonomy for unsupported kinds and missing
// configuration.
//
// A Writer is a pure function of (expression tree, configuration). It holds
// no mutable state across calls; configuration is set at construction and
// never changed during a render. Concurrent renders from different writer
// instances are independent.
//
// Backends live in the sub-packages cfamily, dynamic and markup. Each one
// implements rendering as an exhaustive type switch over the sealed expr
// node set; a kind a backend does not implement fails immediately with
// UnsupportedError, never with partial output.
package writer
