// Package tsbuild implements an incremental tree-sequence builder: the
// data structure that turns a stream of inferred haplotype paths into a
// compact, indexed genealogy.
//
// A Builder accumulates nodes and per-child paths (contiguous tilings of
// parent intervals along a genomic coordinate), opportunistically
// compresses shared path prefixes into synthesized ancestor nodes, keeps
// three coordinate/time-ordered indexes over the resulting edges
// consistent through every mutation, and finally freezes a flat,
// cache-friendly view for downstream consumers and/or dumps a table
// collection.
//
// Out of scope: the ancestor-matching algorithm that produces paths, the
// ancestor builder that derives focal-site ancestors from genotype data,
// the phase driver, the CLI, and the table-collection file format. Those
// are external collaborators; this package only defines the minimal input
// contract it needs from them (see AncestorInputTables).
package tsbuild
