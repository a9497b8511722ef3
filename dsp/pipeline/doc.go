// Package pipeline models effect graphs as trees of Stage, Chain and MixBus
// nodes and evaluates them against multi-channel audio.
//
// A Stage applies one primitive. A Chain threads audio through its children
// in order. A MixBus feeds an independent copy of its input to every branch
// and sums the branch outputs sample by sample without normalisation.
//
// Trees are immutable once built and safe to evaluate concurrently. Branches
// of a MixBus are kept in a canonical structural order, so the summed result
// does not depend on the order in which branches were declared.
package pipeline
