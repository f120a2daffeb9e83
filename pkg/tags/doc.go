// Package tags provides the gameplay-tag collaborator the effects engine
// consumes: interned dotted-hierarchy tags, containers supporting set
// algebra and hierarchical matching, and a small query language
// (AllExpressionsMatch / AnyTagsMatch / NoExpressionsMatch / AllTagsMatch).
//
// Forge's effects engine treats the tag registry as an external
// collaborator (spec §1, §6): it never constructs tags itself, only reads
// containers and evaluates queries handed to it. This package is that
// collaborator's reference implementation, kept deliberately small so a
// host application can swap in its own registry by satisfying the same
// Container interface.
package tags
