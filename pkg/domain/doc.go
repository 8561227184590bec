/*
Package domain contains the core data model of the fable narrative engine.

It defines the story graph, the play session and the values exchanged with
callers. The package is pure: it performs no I/O and owns no goroutines.

# Key Entities

  - Node: a closed set of variants (Passage, ChoiceNode, Condition, Variable,
    Include, Comment). NodeVisitor gives callers an exhaustive switch.
  - Story: a keyed collection of nodes with a lazily rebuilt edge index.
  - State: a live session (current node, include stack, variables, visits).
  - Frame: one unit of player-visible output plus the events that led to it.
  - Issue / ValidationResult: static analysis findings.
  - RuntimeError: every runtime failure, identified by a stable code.
*/
package domain
