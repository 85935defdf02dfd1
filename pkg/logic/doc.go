// Package logic evaluates disjunctive-normal-form formulae over a
// progression vector and per-term state unions. A Clause is one
// conjunction; a DNFLogicDef is an ordered disjunction of Clauses.
// Evaluation never mutates the PM it reads from — it only answers
// questions ("is this term reachable", "what state results") against
// whatever a ProgressionManager currently knows.
package logic
