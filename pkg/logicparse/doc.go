// Package logicparse is a deliberately small infix-to-DNF compiler: a
// concrete, in-tree implementation of logic.Compiler so worked examples
// and tests have something to build a logic.DNFLogicDef from besides
// hand-written Clause literals. It supports identifiers, `&` (and),
// `|` (or), `!` (not, expanded via De Morgan during DNF conversion),
// parentheses, and comparisons (`==`, `<`, `>`) against another
// identifier or an integer literal.
//
// It does not attempt full-generality parsing (custom operator
// precedence tables, macros, aliases) — that remains an external
// collaborator's job, same as any production logic parser under §6's
// "consumed, not designed" contract.
//
// Integer literals must be pre-registered with RegisterLiterals before
// the owning LogicManagerBuilder is frozen: Compile runs against an
// already-built, read-only LogicManager and has no way to add a new
// variable to it after the fact.
package logicparse
