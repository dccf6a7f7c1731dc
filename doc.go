/* Package main: bf -- an optimizing Brainfuck interpreter

Brainfuck has eight instructions operating on a byte-addressed tape and a
single pointer: + and - add and subtract mod 256 at the pointer, > and <
move the pointer, [ and ] bracket a loop that runs while the pointed-at
cell is nonzero, and , and . read and write a byte at the pointer.

A literal tree-walk over that eight-instruction grammar is correct but
slow: every +, every pointer step, and every loop test round-trips through
the tape. This interpreter instead lexes and parses source into a
bracket-balanced AST carrying static per-node summaries (does this node
touch I/O, does it move the pointer by a net amount, what's its pointer
range), then analyzes the AST into a smaller semantic IR:

  - straight-line runs of +/-/>/</,/. are rewritten by summarize_ops into
    canonical per-offset form, coalescing repeated I/O, collapsing each
    cell's additions to a net delta and dropping deltas that net to zero
  - loops with no I/O and no nesting are classified by their static
    summary into an EmptyLoop (a no-op on a zero cell, a dead-loop error
    otherwise), a SetZero, a CountedLoop (whose iteration count is
    computable ahead of time from the entry value and step), a
    JumpToNextZero pointer scan, or an ordinary loop over the
    canonicalized body
  - dense CountedLoop bodies are vectorized into VecAdd blocks plus a
    scalar fringe
  - loops with I/O or nested loops recurse, analyzing their body the same
    way

See ast.go for the parser and its summaries, ir.go for the semantic IR,
analyzer.go for the rewrite, and executor.go for the tree-walk that runs
it against a Tape (tape.go), which is either a flat doubling byte slice or
a two-fan paged model supporting negative addresses.

*/
package main
