// Package boundary detects and repairs structural violations at chunk
// boundaries: sentences, URLs, domains, numbered-list markers, and
// markdown links split across two delivery-bounded chunks.
//
// # Rule Table
//
// Violation classes are declared as an ordered table of immutable Rule
// records rather than ad hoc branching. Each rule carries a Detect
// predicate (does this pair exhibit the violation?) and a Split function
// (where inside the left chunk does safe content end and the dangling
// fragment begin?). The repair loop iterates the table, so a new class is
// a new table entry, not new control flow.
//
// Priority is fixed per chunk-pair scan:
//
//	sentence → URL → domain → numbered-list → markdown-link
//
// and at most one repair is applied per adjacent pair per pass.
//
// # Repair
//
//	engine := boundary.NewEngine(reporter)
//	fixed := engine.Repair([]string{"Check out https://example.com", "for more information"}, 100)
//	// fixed: ["Check out", "https://example.com for more information"]
//
// A repair moves the dangling fragment to the front of the next chunk only
// when the result stays within the safe max length; otherwise the content
// is left split. Moving content can only shrink the left chunk, so repair
// never creates an overflow on either side.
//
// # Failure Policy
//
// Repair is fail-open (internal failure returns the input unmodified);
// validation is fail-closed (internal failure returns false). The
// asymmetry is deliberate: a cosmetic repair that breaks should not block
// delivery, but a validator that breaks must not vouch for correctness.
//
// # Citation References
//
// A bracketed numeric marker like "[3]" at end of chunk is a complete
// citation reference, not a truncated markdown link, and never triggers
// link repair.
package boundary
