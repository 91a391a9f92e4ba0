// Package board owns the router's item model: the layer stack, nets and
// net-classes, the clearance matrix, rule areas, and every placed Item
// (trace, via, pin, conduction area, outline, rule area). It keeps a
// spatial.Index in lockstep with every insert/remove and answers the
// location-prohibited and physical-connectivity queries the rest of the
// router depends on.
//
// Items are a tagged variant (types.Kind) rather than an interface
// hierarchy, per the design note in the system specification: dispatch is
// by Kind, and the fields not relevant to a given Kind are simply unused.
// This keeps Item a single flat, copyable value — useful since board
// mutation (§4.10) deletes and re-inserts items wholesale rather than
// patching them in place.
package board
