// Package layout assigns integer grid cells to diagram components.
//
// [Place] either keeps the positions written in the diagram (when every
// component has one) or computes them all automatically (when none has).
// Diagrams that mix the two are rejected; lay out
// [diagram.Diagram.WithoutPositions] to discard explicit positions instead.
//
// # Automatic layout
//
// The relationship graph is first classified into a [Shape]:
//
//   - [ShapeSingle]: the component goes to (1,1)
//   - [ShapePath]: components are placed left to right on row 1, starting
//     from the end of the chain that nothing points at
//   - [ShapeHierarchy]: each connected component is layered by BFS depth
//     from its roots, one row per layer, with every layer centered against
//     the widest one; components are stacked vertically
//
// Self-loops and repeated relationships between the same two components do
// not influence the layout. Backward arrows ("<-") count as pointing from
// their target to their source.
//
// Columns and rows start at 1, and the result is fully determined by the
// declaration order of components and relationships.
package layout
