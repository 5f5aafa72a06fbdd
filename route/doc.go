// Package route turns a shortest-path node sequence plus arbitrary start and
// destination coordinates into an ordered list of guidance legs annotated
// with street names, lengths and turn angles.
//
// The start and destination are arbitrary points, not graph nodes; everything
// between them is. NearestNode snaps an off-graph point onto the network via
// the nearest street segment, and BuildLegs walks a sliding three-waypoint
// window over the full sequence to produce one leg per checkpoint.
package route
