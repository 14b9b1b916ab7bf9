// Package rings holds the drawing collaborators of a flower graph.
//
// A render pass hands each collaborator a [Frame] (configuration, center of
// rotation, hover state and the canonical legend order) and the data it
// draws. Roots and petals are placed first; the placed nodes are reported back
// to the graph so connections can be drawn between them.
//
// Every drawn element carries data-types and, for petals and connections,
// data-label attributes, so the script in the final document can apply the
// same focus rule as [flower.HoverState.Opacity] in the browser.
//
// [Simple] is the default style. Custom styles implement [Style], or any of
// [Legend], [Roots], [Petals] and [Connections] to override one ring.
package rings
