// Package pack computes the initial circle placement of a hierarchy.
//
// [Enclosure] implements front-chain circle packing: siblings are placed
// one at a time tangent to two circles of the current front chain, then the
// smallest enclosing circle of the chain (Welzl's algorithm) becomes the
// radius of the parent. Leaf radii are taken from the tree unchanged;
// internal radii are overwritten by their enclosing circle. The root is
// centred on the canvas.
//
// The enclosing-circle search shuffles its input with a fixed linear
// congruential generator, so identical input always yields an identical
// placement.
package pack
