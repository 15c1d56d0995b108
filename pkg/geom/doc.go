// Package geom provides the vector and point primitives shared by every
// part of the Figura engine. All operations are pure value arithmetic.
package geom
