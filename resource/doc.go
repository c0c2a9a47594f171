// See vector.go and vertex.go for the package's exported surface.
package resource
