package stage

import "github.com/Salancelot/baldes/resource"

// AugmentNGMemories scans recent paths and, for each consecutive pair
// (u, v) where u is not already in v's ng-memory, adds u to it — up to
// eta2 entries when aggressive is set, eta1 otherwise, never exceeding
// etaMax. Returns the number of memories actually added.
func AugmentNGMemories(vertices map[int]*resource.Vertex, paths [][]int, aggressive bool, eta1, eta2, etaMax int) int {
	bound := eta1
	if aggressive {
		bound = eta2
	}
	if bound > etaMax {
		bound = etaMax
	}

	added := 0
	for _, path := range paths {
		for i := 0; i+1 < len(path); i++ {
			u, v := path[i], path[i+1]
			vert := vertices[v]
			if vert == nil || vert.InNG(u) {
				continue
			}
			if len(vert.NGNeighborhood) >= bound {
				continue
			}
			if vert.AddToNG(u) {
				added++
			}
		}
	}
	return added
}
