package baldes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_String(t *testing.T) {
	cases := map[Status]string{
		Optimal:    "optimal",
		NotOptimal: "not_optimal",
		Separation: "separation",
		Error:      "error",
		Rollback:   "rollback",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.String())
	}
}
