package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sho/internal/ui/style"
)

func TestDensity(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, " "},
		{1, style.PointSingle},
		{2, style.PointFew},
		{3, style.PointFew},
		{4, style.PointMany},
		{40, style.PointMany},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, style.Density(tt.n), "n=%d", tt.n)
	}
}
