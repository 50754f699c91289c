package fs

import (
	"os"

	"go.trai.ch/sho/internal/core/ports"
)

var _ ports.Stater = (*Stater)(nil)

// Stater reads modification times from the operating system.
type Stater struct{}

// NewStater creates a new Stater.
func NewStater() *Stater {
	return &Stater{}
}

// ModTime returns the modification time of path in UnixNano.
func (s *Stater) ModTime(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixNano(), nil
}
