package shell

import (
	"os/exec"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/zerr"
)

// Viewers resolves the configured viewer programs that are installed.
// Each is returned as a capability named "Open in <viewer>" with an empty scope.
func Viewers(names []string) []domain.CapabilityScript {
	var out []domain.CapabilityScript
	for _, name := range names {
		path, err := LookupViewer(name)
		if err != nil {
			continue
		}
		out = append(out, domain.CapabilityScript{
			Path: path,
			Name: "Open in " + name,
		})
	}
	return out
}

// LookupViewer finds a viewer program on PATH.
func LookupViewer(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrViewerNotFound.Error()), "viewer", name)
	}
	return path, nil
}
