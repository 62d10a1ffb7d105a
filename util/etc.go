package util

import (
	"errors"
	"os/exec"
)

// PathToProgram resolves an external collaborator binary on PATH.
func PathToProgram(prog string) (string, error) {
	path, err := exec.LookPath(prog)
	if errors.Is(err, exec.ErrDot) {
		err = nil
	}
	return path, err
}
