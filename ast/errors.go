package ast

import (
	"fmt"

	"github.com/qair/ir-compiler/pipelineerr"
)

func structuralError(project, filePath, format string, args ...any) error {
	return pipelineerr.NewStructuralError(project, filePath, fmt.Sprintf(format, args...), nil)
}
