package common

import (
	"context"
	"fmt"

	"resumescreen/internal/errors"
	"resumescreen/internal/utils"
)

// CreateInputFunc defines how to create the specific operation input from file paths.
type CreateInputFunc[Input any] func(paths []string) (Input, error)

// LogDetailsFunc defines how to log the start of an operation.
type LogDetailsFunc[Input any] func(input Input, cfg CommandConfig)

// OperationFunc is a generic function signature for a file-based operation.
type OperationFunc[Input, Output any] func(context.Context, Input) (Output, error)

// RunFileCommand encapsulates the common logic for file-based CLI commands:
// validate the input files, build the operation input, run it, and hand the
// result to the output handler.
func RunFileCommand[Input, Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	args []string,
	createInput CreateInputFunc[Input],
	operation OperationFunc[Input, Output],
	logDetails LogDetailsFunc[Input],
) error {
	outputHandler := NewOutputHandler(logger)

	for _, arg := range args {
		if err := utils.ValidateInputFile(arg); err != nil {
			return errors.NewValidationError("INVALID_INPUT_FILE",
				fmt.Sprintf("Invalid file %s", arg), err)
		}
	}

	input, err := createInput(args)
	if err != nil {
		return fmt.Errorf("failed to create input from files: %w", err)
	}

	logDetails(input, cmdConfig)

	result, err := operation(ctx, input)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
