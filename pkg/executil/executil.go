// SPDX-License-Identifier: AGPL-3.0-or-later

/*
routeforge converts reverse-proxy configuration between nginx, Traefik dynamic config, Docker Compose Traefik labels, and generic JSON/YAML.

Copyright (C) 2026  routeforge contributors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Feature: CORE_EXECUTIL
// Spec: spec/core/executil.md

// Package executil provides utilities for executing external commands.
package executil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Runner is an interface for executing commands.
type Runner interface {
	// Run executes a command and returns the result.
	// Returns an error if the command fails (non-zero exit code) or if execution fails.
	Run(ctx context.Context, cmd Command) (*Result, error)

	// RunStream executes a command and streams output to the provided writer.
	// Returns an error if the command fails (non-zero exit code) or if execution fails.
	RunStream(ctx context.Context, cmd Command, output io.Writer) error
}

// Command represents a command to execute.
type Command struct {
	Name  string
	Args  []string
	Dir   string
	Env   map[string]string
	Stdin io.Reader
}

// Result contains the result of a command execution.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// String renders cmd as a shell-safe, copy-pasteable command line for
// logging (e.g. --verbose output before a `nginx -t` lint run).
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, shellescape.Quote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, shellescape.Quote(a))
	}
	return strings.Join(parts, " ")
}

// runner is the default implementation of Runner.
type runner struct{}

// NewRunner creates a new Runner instance.
func NewRunner() Runner {
	return &runner{}
}

// NewCommand creates a new Command with the given name and arguments.
func NewCommand(name string, args ...string) Command {
	return Command{
		Name: name,
		Args: args,
	}
}

// Run executes a command and returns the result.
func (r *runner) Run(ctx context.Context, cmd Command) (*Result, error) { //nolint:gocritic // hugeParam: intentional for immutability
	//nolint:gosec // This package is designed to execute arbitrary commands;
	// validation should be done by callers.
	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)

	// Set working directory if specified
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}

	// Set environment variables
	if len(cmd.Env) > 0 {
		execCmd.Env = os.Environ()
		for k, v := range cmd.Env {
			execCmd.Env = append(execCmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	// Set stdin if provided
	if cmd.Stdin != nil {
		execCmd.Stdin = cmd.Stdin
	}

	// Capture stdout and stderr
	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	// Execute the command
	err := execCmd.Run()

	// execCmd.ProcessState is nil when the process never started (e.g.
	// the binary isn't on PATH): ExitCode() would panic on a nil
	// receiver, so exit code defaults to -1 in that case.
	exitCode := -1
	if execCmd.ProcessState != nil {
		exitCode = execCmd.ProcessState.ExitCode()
	}

	result := &Result{
		ExitCode: exitCode,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
	}

	// Check for context cancellation first
	if ctx.Err() != nil {
		return result, fmt.Errorf("command cancelled: %w", ctx.Err())
	}

	// Check for execution errors (command not found, permission denied, etc.)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Command executed but returned non-zero exit code
			return result, fmt.Errorf("command failed with exit code %d: %w", result.ExitCode, err)
		}
		// Execution error (command not found, etc.)
		return result, fmt.Errorf("executing command: %w", err)
	}

	return result, nil
}

// RunStream executes a command and streams output to the provided writer.
func (r *runner) RunStream(ctx context.Context, cmd Command, output io.Writer) error { //nolint:gocritic // hugeParam: intentional for immutability
	//nolint:gosec // This package is designed to execute arbitrary commands;
	// validation should be done by callers.
	execCmd := exec.CommandContext(ctx, cmd.Name, cmd.Args...)

	// Set working directory if specified
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}

	// Set environment variables
	if len(cmd.Env) > 0 {
		execCmd.Env = os.Environ()
		for k, v := range cmd.Env {
			execCmd.Env = append(execCmd.Env, fmt.Sprintf("%s=%s", k, v))
		}
	}

	// Set stdin if provided
	if cmd.Stdin != nil {
		execCmd.Stdin = cmd.Stdin
	}

	// Stream both stdout and stderr to the output writer
	execCmd.Stdout = output
	execCmd.Stderr = output

	// Execute the command
	err := execCmd.Run()

	// Check for context cancellation first
	if ctx.Err() != nil {
		return fmt.Errorf("command cancelled: %w", ctx.Err())
	}

	// Check for execution errors
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Command executed but returned non-zero exit code
			return fmt.Errorf("command failed with exit code %d: %w", exitErr.ExitCode(), err)
		}
		// Execution error (command not found, etc.)
		return fmt.Errorf("executing command: %w", err)
	}

	return nil
}
