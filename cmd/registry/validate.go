// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cratehub/registry/internal/config"
	"github.com/cratehub/registry/internal/issue"
	"github.com/cratehub/registry/pkg/cueutil"
	"github.com/cratehub/registry/pkg/platform"
	"github.com/cratehub/registry/pkg/publish"
	"github.com/cratehub/registry/pkg/types"
	"github.com/cratehub/registry/pkg/wire"
)

// stdinName is the manifest argument that reads standard input.
const stdinName = "-"

type validateRequest struct {
	path   string
	format wire.Format
	output wire.Format
	quiet  bool
}

func newValidateCommand(app *App) *cobra.Command {
	var req validateRequest

	cmd := &cobra.Command{
		Use:   "validate <file|->",
		Short: "Check a release manifest against the publish rules",
		Long: `Decode a release manifest and check it against the publish rules.

On success the manifest is printed in canonical form: fields in a fixed
order, version requirements normalized, absent optional fields omitted.
On failure the first violated rule is reported with the path of the
offending field and the command exits with status 3.

The input format is taken from --format, then from the file extension.
Standard input ("-") uses publish.default_format from the configuration
unless --format is given.`,
		Example: `  registry validate Crate.toml
  registry validate Crate.yaml --output json
  cat crate.json | registry validate - --quiet`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.path = args[0]
			return runValidate(cmd, app, req)
		},
	}

	cmd.Flags().VarP(&req.format, "format", "f", "input format: json, yaml, toml or cue")
	cmd.Flags().VarP(&req.output, "output", "o", "output format (default: the input format)")
	cmd.Flags().BoolVarP(&req.quiet, "quiet", "q", false, "do not print the canonical manifest")

	return cmd
}

func runValidate(cmd *cobra.Command, app *App, req validateRequest) error {
	ctx := cmd.Context()

	cfg, _, err := app.loadConfig(ctx)
	if err != nil {
		return app.fail(cmd, err, types.ExitFailure)
	}
	logger := app.logger(cfg)

	data, err := readManifest(app.stdin, req.path, cfg.Publish.MaxManifestBytes)
	if err != nil {
		return app.fail(cmd, err, types.ExitFailure)
	}

	format, err := resolveFormat(req, cfg.Publish.DefaultFormat)
	if err != nil {
		return app.fail(cmd, err, types.ExitUsage)
	}
	logger.Debug("decoding manifest", "path", req.path, "format", format, "bytes", len(data))

	crate, err := publish.Decode(format, data,
		wire.WithMaxSize(cfg.Publish.MaxManifestBytes),
		wire.WithFilename(displayName(req.path)),
	)
	if err != nil {
		return app.fail(cmd, decodeFailure(req.path, err), types.ExitInvalid)
	}

	warnPortability(logger, crate)

	if !req.quiet {
		output := req.output
		if output == "" {
			output = format
		}
		out, err := crate.Encode(output)
		if err != nil {
			return app.fail(cmd, fmt.Errorf("render manifest as %s: %w", output, err), types.ExitFailure)
		}
		if _, err := app.stdout.Write(out); err != nil {
			return app.fail(cmd, err, types.ExitFailure)
		}
	}

	app.success("%s %s is valid", literal(crate.Name.String()), crate.Vers)
	return nil
}

// readManifest reads the manifest at path, or standard input for "-".
// Standard input is read up to one byte past limit so oversized input is
// still rejected by the size check.
func readManifest(stdin io.Reader, path string, limit int64) ([]byte, error) {
	if path == stdinName {
		data, err := io.ReadAll(io.LimitReader(stdin, limit+1))
		if err != nil {
			return nil, issue.WrapWithContext(err, "read manifest", "<stdin>")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}

	ctx := issue.NewErrorContext().
		WithOperation("read manifest").
		WithResource(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ctx.WithIssue(issue.ManifestNotFoundId).
			WithSuggestion("Check the path for typos").
			WithSuggestion("Use '-' to read the manifest from standard input")
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(issue.PermissionDeniedId).
			WithSuggestion("Check that the file is readable")
	}
	return nil, ctx.Wrap(err).BuildError()
}

// resolveFormat picks the input format: --format, then the file extension,
// then (for standard input only) the configured default.
func resolveFormat(req validateRequest, fallback wire.Format) (wire.Format, error) {
	if req.format != "" {
		return req.format, nil
	}
	if req.path == stdinName {
		return fallback, nil
	}
	format, err := wire.FormatFromPath(req.path)
	if err != nil {
		return "", issue.NewErrorContext().
			WithOperation("detect manifest format").
			WithResource(req.path).
			WithIssue(issue.UnknownFormatId).
			WithSuggestion("Pass --format json, yaml, toml or cue").
			Wrap(err).
			BuildError()
	}
	return format, nil
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

// decodeFailure wraps a decode error with the catalog entry that explains it.
func decodeFailure(path string, err error) error {
	ctx := issue.NewErrorContext().
		WithOperation("validate manifest").
		WithResource(displayName(path))

	var decodeErr *wire.DecodeError
	switch {
	case errors.Is(err, cueutil.ErrFileTooLarge):
		ctx.WithIssue(issue.ManifestInvalidId).
			WithSuggestion("Raise publish.max_manifest_bytes (" + config.EnvPrefix + "_PUBLISH_MAX_MANIFEST_BYTES) if the manifest is legitimate")
	case errors.Is(err, wire.ErrSyntax):
		ctx.WithIssue(issue.ManifestParseErrorId).
			WithSuggestion("Check that --format matches the file content")
	case errors.As(err, &decodeErr) && !decodeErr.Path.IsRoot():
		ctx.WithIssue(issue.ManifestInvalidId).
			WithSuggestion(fmt.Sprintf("Fix the value at %s and validate again", decodeErr.Path))
	default:
		ctx.WithIssue(issue.ManifestInvalidId)
	}
	return ctx.Wrap(err).BuildError()
}

// warnPortability logs names that are valid but cannot be unpacked into a
// directory on every platform.
func warnPortability(logger *log.Logger, crate *publish.NewCrate) {
	if err := platform.CheckPortableName(crate.Name.String()); err != nil {
		logger.Warn("crate name is not portable", "err", err)
	}
	for _, dep := range crate.DependencyNames() {
		if err := platform.CheckPortableName(dep); err != nil {
			logger.Warn("dependency name is not portable", "err", err)
		}
	}
}

// exactArgs is cobra.ExactArgs with a usage exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: types.ExitUsage, Err: err}
		}
		return nil
	}
}
