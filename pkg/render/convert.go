package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	errs "github.com/matzehuels/deckroute/pkg/errors"
)

// converter is the librsvg command line tool.
const converter = "rsvg-convert"

// Convert turns an SVG into "png" or "pdf" with rsvg-convert. scale
// multiplies the PNG resolution (2 for slides on high density screens) and
// is ignored for PDF. PNGs get an opaque white background so that the
// diagram stays readable on dark slide themes.
//
// A missing rsvg-convert is reported as UNSUPPORTED.
func Convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	args := []string{"--format", format}
	switch format {
	case "png":
		if scale <= 0 {
			scale = 1
		}
		args = append(args, "--zoom", strconv.FormatFloat(scale, 'f', 2, 64), "--background-color", "white")
	case "pdf":
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "cannot convert svg to %q", format)
	}

	path, err := exec.LookPath(converter)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeUnsupported, err,
			"%s export needs %s (brew install librsvg, apt install librsvg2-bin)", format, converter)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w: %s", converter, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
