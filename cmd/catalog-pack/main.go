// Command catalog-pack compresses JSON seed files for distribution. The API
// server loads .gz seeds transparently, so packed files can be shipped as-is.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
)

func main() {
	var (
		input  string
		output string
	)

	flag.StringVar(&input, "input", "", "JSON seed file to pack")
	flag.StringVar(&output, "output", "", "output path (default: <input>.gz)")
	flag.Parse()

	if input == "" {
		slog.Error("input file is required: set --input")
		os.Exit(1)
	}
	if output == "" {
		output = input + ".gz"
	}

	if err := pack(input, output); err != nil {
		slog.Error("catalog pack failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog packed", slog.String("input", input), slog.String("output", output))
}

func pack(input, output string) error {
	in, err := os.Open(input)
	if err != nil {
		return errors.Wrapf(err, "open %s", input)
	}
	defer func() { _ = in.Close() }()

	// Validate before packing so a malformed seed fails here, not at server boot.
	var payload []json.RawMessage
	if err := json.NewDecoder(in).Decode(&payload); err != nil {
		return errors.Wrapf(err, "parse %s", input)
	}
	slog.Info("seed validated", slog.Int("entries", len(payload)))

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return errors.Wrapf(err, "rewind %s", input)
	}

	out, err := os.Create(output)
	if err != nil {
		return errors.Wrapf(err, "create %s", output)
	}
	defer func() { _ = out.Close() }()

	gz := pgzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		return errors.Wrapf(err, "compress %s", input)
	}
	if err := gz.Close(); err != nil {
		return errors.Wrapf(err, "finish %s", output)
	}
	return out.Close()
}
