package rows

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/datagrid/internal/logging"
)

// Format identifies a row file encoding.
type Format string

// Supported formats.
const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
)

// Loading errors.
var (
	ErrUnknownFormat = errors.New("unknown row file format")
	ErrNotAnObject   = errors.New("row is not an object")
	ErrNoFiles       = errors.New("no input files")
)

// Dataset is a set of records plus the field names seen, in display order.
type Dataset struct {
	Records []Record
	Fields  []string
}

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadFile reads one file.
func LoadFile(path string) (Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Dataset{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f, format)
	if err != nil {
		return Dataset{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ds, nil
}

// LoadFiles reads paths concurrently and concatenates them in argument order.
// The first failure cancels the remaining loads.
func LoadFiles(ctx context.Context, paths []string) (Dataset, error) {
	if len(paths) == 0 {
		return Dataset{}, ErrNoFiles
	}
	log := logging.FromContext(ctx)

	parts := make([]Dataset, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds, err := LoadFile(path)
			if err != nil {
				return err
			}
			parts[i] = ds
			log.Debug().Ctx(ctx).
				Str("component", "rows").
				Str("operation", "load_file").
				Str("path", path).
				Int("records", len(ds.Records)).
				Msg("row file loaded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return merge(parts), nil
}

// Decode reads records from r in the given format.
func Decode(r io.Reader, format Format) (Dataset, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatNDJSON:
		return decodeNDJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatCSV:
		return decodeCSV(r)
	default:
		return Dataset{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decodeJSON(r io.Reader) (Dataset, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return Dataset{}, err
	}
	return fromValues(raw)
}

func decodeNDJSON(r io.Reader) (Dataset, error) {
	var raw []any
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return Dataset{}, fmt.Errorf("line %d: %w", line, err)
		}
		raw = append(raw, v)
	}
	if err := sc.Err(); err != nil {
		return Dataset{}, err
	}
	return fromValues(raw)
}

func decodeYAML(r io.Reader) (Dataset, error) {
	var raw []any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Dataset{}, err
	}
	return fromValues(raw)
}

func decodeCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{Records: []Record{}}, nil
	}
	if err != nil {
		return Dataset{}, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records := make([]Record, 0)
	for {
		row, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return Dataset{}, readErr
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return Dataset{Records: records, Fields: header}, nil
}

func fromValues(raw []any) (Dataset, error) {
	records := make([]Record, 0, len(raw))
	for i, v := range raw {
		m, ok := asMap(normalize(v))
		if !ok {
			return Dataset{}, fmt.Errorf("%w: index %d", ErrNotAnObject, i)
		}
		records = append(records, Record(m))
	}
	return Dataset{Records: records, Fields: unionFields(records)}, nil
}

func unionFields(records []Record) []string {
	seen := map[string]bool{}
	for _, r := range records {
		for k := range r {
			seen[k] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for k := range seen {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// merge concatenates datasets; fields keep first-appearance order.
func merge(parts []Dataset) Dataset {
	out := Dataset{Records: []Record{}}
	seen := map[string]bool{}
	for _, p := range parts {
		out.Records = append(out.Records, p.Records...)
		for _, f := range p.Fields {
			if !seen[f] {
				seen[f] = true
				out.Fields = append(out.Fields, f)
			}
		}
	}
	return out
}
