// Package source reads import batches from local files or blob storage.
package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	domainerrors "society/internal/domain/errors"
	"society/internal/usecase"
	"society/internal/util"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob" // gs:// bucket URLs
	_ "gocloud.dev/blob/s3blob"  // s3:// bucket URLs
)

const utf8BOM = "\ufeff"

// Batch is a parsed CSV file ready for the import layer.
type Batch struct {
	Location string
	Digest   string // SHA-256 of the raw bytes.
	Size     int64
	Rows     []usecase.ImportRow
}

// Load reads location, which is either a local path or a bucket URL such as
// gs://bucket/dir/events.csv, s3://bucket/locations.csv?region=eu-west-1 or
// file:///data/events.csv, and parses it as CSV.
func Load(ctx context.Context, location string, logger *slog.Logger) (*Batch, error) {
	bucket, key, err := openBucket(ctx, location)
	if err != nil {
		return nil, err
	}
	defer bucket.Close()

	reader, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", location)
	}
	defer reader.Close()

	return Read(location, reader, logger)
}

// Read parses an already opened CSV stream, such as an HTTP upload.
// location only labels the batch in logs and reports.
func Read(location string, r io.Reader, logger *slog.Logger) (*Batch, error) {
	start := time.Now()

	var buf bytes.Buffer
	digest, size, err := util.Digest(&buf, r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", location)
	}

	rows, err := ReadRows(&buf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", location)
	}

	logger.Info("Import source loaded",
		slog.String("source", location),
		slog.String("sha256", digest),
		slog.String("size", util.FormatBytes(size)),
		slog.Int("rows", len(rows)),
		slog.String("duration", util.FormatDuration(time.Since(start))),
	)

	return &Batch{Location: location, Digest: digest, Size: size, Rows: rows}, nil
}

// openBucket splits location into a bucket and an object key.
func openBucket(ctx context.Context, location string) (*blob.Bucket, string, error) {
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path. A one-letter scheme is a Windows drive.
		return openDir(location)
	}

	if u.Scheme == fileblob.Scheme {
		return openDir(u.Path)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return nil, "", errors.Errorf("bucket URL %s names no object", location)
	}

	bucketURL := url.URL{Scheme: u.Scheme, Host: u.Host, RawQuery: u.RawQuery}
	bucket, err := blob.OpenBucket(ctx, bucketURL.String())
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to open bucket %s", bucketURL.String())
	}

	return bucket, key, nil
}

func openDir(filePath string) (*blob.Bucket, string, error) {
	dir, name := filepath.Split(filepath.Clean(filePath))
	if dir == "" {
		dir = "."
	}

	bucket, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, "", errors.Wrapf(err, "failed to open directory %s", dir)
	}

	return bucket, path.Clean(name), nil
}

// ReadRows parses CSV with a header line. Header names are trimmed and
// lower-cased. Short rows leave the missing columns empty. Stray quotes are
// kept literally; a record that still cannot be parsed is returned with Err
// set so the import can skip it.
func ReadRows(r io.Reader) ([]usecase.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header")
	}

	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[i] = strings.ToLower(strings.TrimSpace(name))
	}

	var rows []usecase.ImportRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rows = append(rows, usecase.ImportRow{
				Number: len(rows) + 1,
				Line:   parseErr.StartLine,
				Err:    domainerrors.Validation("malformed CSV record: " + parseErr.Err.Error()),
			})

			continue
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}

		line, _ := reader.FieldPos(0)
		fields := make(map[string]string, len(columns))
		for i, name := range columns {
			if name == "" || i >= len(record) {
				continue
			}
			fields[name] = record[i]
		}

		rows = append(rows, usecase.ImportRow{
			Number: len(rows) + 1,
			Line:   line,
			Fields: fields,
		})
	}

	return rows, nil
}
