// Command catalog-ingest bulk-imports products into the storefront catalog
// from JSON Lines files, optionally gzip-compressed. Every line is validated
// with the same rules as the admin form before anything is written; rows that
// duplicate an existing name+category pair are skipped.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/minhtri-dev/storefront/internal/domain/catalog"
	"github.com/minhtri-dev/storefront/internal/storage/postgres"
)

const (
	bloomCapacity = 1_000_000
	bloomFPR      = 0.001
	progressEvery = 10_000
)

// fileDrafts holds the validated drafts parsed from one input file.
type fileDrafts struct {
	path   string
	drafts []catalog.Draft
}

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	files := flag.Args()
	if len(files) == 0 {
		slog.Error("no input files: pass one or more .jsonl or .jsonl.gz paths")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, files); err != nil {
		slog.Error("catalog ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("catalog ingest completed successfully")
}

func run(ctx context.Context, databaseURL string, files []string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check file %s", f)
		}
	}

	// Parse and validate all files concurrently before touching the database:
	// a malformed line fails the whole ingest with no partial writes.
	slog.Info("parsing input files", slog.Int("files", len(files)))

	parsed, err := parseFiles(ctx, files)
	if err != nil {
		return errors.Wrap(err, "parse input files")
	}

	total := 0
	for _, fd := range parsed {
		total += len(fd.drafts)
	}
	slog.Info("parsed products", slog.Int("count", total))

	if total == 0 {
		slog.Info("nothing to ingest")
		return nil
	}

	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	repo := postgres.NewProductRepository(pool)
	return insertDrafts(ctx, repo, parsed)
}

// parseFiles validates every file concurrently, one goroutine per file.
func parseFiles(ctx context.Context, files []string) ([]fileDrafts, error) {
	parsed := make([]fileDrafts, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(parseFile(ctx, i, f, parsed))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parsed, nil
}

func parseFile(ctx context.Context, idx int, path string, out []fileDrafts) func() error {
	return func() error {
		var (
			drafts []catalog.Draft
			line   uint64
		)

		if err := streamLines(ctx, path, func(data []byte) error {
			line++
			form, err := decodeForm(data)
			if err != nil {
				return errors.Wrapf(err, "line %d", line)
			}

			draft, err := catalog.ParseForm(form)
			if err != nil {
				return errors.Wrapf(err, "line %d", line)
			}
			drafts = append(drafts, draft)

			if line%progressEvery == 0 {
				slog.Info("parse progress", slog.String("file", path), slog.Uint64("lines", line))
			}
			return nil
		}); err != nil {
			return errors.Wrapf(err, "parse %s", path)
		}

		slog.Info("parsed file", slog.String("file", path), slog.Int("products", len(drafts)))
		out[idx] = fileDrafts{path: path, drafts: drafts}
		return nil
	}
}

// insertDrafts writes drafts to the database, skipping duplicates of products
// that already exist. A bloom filter over name+category keys screens each
// draft cheaply; only bloom hits pay for the exact map lookup.
func insertDrafts(ctx context.Context, repo *postgres.ProductRepository, parsed []fileDrafts) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list existing products")
	}

	filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		key := dedupeKey(p.Name, p.Category)
		filter.AddString(key)
		seen[key] = struct{}{}
	}

	var inserted, skipped int
	for _, fd := range parsed {
		for _, d := range fd.drafts {
			key := dedupeKey(d.Name, d.Category)
			if filter.TestString(key) {
				if _, ok := seen[key]; ok {
					skipped++
					continue
				}
			}

			if _, err := repo.Insert(ctx, d); err != nil {
				return errors.Wrapf(err, "insert product %q from %s", d.Name, fd.path)
			}
			filter.AddString(key)
			seen[key] = struct{}{}
			inserted++

			if inserted%100 == 0 {
				slog.Info("insert progress", slog.Int("inserted", inserted))
			}
		}
	}

	slog.Info("ingest summary", slog.Int("inserted", inserted), slog.Int("skipped", skipped))
	return nil
}

func dedupeKey(name string, category catalog.Category) string {
	return strings.ToLower(name) + "|" + string(category)
}

// decodeForm decodes one JSON Lines record into the admin form shape.
// Numeric fields accept both JSON numbers and strings; validation happens
// later in catalog.ParseForm.
func decodeForm(data []byte) (catalog.Form, error) {
	var form catalog.Form
	d := jx.DecodeBytes(data)

	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			return decodeInto(d, &form.Name)
		case "price":
			return decodeInto(d, &form.Price)
		case "original_price":
			return decodeInto(d, &form.OriginalPrice)
		case "image_url":
			return decodeInto(d, &form.ImageURL)
		case "description":
			return decodeInto(d, &form.Description)
		case "category":
			return decodeInto(d, &form.Category)
		case "rating":
			return decodeInto(d, &form.Rating)
		case "reviews":
			return decodeInto(d, &form.Reviews)
		case "stock":
			return decodeInto(d, &form.Stock)
		default:
			return d.Skip()
		}
	}); err != nil {
		return catalog.Form{}, errors.Wrap(err, "decode product")
	}
	return form, nil
}

// decodeInto reads a string, number, or null into dst as text.
func decodeInto(d *jx.Decoder, dst *string) error {
	switch d.Next() {
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return err
		}
		*dst = s
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return err
		}
		*dst = n.String()
	case jx.Null:
		if err := d.Null(); err != nil {
			return err
		}
		*dst = ""
	default:
		return errors.Errorf("unexpected token %v", d.Next())
	}
	return nil
}

// streamLines calls fn for each non-empty line of path, transparently
// decompressing .gz files.
func streamLines(ctx context.Context, path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}
