package ingest

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/rshade/footprint/internal/logging"
)

// StdinSource is the source name that reads the document from Loader.Stdin.
const StdinSource = "-"

// Loader reads activity documents from files or standard input.
type Loader struct {
	// Stdin is read when the source is StdinSource.
	Stdin io.Reader

	// Format forces the document format. Empty means detect from the path.
	Format Format
}

// LoadDocument loads and parses the activity document at path with the default Loader.
func LoadDocument(ctx context.Context, path string) (*Document, error) {
	return (&Loader{}).LoadDocument(ctx, path)
}

// Load is the best-effort variant of LoadDocument with the default Loader.
func Load(ctx context.Context, path string) (*Document, error) {
	return (&Loader{}).Load(ctx, path)
}

// Load reads source and always returns a usable document. On failure the
// returned document is empty and err is one of *NotFoundError, *ParseError
// or *IOError; callers decide whether that is fatal.
func (l *Loader) Load(ctx context.Context, source string) (*Document, error) {
	doc, err := l.LoadDocument(ctx, source)
	if err != nil {
		log := logging.FromContext(ctx)
		log.Warn().
			Ctx(ctx).
			Str("component", "ingest").
			Str("operation", "load_document").
			Str("source", source).
			Err(err).
			Msg("falling back to empty activity document")
		return &Document{Source: source, Format: l.formatFor(source), Entries: Object{}}, err
	}
	return doc, nil
}

// LoadDocument reads source once and parses it. The file handle is released
// before returning on every path.
func (l *Loader) LoadDocument(ctx context.Context, source string) (*Document, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "load_document").
		Str("source", source).
		Msg("loading activity document")

	if source == StdinSource {
		if l.Stdin == nil {
			return nil, &IOError{Path: source, Err: errors.New("no standard input available")}
		}
		return l.read(ctx, l.Stdin, source)
	}

	f, err := os.Open(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: source, Err: err}
		}
		return nil, &IOError{Path: source, Err: err}
	}
	defer f.Close()

	return l.read(ctx, f, source)
}

func (l *Loader) read(ctx context.Context, r io.Reader, source string) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Path: source, Err: err}
	}

	logging.FromContext(ctx).Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Int("data_size_bytes", len(data)).
		Msg("activity document read")

	return ParseDocument(ctx, data, source, l.formatFor(source))
}

func (l *Loader) formatFor(source string) Format {
	if l.Format != "" {
		return l.Format
	}
	return FormatFromPath(source)
}

// ParseDocument parses raw document bytes. The top-level value must be an
// object; anything else is a *ParseError.
func ParseDocument(ctx context.Context, data []byte, source string, format Format) (*Document, error) {
	log := logging.FromContext(ctx)

	var (
		entries Object
		err     error
	)
	if format == FormatYAML {
		entries, err = decodeYAML(data)
	} else {
		format = FormatJSON
		entries, err = decodeJSON(data)
	}
	if err != nil {
		log.Debug().
			Ctx(ctx).
			Str("component", "ingest").
			Str("operation", "parse_document").
			Str("format", string(format)).
			Err(err).
			Msg("failed to parse activity document")
		return nil, &ParseError{Path: source, Format: format, Err: err}
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "ingest").
		Int("category_count", len(entries)).
		Msg("activity document parsed")

	return &Document{Source: source, Format: format, Entries: entries}, nil
}
