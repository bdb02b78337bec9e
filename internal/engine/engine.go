package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"embedpipe/internal/dataframe"
	"embedpipe/internal/embedding"
	"embedpipe/internal/store"
	apperrors "embedpipe/pkg/errors"
	"embedpipe/pkg/logger"
)

const (
	// argsKey is the fixed logical key the configuration is stored under.
	argsKey = "args"

	// reservedColumnPrefix marks internal columns excluded from
	// inferred input columns.
	reservedColumnPrefix = "__"

	// columnQuote is the quoting character that may wrap column names.
	columnQuote = "`"

	inputColumnsKey = "input_columns"
	defaultTarget   = "embeddings"
)

// Options tunes a handler.
type Options struct {
	// DefaultBatchSize is used when the model does not advertise one.
	DefaultBatchSize int

	// CacheSize bounds the embedding cache; 0 disables it.
	CacheSize int
}

// Handler drives the embedding pipeline for one model: it persists a
// validated configuration at create time and reconstructs a fresh
// model instance from it on every predict call.
type Handler struct {
	storage  *store.Scoped
	registry *embedding.Registry
	opts     Options
	cache    *embedCache
}

// New creates a handler bound to one model's storage namespace.
func New(storage *store.Scoped, registry *embedding.Registry, opts Options) (*Handler, error) {
	if opts.DefaultBatchSize <= 0 {
		opts.DefaultBatchSize = 32
	}

	h := &Handler{storage: storage, registry: registry, opts: opts}
	if opts.CacheSize > 0 {
		cache, err := newEmbedCache(opts.CacheSize)
		if err != nil {
			return nil, err
		}
		h.cache = cache
	}
	return h, nil
}

// Create validates and persists a model configuration. The model is
// constructed once here so a configuration that cannot construct is
// rejected immediately and never stored.
func (h *Handler) Create(ctx context.Context, target string, df *dataframe.DataFrame, using map[string]any) error {
	args := make(map[string]any, len(using)+2)
	for k, v := range using {
		args[k] = v
	}

	if _, ok := args[inputColumnsKey]; !ok {
		if df != nil {
			inferred := make([]string, 0, len(df.Columns))
			for _, col := range df.Columns {
				col = strings.Trim(col, columnQuote)
				if strings.HasPrefix(col, reservedColumnPrefix) || col == target {
					continue
				}
				inferred = append(inferred, col)
			}
			args[inputColumnsKey] = inferred
		} else {
			// empty list is the "use all columns at prediction
			// time" sentinel
			args[inputColumnsKey] = []string{}
		}
	}

	// Construction may fail here, e.g. on a missing API key. The
	// validation itself is the backend's responsibility.
	_, args, err := embedding.Construct(h.registry, args)
	if err != nil {
		return err
	}

	if target == "" {
		target = defaultTarget
	}
	args[embedding.TargetKey] = target

	if err := h.storage.JSONSet(ctx, argsKey, args); err != nil {
		return fmt.Errorf("failed to persist model configuration: %w", err)
	}
	logger.Info("Stored embedding model configuration", "class", args[embedding.ClassKey], "target", target)
	return nil
}

// Predict reconstructs the model from its stored configuration, embeds
// every row of df and returns df with one appended vector column named
// by the configuration's target. Row order is preserved.
func (h *Handler) Predict(ctx context.Context, df *dataframe.DataFrame) (*dataframe.DataFrame, error) {
	args, err := h.loadArgs(ctx)
	if err != nil {
		return nil, err
	}

	model, args, err := embedding.Construct(h.registry, args)
	if err != nil {
		return nil, err
	}
	class, _ := args[embedding.ClassKey].(string)

	target := defaultTarget
	if t, ok := args[embedding.TargetKey].(string); ok && t != "" {
		target = t
	}

	df.TrimColumnQuotes(columnQuote)

	inputColumns := stringList(args[inputColumnsKey])
	if len(inputColumns) == 0 {
		inputColumns = df.Columns
	}

	// Column validation happens before any embedding work starts.
	var missing []string
	for _, col := range inputColumns {
		if !df.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v not in the input dataframe, available columns are %v",
			apperrors.ErrMissingColumns, missing, df.Columns)
	}

	docs := make([]string, df.NumRows())
	for i := range df.Rows {
		docs[i] = dataframe.Document(inputColumns, df.Select(i, inputColumns))
	}

	vectors, err := h.embedAll(ctx, model, class, docs)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(vectors))
	for i, v := range vectors {
		values[i] = v
	}
	return df.WithColumn(target, values)
}

// Describe exposes read-only views of the stored configuration: the
// persisted key/value pairs, a metadata view naming the resolved
// backend class, or the list of available views.
func (h *Handler) Describe(ctx context.Context, attribute string) (*dataframe.DataFrame, error) {
	switch attribute {
	case "args":
		args, err := h.loadArgs(ctx)
		if err != nil {
			return nil, err
		}
		keys := make([]string, 0, len(args))
		for k := range args {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := dataframe.New("key", "value")
		for _, k := range keys {
			out.AppendRow(k, args[k])
		}
		return out, nil
	case "metadata":
		args, err := h.loadArgs(ctx)
		if err != nil {
			return nil, err
		}
		out := dataframe.New("key", "value")
		out.AppendRow("model_class", args[embedding.ClassKey])
		return out, nil
	default:
		out := dataframe.New("tables")
		out.AppendRow("args")
		out.AppendRow("metadata")
		return out, nil
	}
}

// Finetune is not available for embedding models.
func (h *Handler) Finetune(ctx context.Context) error {
	return fmt.Errorf("%w: finetuning embedding models", apperrors.ErrNotSupported)
}

func (h *Handler) loadArgs(ctx context.Context) (map[string]any, error) {
	var args map[string]any
	if err := h.storage.JSONGet(ctx, argsKey, &args); err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrModelNotFound, err)
		}
		return nil, err
	}
	return args, nil
}

// stringList coerces a stored list (possibly decoded from JSON as
// []any) into a string slice.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
