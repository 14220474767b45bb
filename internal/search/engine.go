package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/cache"
	"github.com/Paintersrp/promptorg/internal/store"
)

const defaultPatternCacheSize = 128

// Config tunes how queries are evaluated.
type Config struct {
	// DefaultOperator joins terms written without an operator. Empty means AND.
	DefaultOperator Operator
	// CaseSensitive applies to literal and regex terms alike.
	CaseSensitive bool
	// PatternCacheSize bounds the number of compiled regex terms kept between
	// searches.
	PatternCacheSize int
}

// Engine evaluates queries against the records of a RecordSource.
type Engine struct {
	src    RecordSource
	parser Parser
	// A nil pattern marks an expression that failed to compile.
	patterns *cache.LRUCache[string, *regexp.Regexp]
	log      *zap.Logger
}

func NewEngine(src RecordSource, cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	size := cfg.PatternCacheSize
	if size <= 0 {
		size = defaultPatternCacheSize
	}
	return &Engine{
		src:      src,
		parser:   Parser{GlobalOperator: cfg.DefaultOperator, CaseSensitive: cfg.CaseSensitive},
		patterns: cache.NewLRUCache[string, *regexp.Regexp](size),
		log:      log.Named("search"),
	}
}

// Parse parses s using the engine's defaults.
func (e *Engine) Parse(s string) Query {
	return e.parser.Parse(s)
}

// Search parses query and returns the matching records of the source in the
// order the source returned them.
func (e *Engine) Search(ctx context.Context, query string, f store.Filter) ([]Result, error) {
	return e.Run(ctx, f, e.Parse(query))
}

// SearchAll parses each query on its own and returns the records matching
// all of them. A view's query and the user's query go through here so that an
// OR in one cannot widen the other.
func (e *Engine) SearchAll(ctx context.Context, f store.Filter, queries ...string) ([]Result, error) {
	parsed := make([]Query, 0, len(queries))
	for _, q := range queries {
		parsed = append(parsed, e.Parse(q))
	}
	return e.Run(ctx, f, parsed...)
}

// ViewQueries returns the queries a search within a view has to satisfy.
// Blank queries are left out, as is a user query that repeats the view's.
func ViewQueries(viewQuery, query string) []string {
	viewQuery, query = strings.TrimSpace(viewQuery), strings.TrimSpace(query)
	var out []string
	if viewQuery != "" {
		out = append(out, viewQuery)
	}
	if query != "" && query != viewQuery {
		out = append(out, query)
	}
	return out
}

// Run evaluates already parsed queries. A record must match every one of
// them; highlights are collected from each in turn.
func (e *Engine) Run(ctx context.Context, f store.Filter, queries ...Query) ([]Result, error) {
	prompts, err := e.src.Prompts(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search: load prompts: %w", err)
	}

	folders, err := e.src.Folders(ctx)
	if err != nil {
		return nil, fmt.Errorf("search: load folders: %w", err)
	}
	folderNames := make(map[int64]string, len(folders))
	for _, folder := range folders {
		folderNames[folder.ID] = folder.Name
	}

	results := make([]Result, 0, len(prompts))
	for _, p := range prompts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tags, err := e.src.PromptTags(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("search: load tags for prompt %d: %w", p.ID, err)
		}

		rec := Record{Prompt: p, Tags: store.TagNames(tags), Folder: folderNames[p.FolderID]}
		if !e.matchesAll(rec, queries) {
			continue
		}

		res := Result{
			ID:         p.ID,
			Title:      p.Title,
			Content:    p.Content,
			Tags:       strings.Join(rec.Tags, ", "),
			FolderName: rec.Folder,
			CreatedAt:  p.CreatedAt,
			UpdatedAt:  p.UpdatedAt,
			Highlights: []string{},
		}
		for _, q := range queries {
			if q.Empty() || len(res.Highlights) >= maxHighlights {
				continue
			}
			res.Highlights = append(res.Highlights, e.Highlights(rec, q)...)
		}
		if len(res.Highlights) > maxHighlights {
			res.Highlights = res.Highlights[:maxHighlights]
		}
		results = append(results, res)
	}

	e.log.Debug("search finished",
		zap.Int("queries", len(queries)),
		zap.Int("candidates", len(prompts)),
		zap.Int("matches", len(results)),
	)
	return results, nil
}

func (e *Engine) matchesAll(rec Record, queries []Query) bool {
	for _, q := range queries {
		if !e.Matches(rec, q) {
			return false
		}
	}
	return true
}

// Matches folds the term results left to right with no precedence:
// "a OR b AND c" is "(a OR b) AND c". NOT means AND NOT.
func (e *Engine) Matches(rec Record, q Query) bool {
	if q.Empty() {
		return true
	}

	global := q.GlobalOperator
	if global == "" {
		global = OpAnd
	}

	result := e.matchesTerm(rec, q.Terms[0], q.CaseSensitive)
	for _, t := range q.Terms[1:] {
		op := global
		if t.Operator != nil {
			op = *t.Operator
		}

		matched := e.matchesTerm(rec, t, q.CaseSensitive)
		switch op {
		case OpOr:
			result = result || matched
		case OpNot:
			result = result && !matched
		default:
			result = result && matched
		}
	}
	return result
}

// matchesTerm reports whether a single term holds for rec. A term against an
// empty field never matches, negated or not.
func (e *Engine) matchesTerm(rec Record, t Term, caseSensitive bool) bool {
	text := rec.Text(t.Field)
	if text == "" {
		return false
	}

	var matched bool
	if t.IsRegex {
		if re := e.compile(t.Value, caseSensitive); re != nil {
			matched = re.MatchString(text)
		} else {
			matched = strings.Contains(fold(text), fold(t.Value))
		}
	} else if caseSensitive {
		matched = strings.Contains(text, t.Value)
	} else {
		matched = strings.Contains(fold(text), fold(t.Value))
	}

	if t.IsNegated {
		return !matched
	}
	return matched
}

// compile returns the compiled pattern, or nil when it is not a valid
// expression.
func (e *Engine) compile(pattern string, caseSensitive bool) *regexp.Regexp {
	key := pattern
	if !caseSensitive {
		key = "(?i)" + pattern
	}
	if re, ok := e.patterns.Get(key); ok {
		return re
	}

	re, err := regexp.Compile(key)
	if err != nil {
		e.log.Debug("invalid regex term, matching literally",
			zap.String("pattern", pattern),
			zap.Error(err),
		)
		re = nil
	}
	e.patterns.Put(key, re)
	return re
}

// fold lower-cases s rune by rune so rune offsets in s and fold(s) agree.
func fold(s string) string {
	return strings.Map(unicode.ToLower, s)
}
