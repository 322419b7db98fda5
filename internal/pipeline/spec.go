package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/tidytable/internal/observability"
	"github.com/couchcryptid/tidytable/internal/rules"
	"github.com/couchcryptid/tidytable/internal/sink"
	"github.com/couchcryptid/tidytable/internal/source"
)

// Spec is the declarative form of a pipeline: one source, an ordered rule
// list, and an optional sink, loaded from a YAML document.
type Spec struct {
	Name   string     `yaml:"name" validate:"required"`
	Source SourceSpec `yaml:"source"`
	Rules  []RuleSpec `yaml:"rules" validate:"dive"`
	Sink   *SinkSpec  `yaml:"sink"`
}

// SourceSpec selects and parameterizes one input adapter.
type SourceSpec struct {
	Kind string `yaml:"kind" validate:"required,oneof=literal csv html"`

	// literal
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`

	// csv
	Path      string `yaml:"path"`
	Delimiter string `yaml:"delimiter" validate:"omitempty,len=1"`

	// html
	URL        string `yaml:"url" validate:"omitempty,url"`
	TableIndex int    `yaml:"table_index" validate:"gte=0"`
	Marker     string `yaml:"marker"`
}

// SinkSpec parameterizes the output file.
type SinkSpec struct {
	Kind      string `yaml:"kind" validate:"required,oneof=csv"`
	Path      string `yaml:"path" validate:"required"`
	Delimiter string `yaml:"delimiter" validate:"omitempty,len=1"`
}

// RuleSpec holds exactly one rule kind's parameters. The field that is set
// determines the kind.
type RuleSpec struct {
	Rename        *RenameSpec    `yaml:"rename"`
	DropRows      *DropRowsSpec  `yaml:"drop_rows"`
	FillDown      *FillDownSpec  `yaml:"fill_down"`
	SplitColumn   *SplitSpec     `yaml:"split_column"`
	PivotLong     *PivotSpec     `yaml:"pivot_long"`
	CoerceType    *CoerceSpec    `yaml:"coerce_type"`
	NormalizeNull *NormalizeSpec `yaml:"normalize_null"`
	DeriveColumn  *DeriveSpec    `yaml:"derive_column"`
	Sort          *SortSpec      `yaml:"sort"`
}

type RenameSpec struct {
	Mappings []MappingSpec `yaml:"mappings" validate:"min=1,dive"`
}

// MappingSpec addresses a column by name or by index (exactly one).
type MappingSpec struct {
	From  string `yaml:"from"`
	Index *int   `yaml:"index"`
	To    string `yaml:"to" validate:"required"`
}

type DropRowsSpec struct {
	Indexes         []int      `yaml:"indexes"`
	Blank           bool       `yaml:"blank"`
	DuplicateHeader bool       `yaml:"duplicate_header"`
	Match           *MatchSpec `yaml:"match"`
}

type MatchSpec struct {
	Column string `yaml:"column" validate:"required"`
	Equals string `yaml:"equals"`
}

type FillDownSpec struct {
	Columns []string `yaml:"columns" validate:"min=1"`
}

type SplitSpec struct {
	Column  string   `yaml:"column" validate:"required"`
	Pattern string   `yaml:"pattern" validate:"required"`
	Into    []string `yaml:"into" validate:"min=1"`
	Keep    bool     `yaml:"keep"`
}

type PivotSpec struct {
	Columns     []string `yaml:"columns" validate:"min=1"`
	NamesTo     string   `yaml:"names_to" validate:"required"`
	ValuesTo    string   `yaml:"values_to" validate:"required"`
	DropMissing bool     `yaml:"drop_missing"`
	CleanKeys   bool     `yaml:"clean_keys"`
}

type CoerceSpec struct {
	Columns   []string           `yaml:"columns" validate:"min=1"`
	Sentinels map[string]float64 `yaml:"sentinels"`
}

type NormalizeSpec struct {
	Columns []string `yaml:"columns"`
	Tokens  []string `yaml:"tokens"`
}

// DeriveSpec names a registered deriver function and its column arguments.
type DeriveSpec struct {
	Column string            `yaml:"column" validate:"required"`
	Fn     string            `yaml:"fn" validate:"required,oneof=season_year compose_date percent"`
	Args   map[string]string `yaml:"args" validate:"required"`
}

type SortSpec struct {
	Keys []SortKeySpec `yaml:"keys" validate:"min=1,dive"`
}

type SortKeySpec struct {
	Column     string `yaml:"column" validate:"required"`
	Descending bool   `yaml:"descending"`
}

// LoadSpec reads and validates a pipeline spec file. Unknown YAML fields are
// rejected so typos fail loudly instead of silently dropping a rule option.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec decodes and validates a pipeline spec document.
func ParseSpec(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}
	if err := validator.New().Struct(&spec); err != nil {
		return nil, fmt.Errorf("validate spec: %w", err)
	}
	if err := spec.check(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// check enforces cross-field constraints validator tags cannot express.
func (s *Spec) check() error {
	switch s.Source.Kind {
	case "literal":
		if len(s.Source.Columns) == 0 {
			return fmt.Errorf("spec %s: literal source requires columns", s.Name)
		}
	case "csv":
		if s.Source.Path == "" {
			return fmt.Errorf("spec %s: csv source requires path", s.Name)
		}
	case "html":
		if s.Source.URL == "" {
			return fmt.Errorf("spec %s: html source requires url", s.Name)
		}
	}

	for i, r := range s.Rules {
		if n := r.kindCount(); n != 1 {
			return fmt.Errorf("spec %s: rule %d declares %d kinds, want exactly 1", s.Name, i+1, n)
		}
		if r.Rename != nil {
			for j, m := range r.Rename.Mappings {
				if (m.From == "") == (m.Index == nil) {
					return fmt.Errorf("spec %s: rule %d mapping %d: set exactly one of from/index", s.Name, i+1, j+1)
				}
			}
		}
	}
	return nil
}

func (r *RuleSpec) kindCount() int {
	n := 0
	for _, set := range []bool{
		r.Rename != nil,
		r.DropRows != nil,
		r.FillDown != nil,
		r.SplitColumn != nil,
		r.PivotLong != nil,
		r.CoerceType != nil,
		r.NormalizeNull != nil,
		r.DeriveColumn != nil,
		r.Sort != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// BuildOptions carries the ambient pieces a spec needs to become a runnable
// pipeline.
type BuildOptions struct {
	Logger       *slog.Logger
	Metrics      *observability.Metrics
	FetchTimeout time.Duration
	MissingToken string
}

// Build turns a validated spec into a runnable Pipeline.
func (s *Spec) Build(opts BuildOptions) (*Pipeline, error) {
	src, err := s.buildSource(opts)
	if err != nil {
		return nil, err
	}

	ruleList := make([]rules.Rule, 0, len(s.Rules))
	for i, r := range s.Rules {
		rule, err := r.build(opts)
		if err != nil {
			return nil, fmt.Errorf("spec %s: rule %d: %w", s.Name, i+1, err)
		}
		ruleList = append(ruleList, rule)
	}

	var snk Sink
	if s.Sink != nil {
		snk = &sink.CSV{
			Path:         s.Sink.Path,
			Comma:        delimiterRune(s.Sink.Delimiter),
			MissingToken: opts.MissingToken,
		}
	}

	return New(s.Name, src, ruleList, snk, opts.Logger, opts.Metrics), nil
}

func (s *Spec) buildSource(opts BuildOptions) (Source, error) {
	switch s.Source.Kind {
	case "literal":
		return &source.Literal{Columns: s.Source.Columns, Rows: s.Source.Rows}, nil
	case "csv":
		return &source.CSVFile{Path: s.Source.Path, Comma: delimiterRune(s.Source.Delimiter)}, nil
	case "html":
		timeout := opts.FetchTimeout
		if timeout <= 0 {
			timeout = source.DefaultFetchTimeout
		}
		return &source.HTMLTable{
			URL:        s.Source.URL,
			TableIndex: s.Source.TableIndex,
			Marker:     s.Source.Marker,
			Client:     &http.Client{Timeout: timeout},
		}, nil
	default:
		return nil, fmt.Errorf("spec %s: unknown source kind %q", s.Name, s.Source.Kind)
	}
}

func (r *RuleSpec) build(opts BuildOptions) (rules.Rule, error) {
	switch {
	case r.Rename != nil:
		mappings := make([]rules.Mapping, len(r.Rename.Mappings))
		for i, m := range r.Rename.Mappings {
			if m.Index != nil {
				mappings[i] = rules.ByIndex(*m.Index, m.To)
			} else {
				mappings[i] = rules.ByName(m.From, m.To)
			}
		}
		return rules.NewRename(mappings...), nil

	case r.DropRows != nil:
		d := &rules.DropRows{
			Indexes:         r.DropRows.Indexes,
			Blank:           r.DropRows.Blank,
			DuplicateHeader: r.DropRows.DuplicateHeader,
		}
		if r.DropRows.Match != nil {
			d.Match = &rules.ColumnMatch{Column: r.DropRows.Match.Column, Equals: r.DropRows.Match.Equals}
		}
		return d, nil

	case r.FillDown != nil:
		return &rules.FillDown{Columns: r.FillDown.Columns}, nil

	case r.SplitColumn != nil:
		return rules.NewSplitColumn(r.SplitColumn.Column, r.SplitColumn.Pattern, r.SplitColumn.Into, r.SplitColumn.Keep)

	case r.PivotLong != nil:
		return &rules.PivotLong{
			Columns:     r.PivotLong.Columns,
			NamesTo:     r.PivotLong.NamesTo,
			ValuesTo:    r.PivotLong.ValuesTo,
			DropMissing: r.PivotLong.DropMissing,
			CleanKeys:   r.PivotLong.CleanKeys,
		}, nil

	case r.CoerceType != nil:
		return &rules.CoerceType{
			Columns:   r.CoerceType.Columns,
			Sentinels: r.CoerceType.Sentinels,
			OnFailure: ConversionReporter(opts.Logger, opts.Metrics),
		}, nil

	case r.NormalizeNull != nil:
		return &rules.NormalizeNull{Columns: r.NormalizeNull.Columns, Tokens: r.NormalizeNull.Tokens}, nil

	case r.DeriveColumn != nil:
		return buildDerive(r.DeriveColumn)

	case r.Sort != nil:
		keys := make([]rules.SortKey, len(r.Sort.Keys))
		for i, k := range r.Sort.Keys {
			keys[i] = rules.SortKey{Column: k.Column, Descending: k.Descending}
		}
		return &rules.Sort{Keys: keys}, nil
	}
	return nil, fmt.Errorf("no rule kind set")
}

func buildDerive(d *DeriveSpec) (rules.Rule, error) {
	arg := func(name string) (string, error) {
		v, ok := d.Args[name]
		if !ok || v == "" {
			return "", fmt.Errorf("derive_column %s: fn %s requires arg %q", d.Column, d.Fn, name)
		}
		return v, nil
	}

	switch d.Fn {
	case "season_year":
		month, err := arg("month")
		if err != nil {
			return nil, err
		}
		season, err := arg("season")
		if err != nil {
			return nil, err
		}
		return rules.SeasonYear(d.Column, month, season), nil

	case "compose_date":
		year, err := arg("year")
		if err != nil {
			return nil, err
		}
		month, err := arg("month")
		if err != nil {
			return nil, err
		}
		day, err := arg("day")
		if err != nil {
			return nil, err
		}
		return rules.ComposeDate(d.Column, year, month, day), nil

	case "percent":
		num, err := arg("numerator")
		if err != nil {
			return nil, err
		}
		den, err := arg("denominator")
		if err != nil {
			return nil, err
		}
		return rules.Percent(d.Column, num, den), nil
	}
	return nil, fmt.Errorf("derive_column %s: unknown fn %q", d.Column, d.Fn)
}

func delimiterRune(s string) rune {
	if s == "" {
		return 0
	}
	return []rune(s)[0]
}
