// Package pipeline runs a tag query end to end: discover tags, query
// records, select URLs, start the player.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tessro/play-notion/internal/config"
	"github.com/tessro/play-notion/internal/console"
	perrors "github.com/tessro/play-notion/internal/errors"
	"github.com/tessro/play-notion/internal/notion"
	"github.com/tessro/play-notion/internal/player"
	"github.com/tessro/play-notion/internal/tracks"
)

// Catalog is the remote database the pipeline reads from.
type Catalog interface {
	FetchTagOptions(ctx context.Context) ([]string, error)
	QueryRecords(ctx context.Context, q notion.Query) ([]notion.Record, error)
}

// Request describes one run.
type Request struct {
	Tags   []string
	Limit  int
	Random bool
	Window bool
	// DryRun builds the command without starting the player.
	DryRun bool
}

// Result reports what a run did.
type Result struct {
	AvailableTags []string
	Gathered      int
	URLs          []string
	Command       player.Command
	Played        bool
	ExitCode      int
}

// Pipeline wires the stages together.
type Pipeline struct {
	catalog Catalog
	runner  player.Runner
	log     *console.Logger
	props   notion.Properties
	player  player.Options
	hosts   []string
	rand    *rand.Rand

	// preflight runs before Run touches the network.
	preflight func() error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRunner sets the player runner.
func WithRunner(r player.Runner) Option {
	return func(p *Pipeline) {
		p.runner = r
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *console.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithProperties sets the database column names.
func WithProperties(props notion.Properties) Option {
	return func(p *Pipeline) {
		p.props = props
	}
}

// WithPlayer sets the player options. Window is taken from each Request.
func WithPlayer(opts player.Options) Option {
	return func(p *Pipeline) {
		p.player = opts
	}
}

// WithHosts sets the recognized media hosts.
func WithHosts(hosts []string) Option {
	return func(p *Pipeline) {
		p.hosts = hosts
	}
}

// WithRand sets the source used for shuffling.
func WithRand(r *rand.Rand) Option {
	return func(p *Pipeline) {
		p.rand = r
	}
}

// New creates a pipeline reading from catalog.
func New(catalog Catalog, opts ...Option) *Pipeline {
	p := &Pipeline{
		catalog: catalog,
		runner:  player.NewShellRunner(),
		log:     console.Discard(),
		props:   notion.DefaultProperties(),
		hosts:   tracks.DefaultHosts,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromConfig checks cfg and builds a pipeline backed by the Notion API. It
// fails when credentials are missing; Run additionally fails before any
// network call when the downloader cannot be found.
func FromConfig(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.CheckNotion(); err != nil {
		return nil, err
	}

	props := notion.Properties{
		Tags:    cfg.Notion.TagsProperty,
		URL:     cfg.Notion.URLProperty,
		Created: cfg.Notion.SortProperty,
	}
	client := notion.New(notion.Settings{
		DatabaseURL: cfg.Notion.DatabaseURL(),
		Token:       cfg.Notion.Token,
		APIVersion:  cfg.Notion.APIVersion,
		Properties:  props,
		Timeout:     time.Duration(cfg.Notion.Timeout) * time.Second,
	})

	base := []Option{
		WithProperties(props),
		WithHosts(cfg.Player.Hosts),
		WithPlayer(player.Options{
			Binary:    cfg.Player.Binary,
			YtdlpPath: cfg.Player.YtdlpPath,
			Autofit:   cfg.Player.Autofit,
			ExtraArgs: cfg.Player.ExtraArgs,
		}),
	}
	p := New(client, append(base, opts...)...)
	p.preflight = cfg.CheckPlayer
	client.SetVerbose(p.log.Enabled(console.LevelDebug), p.log.Debugf)
	return p, nil
}

// Tags returns the tag options defined in the database.
func (p *Pipeline) Tags(ctx context.Context) ([]string, error) {
	return p.catalog.FetchTagOptions(ctx)
}

// Query returns the records matching every tag, newest first.
func (p *Pipeline) Query(ctx context.Context, tags []string) ([]notion.Record, error) {
	if len(tags) == 0 {
		return nil, errors.New("at least one tag is required")
	}
	return p.catalog.QueryRecords(ctx, notion.BuildQuery(tags, p.props))
}

// Run executes req. Any database failure stops the run before the player is
// started. A player that exits non-zero is logged as a warning and is not an
// error.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if len(req.Tags) == 0 {
		return nil, errors.New("at least one tag is required")
	}
	if p.preflight != nil {
		if err := p.preflight(); err != nil {
			return nil, err
		}
	}

	available, err := p.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	p.log.Infof("Connected to the Notion database successfully.")
	p.log.Infof("Available tags: %s", strings.Join(available, ", "))
	if unknown := lo.Without(lo.Uniq(req.Tags), available...); len(unknown) > 0 {
		p.log.Warnf("Not defined in the database: %s", strings.Join(unknown, ", "))
	}

	records, err := p.Query(ctx, req.Tags)
	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	sel := tracks.Select(records, tracks.Options{
		Random: req.Random,
		Limit:  req.Limit,
		Hosts:  p.hosts,
		Rand:   p.rand,
	})
	p.log.Infof("Gathered last %d URLs.", sel.Gathered)
	if sel.Shuffled {
		p.log.Infof("Randomized URLs order.")
	}
	p.log.Infof("Selected the first %d URLs.", len(sel.URLs))

	opts := p.player
	opts.Window = req.Window
	cmd := player.Build(sel.URLs, opts)
	p.log.Debugf("Player command: %s", cmd)

	res := &Result{
		AvailableTags: available,
		Gathered:      sel.Gathered,
		URLs:          sel.URLs,
		Command:       cmd,
	}
	if req.DryRun {
		return res, nil
	}

	code, err := p.runner.Run(ctx, cmd)
	if err != nil {
		return res, err
	}
	res.Played = true
	res.ExitCode = code

	if code != 0 {
		p.log.Warnf("%v (exit code %d)", perrors.ErrPlayerExit, code)
	} else {
		p.log.Infof("Player finished successfully.")
	}
	return res, nil
}
