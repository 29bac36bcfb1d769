package announce

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"oengusbot/internal/logx"
	"oengusbot/internal/oengus"
)

type Config struct {
	ChannelID      string
	PageSize       int // history page size, default 100
	SendRatePerSec int // outbound embed pacing, default 1
}

// Announcer runs one full fetch-reconcile-announce cycle per tick.
// It holds no state across ticks; the channel history is the state.
type Announcer struct {
	connector Connector
	source    Source
	cfg       Config
	limiter   *rate.Limiter
	log       logx.Logger
}

func New(connector Connector, source Source, cfg Config, log logx.Logger) *Announcer {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	rps := cfg.SendRatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Announcer{
		connector: connector,
		source:    source,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Limit(rps), rps),
		log:       log,
	}
}

type fetchResult struct {
	subs     []oengus.Submission
	marathon oengus.Marathon
	err      error
}

type scanResult struct {
	ids map[int64]struct{}
	err error
}

// RunTick executes one cycle: login, resolve channel, fetch submissions and
// scan history concurrently, reconcile, send pending embeds in order.
//
// Any returned error aborts the tick only; the scheduler keeps ticking.
// Sends are strictly sequential in reconciliation order so the posting
// order stays deterministic and auditable.
func (a *Announcer) RunTick(ctx context.Context) error {
	start := time.Now()

	sess, err := a.connector.Login(ctx)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer sess.Close()

	ch, err := sess.Channel(a.cfg.ChannelID)
	if err != nil {
		// Configuration problem: this will recur every tick until fixed.
		return fmt.Errorf("resolve channel %q: %w", a.cfg.ChannelID, err)
	}

	// Both sides start before either is awaited; either failure aborts the
	// tick with no partial reconciliation.
	fetchCh := make(chan fetchResult, 1)
	scanCh := make(chan scanResult, 1)
	go func() {
		subs, err := a.source.Submissions(ctx)
		if err != nil {
			fetchCh <- fetchResult{err: err}
			return
		}
		marathon, err := a.source.Marathon(ctx)
		fetchCh <- fetchResult{subs: subs, marathon: marathon, err: err}
	}()
	go func() {
		ids, err := announcedIDs(ctx, ch, sess.BotUserID(), a.cfg.PageSize, a.log)
		scanCh <- scanResult{ids: ids, err: err}
	}()

	fetched := <-fetchCh
	scanned := <-scanCh
	if fetched.err != nil {
		return fmt.Errorf("fetch submissions: %w", fetched.err)
	}
	if scanned.err != nil {
		return fmt.Errorf("scan history: %w", scanned.err)
	}

	pending := Unannounced(fetched.subs, scanned.ids)
	for _, p := range pending {
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
		e := BuildEmbed(p.Submission, p.Category, fetched.marathon.Name, a.source.SubmissionsURL(), a.log)
		if err := ch.SendEmbed(ctx, e); err != nil {
			// No per-item retry; the next tick re-derives what is missing.
			return fmt.Errorf("send category %d: %w", p.Category.ID, err)
		}
		a.log.Info("announced category",
			logx.Int64("category_id", p.Category.ID),
			logx.String("game", p.Submission.Name),
			logx.String("category", p.Category.Name))
	}

	a.log.Info("tick complete",
		logx.Int("announced", len(pending)),
		logx.Int("already_announced", len(scanned.ids)),
		logx.Duration("took", time.Since(start)))
	return nil
}
