package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// DefaultRefreshInterval is the dashboard's polling period.
const DefaultRefreshInterval = 30 * time.Second

// Poller drives both renderers on a fixed interval. Ticks run in singleton
// mode and a tick only finishes once every sub-task has rendered or failed,
// so results from an older tick can never land after a newer one started.
type Poller struct {
	sched    *gocron.Scheduler
	cards    *CardRenderer
	charts   *ChartRenderer
	canvases map[string]Canvas // keyed by location
	interval time.Duration
	log      *zap.Logger
}

func NewPoller(cards *CardRenderer, charts *ChartRenderer, canvases map[string]Canvas, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Poller{
		sched:    s,
		cards:    cards,
		charts:   charts,
		canvases: canvases,
		interval: interval,
		log:      log,
	}
}

// Start runs one refresh immediately, then repeats on the interval.
func (p *Poller) Start() error {
	if _, err := p.sched.Every(p.interval).StartImmediately().Do(p.tick); err != nil {
		return err
	}
	p.sched.StartAsync()
	return nil
}

// Stop cancels future ticks. In-flight work finishes on its own.
func (p *Poller) Stop() {
	p.sched.Stop()
}

// tick fans out the latest fetch and one history fetch per location, then
// waits for all of them. The shared context bounds the whole tick.
func (p *Poller) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.interval)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.cards.Refresh(ctx)
	}()

	for _, loc := range Locations {
		canvas, ok := p.canvases[loc]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(loc string, canvas Canvas) {
			defer wg.Done()
			p.charts.Refresh(ctx, loc, canvas)
		}(loc, canvas)
	}

	wg.Wait()
}
