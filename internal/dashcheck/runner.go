package dashcheck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/co2dash/pkg/logger"
)

// ErrViolations is returned when any walked country broke an invariant.
var ErrViolations = errors.New("dashboard invariants violated")

// Run walks the dashboard's countries concurrently and verifies the
// linked-view invariants on every callback response.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("dashcheck")

	log.Info(ctx, "starting dashboard check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("countries", config.Countries),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout))

	c := newClient(config.BaseURL, config.Timeout)
	if err := c.health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	countries, err := c.countries(ctx)
	if err != nil {
		return stats, fmt.Errorf("country listing failed: %w", err)
	}
	if config.Countries > 0 && config.Countries < len(countries) {
		countries = countries[:config.Countries]
	}
	if len(countries) == 0 {
		return stats, errors.New("dashboard has no countries")
	}

	var (
		clicks int64
		mu     sync.Mutex
		found  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Workers, 1))
	for i, country := range countries {
		next := countries[(i+1)%len(countries)]
		g.Go(func() error {
			n, v, err := walk(gctx, c, country, next)
			atomic.AddInt64(&clicks, int64(n))
			if err != nil {
				return fmt.Errorf("%s: %w", country, err)
			}
			if config.Verbose {
				log.Info(gctx, "country walked", logger.String("country", country), logger.Int("violations", len(v)))
			}
			if len(v) > 0 {
				mu.Lock()
				found = append(found, v...)
				mu.Unlock()
			}
			return nil
		})
	}
	err = g.Wait()

	stats.CountriesWalked = len(countries)
	stats.Clicks = int(atomic.LoadInt64(&clicks))
	stats.Violations = len(found)
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	if err != nil {
		return stats, err
	}
	for _, v := range found {
		log.Warn(ctx, "violation", logger.String("detail", v))
	}
	displayFinalStats(ctx, stats)
	if len(found) > 0 {
		return stats, fmt.Errorf("%w: %d", ErrViolations, len(found))
	}
	return stats, nil
}

// walk clicks country on the map, then its latest year on the trend, then
// next on the map, verifying each response. It returns the clicks made.
func walk(ctx context.Context, c *client, country, next string) (int, []string, error) {
	v := &violations{country: country}

	session, err := c.newSession(ctx)
	if err != nil {
		return 0, nil, err
	}

	res, err := c.clickMap(ctx, session, country)
	if err != nil {
		return 0, nil, err
	}
	verifyMapClick(v, res, country)

	years := trendYears(res.Figures[figureTrend])
	if len(years) == 0 {
		v.addf("trend figure has no years")
		return 1, v.list, nil
	}
	year := years[len(years)-1]

	if res, err = c.clickTrend(ctx, session, year); err != nil {
		return 1, nil, err
	}
	verifyTrendClick(v, res, country, year)

	if res, err = c.clickMap(ctx, session, next); err != nil {
		return 2, nil, err
	}
	verifyStaleYear(v, res, next, year)

	return 3, v.list, nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var clicksPerSecond float64
	if stats.Duration > 0 {
		clicksPerSecond = float64(stats.Clicks) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("countriesWalked", stats.CountriesWalked),
		logger.Int("clicks", stats.Clicks),
		logger.Int("violations", stats.Violations),
		logger.Duration("duration", stats.Duration),
		logger.Float64("clicksPerSecond", clicksPerSecond))
}
