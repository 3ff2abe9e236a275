package weather

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"
)

// Units is the unit system the provider was asked to respond in.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

const (
	defaultHourlyLimit = 24
	defaultDailyLimit  = 7
	dtTxtLayout        = "2006-01-02 15:04:05"
	dateLayout         = "2006-01-02"
)

// NormalizerConfig controls unit handling and batch sizes.
type NormalizerConfig struct {
	Units       Units
	HourlyLimit int
	DailyLimit  int
}

// Normalizer maps provider payloads into canonical observations.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	cfg    NormalizerConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewNormalizer builds a Normalizer, filling zero config values with defaults.
func NewNormalizer(cfg NormalizerConfig, logger *slog.Logger) *Normalizer {
	if cfg.Units == "" {
		cfg.Units = UnitsImperial
	}
	if cfg.HourlyLimit <= 0 {
		cfg.HourlyLimit = defaultHourlyLimit
	}
	if cfg.DailyLimit <= 0 {
		cfg.DailyLimit = defaultDailyLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		cfg:    cfg,
		logger: logger.With("component", "weather.normalizer"),
		now:    time.Now,
	}
}

// NormalizeCurrent converts a current-conditions payload.
func (n *Normalizer) NormalizeCurrent(p *CurrentPayload) (Observation, error) {
	if p == nil || p.Main == nil {
		return Observation{}, fmt.Errorf("%w: current conditions missing main block", ErrMalformedPayload)
	}

	ts := n.now().UTC()
	if p.Dt > 0 {
		ts = time.Unix(p.Dt, 0).In(time.FixedZone("provider", p.Timezone))
	}

	obs := Observation{
		Timestamp:   ts,
		Temperature: n.temperature(p.Main.Temp),
		FeelsLike:   n.temperature(p.Main.FeelsLike),
		Humidity:    clampPercent(p.Main.Humidity),
		Pressure:    HpaToInHg(p.Main.Pressure),
	}

	var defaulted []string
	if p.Wind != nil {
		obs.WindSpeed = n.windSpeed(p.Wind.Speed)
		if p.Wind.Deg != nil {
			obs.WindDirection = CompassPoint(*p.Wind.Deg)
		}
	} else {
		defaulted = append(defaulted, "wind")
	}
	if p.Visibility != nil {
		obs.Visibility = MetersToMiles(*p.Visibility)
	} else {
		defaulted = append(defaulted, "visibility")
	}
	obs.Condition, obs.Description = conditionOf(p.Weather)
	if len(p.Weather) == 0 {
		defaulted = append(defaulted, "weather")
	}

	if len(defaulted) > 0 {
		n.logger.Debug("current conditions defaulted", "timestamp", ts, "fields", defaulted)
	}
	return obs, nil
}

// NormalizeHourly returns up to HourlyLimit observations in chronological order.
func (n *Normalizer) NormalizeHourly(p *ForecastPayload) ([]Observation, error) {
	buckets, err := n.validBuckets(p)
	if err != nil {
		return nil, err
	}
	if len(buckets) > n.cfg.HourlyLimit {
		buckets = buckets[:n.cfg.HourlyLimit]
	}

	out := make([]Observation, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, n.bucketObservation(b))
	}
	return out, nil
}

// NormalizeDaily groups forecast buckets by provider-local calendar date and
// returns one observation per day, at most DailyLimit days, chronologically.
func (n *Normalizer) NormalizeDaily(p *ForecastPayload) ([]Observation, error) {
	buckets, err := n.validBuckets(p)
	if err != nil {
		return nil, err
	}

	// Buckets are already chronological, so insertion order of dates is too.
	var dates []string
	byDate := make(map[string][]datedBucket)
	for _, b := range buckets {
		if _, ok := byDate[b.date]; !ok {
			dates = append(dates, b.date)
		}
		byDate[b.date] = append(byDate[b.date], b)
	}
	sort.Strings(dates)
	if len(dates) > n.cfg.DailyLimit {
		dates = dates[:n.cfg.DailyLimit]
	}

	zone := time.FixedZone("provider", p.City.Timezone)
	out := make([]Observation, 0, len(dates))
	for _, date := range dates {
		out = append(out, n.aggregateDay(date, zone, byDate[date]))
	}
	return out, nil
}

type datedBucket struct {
	ForecastBucket
	ts   time.Time
	date string
}

// validBuckets rejects a payload without a bucket list and drops buckets that
// cannot be placed in time or carry no main block. The result is chronological.
func (n *Normalizer) validBuckets(p *ForecastPayload) ([]datedBucket, error) {
	if p == nil || p.List == nil {
		return nil, fmt.Errorf("%w: forecast missing bucket list", ErrMalformedPayload)
	}

	zone := time.FixedZone("provider", p.City.Timezone)
	out := make([]datedBucket, 0, len(p.List))
	for i, b := range p.List {
		ts, date, ok := bucketTime(b, zone)
		if !ok {
			n.logger.Debug("forecast bucket skipped", "index", i, "reason", "no timestamp")
			continue
		}
		if b.Main == nil {
			n.logger.Debug("forecast bucket skipped", "index", i, "timestamp", ts, "reason", "no main block")
			continue
		}
		out = append(out, datedBucket{ForecastBucket: b, ts: ts, date: date})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ts.Before(out[j].ts)
	})
	return out, nil
}

func bucketTime(b ForecastBucket, zone *time.Location) (time.Time, string, bool) {
	var (
		ts   time.Time
		date string
	)
	if b.Dt > 0 {
		ts = time.Unix(b.Dt, 0).UTC()
	}
	// dt_txt is only trusted when it parses; otherwise dt decides the day.
	if b.DtTxt != "" {
		if parsed, err := time.ParseInLocation(dtTxtLayout, b.DtTxt, zone); err == nil {
			date = parsed.Format(dateLayout)
			if ts.IsZero() {
				ts = parsed
			}
		}
	}
	if ts.IsZero() {
		return time.Time{}, "", false
	}
	ts = ts.In(zone)
	if date == "" {
		date = ts.Format(dateLayout)
	}
	return ts, date, true
}

func (n *Normalizer) bucketObservation(b datedBucket) Observation {
	obs := Observation{
		Timestamp:   b.ts,
		Temperature: n.temperature(b.Main.Temp),
		FeelsLike:   n.temperature(b.Main.FeelsLike),
		Humidity:    clampPercent(b.Main.Humidity),
		Pressure:    HpaToInHg(b.Main.Pressure),
	}

	var defaulted []string
	if b.Wind != nil {
		obs.WindSpeed = n.windSpeed(b.Wind.Speed)
		if b.Wind.Deg != nil {
			obs.WindDirection = CompassPoint(*b.Wind.Deg)
		}
	} else {
		defaulted = append(defaulted, "wind")
	}
	if b.Visibility != nil {
		obs.Visibility = MetersToMiles(*b.Visibility)
	} else {
		defaulted = append(defaulted, "visibility")
	}
	if b.Pop != nil {
		obs.PrecipitationChance = clampFloat(*b.Pop*100, 0, 100)
	} else {
		defaulted = append(defaulted, "pop")
	}
	obs.Condition, obs.Description = conditionOf(b.Weather)
	if len(b.Weather) == 0 {
		defaulted = append(defaulted, "weather")
	}

	if len(defaulted) > 0 {
		n.logger.Debug("forecast bucket defaulted", "timestamp", b.ts, "fields", defaulted)
	}
	return obs
}

func conditionOf(items []ConditionBlock) (Condition, string) {
	if len(items) == 0 {
		return MapCondition(0), ""
	}
	return MapCondition(items[0].ID), items[0].Description
}

func (n *Normalizer) temperature(v float64) float64 {
	if n.cfg.Units == UnitsMetric {
		return CelsiusToFahrenheit(v)
	}
	return v
}

func (n *Normalizer) windSpeed(v float64) float64 {
	if n.cfg.Units == UnitsMetric {
		v = MSToMPH(v)
	}
	return math.Max(0, v)
}

func clampPercent(v float64) int {
	return int(math.Round(clampFloat(v, 0, 100)))
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
