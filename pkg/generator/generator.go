/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package generator

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/ptr"

	"github.com/rikstoto-innsikt/couponcheck/pkg/coupon"
)

const (
	MinStarters = 4
	MaxStarters = 20

	// payback is the share of a race pool returned to winning bettors; odds
	// are derived from bet shares with it.
	payback = 0.85
	// racePoolShare is the part of the total pool spread over the races.
	racePoolShare = 0.6
	// takeRate is the part of the total pool distributed as prizes.
	takeRate   = 0.65
	costPerRow = 1.0
	maxMarked  = 3
)

var (
	tracks     = []string{"Bjerke", "Jarlsberg", "Forus", "Momarken", "Klosterskogen", "Bergen", "Leangen", "Biri", "Sørlandet", "Harstad"}
	startTimes = []string{"14:45", "16:20", "18:45", "19:30"}
	namesFirst = []string{"Lykke", "Stjerne", "Storm", "Nordlys", "Fjell", "Tindra", "Balder", "Jerv", "Frøya", "Varg", "Solan", "Odin"}
	namesLast  = []string{"Blesen", "Faks", "Gutten", "Jenta", "Trollet", "Prinsen", "Tøsa", "Rappen", "Svarten", "Vinden"}
	baseDate   = time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC)
)

// tierShares are the share of prize money per tier, highest tier first,
// keyed by the number of tiers a product pays.
var tierShares = map[int][]float64{
	1: {100},
	2: {60, 40},
	3: {50, 30, 20},
}

// Generator builds synthetic coupon records.
type Generator struct {
	seed     uint64
	product  coupon.Product
	starters int
	correct  int
	rows     int
}

// Option is a functional option for configuring Generator instances.
type Option func(*Generator)

// WithSeed returns an Option that fixes the random seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithProduct returns an Option that sets the product. Defaults to V64.
func WithProduct(p coupon.Product) Option {
	return func(g *Generator) {
		g.product = p
	}
}

// WithStarters returns an Option that fixes the number of starters in
// every race. By default each race draws its own field size.
func WithStarters(n int) Option {
	return func(g *Generator) {
		g.starters = n
	}
}

// WithCorrectRaces returns an Option that sets how many races the markings
// hit. A negative value draws it at random, which is the default.
func WithCorrectRaces(n int) Option {
	return func(g *Generator) {
		g.correct = n
	}
}

// WithRows returns an Option that sets the rows played. By default rows
// equal the number of combinations the markings cover.
func WithRows(n int) Option {
	return func(g *Generator) {
		g.rows = n
	}
}

// New creates a new Generator with the provided options.
func New(opts ...Option) *Generator {
	g := &Generator{
		seed:    uint64(time.Now().UnixNano()),
		product: coupon.ProductV64,
		correct: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Seed returns the seed used by Generate.
func (g *Generator) Seed() uint64 {
	return g.seed
}

func (g *Generator) check() error {
	if !g.product.IsValid() {
		return fmt.Errorf("unsupported product %q", g.product)
	}
	if g.starters != 0 && (g.starters < MinStarters || g.starters > MaxStarters) {
		return fmt.Errorf("starters must be between %d and %d, got %d", MinStarters, MaxStarters, g.starters)
	}
	if races := g.product.Races(); g.correct > races {
		return fmt.Errorf("correct races must be at most %d for %s, got %d", races, g.product, g.correct)
	}
	if g.rows < 0 {
		return fmt.Errorf("rows must not be negative, got %d", g.rows)
	}
	return nil
}

// Generate builds a record. The same options and seed always produce the
// same record.
func (g *Generator) Generate() (*coupon.Record, error) {
	if err := g.check(); err != nil {
		return nil, err
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], g.seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to generate coupon id: %w", err)
	}

	races := g.product.Races()
	correct := g.correct
	if correct < 0 {
		correct = rng.IntN(races + 1)
	}
	hits := make(map[int]bool, correct)
	for _, i := range rng.Perm(races)[:correct] {
		hits[i+1] = true
	}

	totalPool := float64(1000+rng.IntN(9000)) * 1000
	racePool := math.Round(totalPool * racePoolShare / float64(races))

	rec := &coupon.Record{
		ID:        id.String(),
		Product:   g.product,
		Track:     tracks[rng.IntN(len(tracks))],
		Date:      baseDate.AddDate(0, 0, 7*rng.IntN(52)).Format(time.DateOnly),
		StartTime: startTimes[rng.IntN(len(startTimes))],
		PoolInfo:  ptr.To(coupon.PoolInfo{TotalPool: totalPool}),
		Markings:  make(map[string][]int, races),
	}

	combinations := 1
	marked := 0
	for race := 1; race <= races; race++ {
		starters := g.starters
		if starters == 0 {
			starters = 8 + rng.IntN(7)
		}
		rr, marks := buildRace(rng, race, starters, racePool, hits[race])
		rec.RaceResults = append(rec.RaceResults, rr)
		rec.Markings[strconv.Itoa(race)] = marks
		combinations *= len(marks)
		marked += len(marks)
	}

	rows := g.rows
	if rows == 0 {
		rows = combinations
	}
	rec.BetDetails = ptr.To(coupon.BetDetails{
		Stake:      float64(rows) * costPerRow,
		Rows:       rows,
		CostPerRow: costPerRow,
		SystemPlay: rows > 1,
	})

	rec.Prizes = buildPrizes(rng, g.product, totalPool*takeRate)
	rec.Result = ptr.To(coupon.Outcome{
		CorrectRaces: correct,
		TotalRaces:   races,
		Payout:       payout(rec.Prizes, g.product, correct, rows),
	})
	rec.Statistics = buildStatistics(rng, rec.RaceResults, marked)

	return rec, nil
}

// buildRace draws bet shares, odds, a finishing order and the markings for
// one race. The markings contain the winner exactly when hit is set.
func buildRace(rng *rand.Rand, race, starters int, pool float64, hit bool) (coupon.RaceResult, []int) {
	shares := betShares(rng, starters)
	order := rng.Perm(starters)

	rr := coupon.RaceResult{
		Race:          race,
		TotalStarters: starters,
		PoolSize:      pool,
		Hit:           hit,
	}
	for i := 0; i < starters; i++ {
		rr.Results = append(rr.Results, coupon.HorseEntry{
			Horse:         i + 1,
			Name:          horseName(rng),
			Position:      order[i] + 1,
			Odds:          round(payback*100/shares[i], 2),
			PercentageBet: shares[i],
			AmountBet:     math.Round(pool * shares[i] / 100),
		})
	}

	for _, h := range rr.Results {
		if h.Position == 1 {
			rr.Winner = h.Horse
			rr.WinnerName = h.Name
			rr.WinnerOdds = h.Odds
		}
	}

	marks := markings(rng, starters, rr.Winner, hit)
	for i := range rr.Results {
		rr.Results[i].Marked = slices.Contains(marks, rr.Results[i].Horse)
	}

	rr.BettingDistribution = distribution(rr.Results)
	return rr, marks
}

// betShares returns per-horse bet percentages summing to about 100 with a
// strict favorite.
func betShares(rng *rand.Rand, n int) []float64 {
	weights := make([]float64, n)
	var total float64
	for i := range weights {
		x := rng.Float64()
		weights[i] = 1 + 7*x*x
		total += weights[i]
	}

	shares := make([]float64, n)
	for i, w := range weights {
		shares[i] = math.Max(0.1, round(w/total*100, 1))
	}

	idx := rankByShare(shares)
	if shares[idx[0]] == shares[idx[1]] {
		shares[idx[0]] = round(shares[idx[0]]+0.1, 1)
	}
	return shares
}

// rankByShare returns horse indexes ordered by descending share, ties by
// horse number.
func rankByShare(shares []float64) []int {
	idx := make([]int, len(shares))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return shares[idx[a]] > shares[idx[b]]
	})
	return idx
}

func markings(rng *rand.Rand, starters, winner int, hit bool) []int {
	count := 1 + rng.IntN(maxMarked)

	var pool []int
	for h := 1; h <= starters; h++ {
		if h != winner {
			pool = append(pool, h)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	var marks []int
	if hit {
		marks = append(marks, winner)
		count--
	}
	marks = append(marks, pool[:count]...)
	sort.Ints(marks)
	return marks
}

func distribution(results []coupon.HorseEntry) *coupon.BettingDistribution {
	shares := make([]float64, len(results))
	for i, h := range results {
		shares[i] = h.PercentageBet
	}
	idx := rankByShare(shares)
	choice := func(i int) coupon.Choice {
		return coupon.Choice{Horse: results[idx[i]].Horse, Percentage: results[idx[i]].PercentageBet}
	}
	return &coupon.BettingDistribution{
		Favorite:     choice(0),
		SecondChoice: choice(1),
		ThirdChoice:  choice(2),
	}
}

func buildPrizes(rng *rand.Rand, product coupon.Product, prizePool float64) map[string]coupon.Prize {
	tiers := product.Tiers()
	shares := tierShares[len(tiers)]

	prizes := make(map[string]coupon.Prize, len(tiers))
	winners := 1 + rng.IntN(20)
	for i, tier := range tiers {
		prizes[tier.Key] = coupon.Prize{
			Winners: winners,
			Amount:  math.Round(prizePool * shares[i] / 100 / float64(winners)),
		}
		winners *= 5 + rng.IntN(10)
	}
	return prizes
}

func payout(prizes map[string]coupon.Prize, product coupon.Product, correct, rows int) float64 {
	if correct < product.MinPayingCorrect() {
		return 0
	}
	tier, ok := product.TierFor(correct)
	if !ok {
		return 0
	}
	return prizes[tier.Key].Amount * float64(rows)
}

func buildStatistics(rng *rand.Rand, results []coupon.RaceResult, marked int) *coupon.Statistics {
	var oddsSum float64
	favorites := 0
	for _, rr := range results {
		oddsSum += rr.WinnerOdds
		if rr.Winner <= 3 {
			favorites++
		}
	}
	return &coupon.Statistics{
		AverageWinnerOdds:  round(oddsSum/float64(len(results)), 2),
		FavoriteWins:       favorites,
		CoveragePercentage: round(0.5+4.5*rng.Float64(), 2),
		AverageBetSize:     round(50+950*rng.Float64(), 0),
		TotalHorsesMarked:  marked,
	}
}

func horseName(rng *rand.Rand) string {
	return namesFirst[rng.IntN(len(namesFirst))] + " " + namesLast[rng.IntN(len(namesLast))]
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
