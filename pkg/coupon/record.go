/*
Copyright © 2025 The couponcheck Authors
SPDX-License-Identifier: Apache-2.0
*/

package coupon

import (
	"strconv"
)

// Top-level record field names as they appear on the wire.
const (
	FieldProduct     = "product"
	FieldTrack       = "track"
	FieldDate        = "date"
	FieldStartTime   = "startTime"
	FieldBetDetails  = "betDetails"
	FieldPoolInfo    = "poolInfo"
	FieldMarkings    = "markings"
	FieldRaceResults = "raceResults"
	FieldResult      = "result"
	FieldPrizes      = "prizes"
	FieldStatistics  = "statistics"
)

// RequiredFields lists the top-level fields every record must carry.
var RequiredFields = []string{
	FieldProduct, FieldTrack, FieldDate, FieldStartTime, FieldBetDetails,
	FieldPoolInfo, FieldMarkings, FieldRaceResults, FieldResult, FieldPrizes,
}

// Record is a settled coupon for one pooled product.
type Record struct {
	ID          string           `json:"id,omitempty" yaml:"id,omitempty"`
	Product     Product          `json:"product" yaml:"product"`
	Track       string           `json:"track" yaml:"track"`
	Date        string           `json:"date" yaml:"date"`
	StartTime   string           `json:"startTime" yaml:"startTime"`
	BetDetails  *BetDetails      `json:"betDetails,omitempty" yaml:"betDetails,omitempty"`
	PoolInfo    *PoolInfo        `json:"poolInfo,omitempty" yaml:"poolInfo,omitempty"`
	Markings    map[string][]int `json:"markings,omitempty" yaml:"markings,omitempty"`
	RaceResults []RaceResult     `json:"raceResults,omitempty" yaml:"raceResults,omitempty"`
	Result      *Outcome         `json:"result,omitempty" yaml:"result,omitempty"`
	Prizes      map[string]Prize `json:"prizes,omitempty" yaml:"prizes,omitempty"`
	Statistics  *Statistics      `json:"statistics,omitempty" yaml:"statistics,omitempty"`

	// fields holds the top-level keys seen by the loader; nil for records
	// built in code.
	fields map[string]bool
}

// BetDetails describes the stake placed on the coupon.
type BetDetails struct {
	Stake      float64 `json:"stake" yaml:"stake"`
	Rows       int     `json:"rows" yaml:"rows"`
	CostPerRow float64 `json:"costPerRow,omitempty" yaml:"costPerRow,omitempty"`
	SystemPlay bool    `json:"systemPlay" yaml:"systemPlay"`
}

// PoolInfo describes the product-wide pool.
type PoolInfo struct {
	TotalPool float64 `json:"totalPool" yaml:"totalPool"`
	Turnover  float64 `json:"turnover,omitempty" yaml:"turnover,omitempty"`
}

// Outcome is the recorded result of the coupon.
type Outcome struct {
	CorrectRaces int     `json:"correctRaces" yaml:"correctRaces"`
	TotalRaces   int     `json:"totalRaces" yaml:"totalRaces"`
	Payout       float64 `json:"payout" yaml:"payout"`
}

// Prize is one prize tier entry.
type Prize struct {
	Winners int     `json:"winners" yaml:"winners"`
	Amount  float64 `json:"amount" yaml:"amount"`
}

// Total returns the value distributed to the tier.
func (p Prize) Total() float64 {
	return float64(p.Winners) * p.Amount
}

// Statistics is the producer's summary of the coupon.
type Statistics struct {
	AverageWinnerOdds  float64 `json:"averageWinnerOdds" yaml:"averageWinnerOdds"`
	FavoriteWins       int     `json:"favoriteWins" yaml:"favoriteWins"`
	CoveragePercentage float64 `json:"coveragePercentage" yaml:"coveragePercentage"`
	AverageBetSize     float64 `json:"averageBetSize" yaml:"averageBetSize"`
	TotalHorsesMarked  int     `json:"totalHorsesMarked,omitempty" yaml:"totalHorsesMarked,omitempty"`
}

// RaceResult is the result of one race on the coupon.
type RaceResult struct {
	Race                int                  `json:"race" yaml:"race"`
	TotalStarters       int                  `json:"totalStarters" yaml:"totalStarters"`
	PoolSize            float64              `json:"poolSize" yaml:"poolSize"`
	Results             []HorseEntry         `json:"results" yaml:"results"`
	Winner              int                  `json:"winner" yaml:"winner"`
	WinnerName          string               `json:"winnerName" yaml:"winnerName"`
	WinnerOdds          float64              `json:"winnerOdds" yaml:"winnerOdds"`
	Hit                 bool                 `json:"hit" yaml:"hit"`
	BettingDistribution *BettingDistribution `json:"bettingDistribution,omitempty" yaml:"bettingDistribution,omitempty"`
}

// HorseEntry is one starter's result and betting data.
type HorseEntry struct {
	Horse         int     `json:"horse" yaml:"horse"`
	Name          string  `json:"name" yaml:"name"`
	Position      int     `json:"position" yaml:"position"`
	Odds          float64 `json:"odds" yaml:"odds"`
	PercentageBet float64 `json:"percentageBet" yaml:"percentageBet"`
	AmountBet     float64 `json:"amountBet" yaml:"amountBet"`
	Marked        bool    `json:"marked" yaml:"marked"`
}

// BettingDistribution names the three most backed horses of a race.
type BettingDistribution struct {
	Favorite     Choice `json:"favorite" yaml:"favorite"`
	SecondChoice Choice `json:"secondChoice" yaml:"secondChoice"`
	ThirdChoice  Choice `json:"thirdChoice" yaml:"thirdChoice"`
}

// Choice is a horse and its share of the race pool.
type Choice struct {
	Horse      int     `json:"horse" yaml:"horse"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Has reports whether the top-level field was present in the source document.
// For records built in code it reports whether the field holds a value.
func (r *Record) Has(field string) bool {
	if r.fields != nil {
		return r.fields[field]
	}
	switch field {
	case FieldProduct:
		return r.Product != ""
	case FieldTrack:
		return r.Track != ""
	case FieldDate:
		return r.Date != ""
	case FieldStartTime:
		return r.StartTime != ""
	case FieldBetDetails:
		return r.BetDetails != nil
	case FieldPoolInfo:
		return r.PoolInfo != nil
	case FieldMarkings:
		return r.Markings != nil
	case FieldRaceResults:
		return r.RaceResults != nil
	case FieldResult:
		return r.Result != nil
	case FieldPrizes:
		return r.Prizes != nil
	case FieldStatistics:
		return r.Statistics != nil
	default:
		return false
	}
}

// SetFields records which top-level keys the source document contained.
func (r *Record) SetFields(keys []string) {
	r.fields = make(map[string]bool, len(keys))
	for _, k := range keys {
		r.fields[k] = true
	}
}

// TotalPool returns the product pool, or 0 when poolInfo is absent.
func (r *Record) TotalPool() float64 {
	if r.PoolInfo == nil {
		return 0
	}
	return r.PoolInfo.TotalPool
}

// Rows returns the number of rows played, defaulting to 1.
func (r *Record) Rows() int {
	if r.BetDetails == nil || r.BetDetails.Rows <= 0 {
		return 1
	}
	return r.BetDetails.Rows
}

// Outcome returns the recorded result, or a zero Outcome when absent.
func (r *Record) Outcome() Outcome {
	if r.Result == nil {
		return Outcome{}
	}
	return *r.Result
}

// RaceCount returns the number of races expected for the record's product,
// falling back to the number of race results for unknown products.
func (r *Record) RaceCount() int {
	if n := r.Product.Races(); n > 0 {
		return n
	}
	return len(r.RaceResults)
}

// MarkedHorses returns the horses marked for the race at the 1-based index.
func (r *Record) MarkedHorses(index int) []int {
	return r.Markings[strconv.Itoa(index)]
}

// Horse returns the entry for the given horse number.
func (rr *RaceResult) Horse(number int) (HorseEntry, bool) {
	for _, h := range rr.Results {
		if h.Horse == number {
			return h, true
		}
	}
	return HorseEntry{}, false
}

// PositionOne returns the first entry finishing in position 1.
func (rr *RaceResult) PositionOne() (HorseEntry, bool) {
	for _, h := range rr.Results {
		if h.Position == 1 {
			return h, true
		}
	}
	return HorseEntry{}, false
}
