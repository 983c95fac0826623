// Package distribution characterizes the shape of the result distribution:
// central moments, quartiles, a normality test, a fixed histogram and
// fence-rule outliers.
package distribution

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/robdata/tradestats/aggregate"
	"github.com/robdata/tradestats/trade"
)

// MinSamples is the smallest sample the analyzer accepts. Below it the
// report carries only the insufficient-data flag and the sample size.
const MinSamples = 4

// HistogramBins is the fixed bin count of the result histogram.
const HistogramBins = 10

// Bin is one histogram bucket over [Low, High); the last bin includes High.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Outliers lists the values outside the 1.5×IQR fences.
type Outliers struct {
	LowFence  float64   `json:"low_fence"`
	HighFence float64   `json:"high_fence"`
	Low       []float64 `json:"low"`
	High      []float64 `json:"high"`
	Count     int       `json:"count"`
}

// Report is the distribution analysis result.
type Report struct {
	InsufficientData bool `json:"insufficient_data"`
	SampleSize       int  `json:"sample_size"`
	SkippedRecords   int  `json:"skipped_records"`

	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`

	// Quartiles come from empirical rank selection over the sorted sample
	// (no interpolation); Median equals Q2 by construction.
	Q1  float64 `json:"q1"`
	Q2  float64 `json:"q2"`
	Q3  float64 `json:"q3"`
	IQR float64 `json:"iqr"`

	Skewness       float64 `json:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis"`

	// Jarque–Bera statistic and its chi-squared(2) p-value. Small p means
	// the sample is unlikely to come from a normal distribution.
	JarqueBera float64 `json:"jarque_bera"`
	NormalityP float64 `json:"normality_p_value"`

	Histogram []Bin    `json:"histogram"`
	Outliers  Outliers `json:"outliers"`
}

// Analyze runs the distribution analysis over a record collection.
func Analyze(recs []trade.Record) Report {
	results, skipped := aggregate.Results(recs)
	rep := FromResults(results)
	rep.SkippedRecords = skipped
	return rep
}

// FromResults runs the analysis over raw result values.
func FromResults(results []float64) Report {
	rep := Report{SampleSize: len(results)}
	if len(results) < MinSamples {
		rep.InsufficientData = true
		return rep
	}

	sorted := make([]float64, len(results))
	copy(sorted, results)
	sort.Float64s(sorted)

	rep.Min = sorted[0]
	rep.Max = sorted[len(sorted)-1]
	rep.Mean, rep.StdDev = stat.MeanStdDev(sorted, nil)

	rep.Q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	rep.Q2 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	rep.Q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	rep.Median = rep.Q2
	rep.IQR = rep.Q3 - rep.Q1

	rep.Skewness = stat.Skew(sorted, nil)
	rep.ExcessKurtosis = stat.ExKurtosis(sorted, nil)

	n := float64(len(sorted))
	rep.JarqueBera = n / 6 * (rep.Skewness*rep.Skewness + rep.ExcessKurtosis*rep.ExcessKurtosis/4)
	if math.IsNaN(rep.JarqueBera) || math.IsInf(rep.JarqueBera, 0) {
		rep.JarqueBera = 0
		rep.NormalityP = 1
	} else {
		rep.NormalityP = distuv.ChiSquared{K: 2}.Survival(rep.JarqueBera)
	}

	rep.Histogram = histogram(sorted)
	rep.Outliers = outliers(sorted, rep.Q1, rep.Q3)
	return rep
}

// histogram spreads the sorted sample over HistogramBins equal-width bins.
// A degenerate range (all values equal) puts everything in the first bin.
func histogram(sorted []float64) []Bin {
	lo, hi := sorted[0], sorted[len(sorted)-1]
	width := (hi - lo) / HistogramBins

	bins := make([]Bin, HistogramBins)
	for i := range bins {
		bins[i].Low = lo + float64(i)*width
		bins[i].High = lo + float64(i+1)*width
	}
	bins[HistogramBins-1].High = hi

	for _, v := range sorted {
		idx := 0
		if width > 0 {
			idx = int((v - lo) / width)
			if idx >= HistogramBins {
				idx = HistogramBins - 1
			}
		}
		bins[idx].Count++
	}
	return bins
}

func outliers(sorted []float64, q1, q3 float64) Outliers {
	iqr := q3 - q1
	out := Outliers{
		LowFence:  q1 - 1.5*iqr,
		HighFence: q3 + 1.5*iqr,
	}
	for _, v := range sorted {
		switch {
		case v < out.LowFence:
			out.Low = append(out.Low, v)
		case v > out.HighFence:
			out.High = append(out.High, v)
		}
	}
	out.Count = len(out.Low) + len(out.High)
	return out
}
