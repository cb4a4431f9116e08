package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"stockchart/internal/feature/stockdata/domain/entity"
)

// minObservations は直線を当てはめるのに必要な最小件数です。
const minObservations = 2

// PredictNextClose は直近1ヶ月の終値に最小二乗法で直線を当てはめ、
// 翌営業日の終値を小数点以下2桁で推定します。
func (u *StockDataUsecase) PredictNextClose(ctx context.Context, ticker string) (entity.Prediction, error) {
	ps, err := u.history(ctx, ticker, entity.Period1Mo)
	if err != nil {
		return entity.Prediction{}, err
	}

	next, err := NextInTrend(closes(ps))
	if err != nil {
		return entity.Prediction{}, err
	}

	return entity.Prediction{
		Ticker:         strings.TrimSpace(ticker),
		PredictedClose: next,
		Observations:   len(ps),
	}, nil
}

// NextInTrend は ys[i] = a + b*i を当てはめ、i = len(ys) の値を2桁に丸めて返します。
func NextInTrend(ys []float64) (float64, error) {
	if len(ys) < minObservations {
		return 0, fmt.Errorf("%w: have %d closes, need %d", ErrNotEnoughData, len(ys), minObservations)
	}

	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	next := alpha + beta*float64(len(ys))

	return decimal.NewFromFloat(next).Round(2).InexactFloat64(), nil
}

func closes(ps []entity.PricePoint) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Close
	}
	return out
}
