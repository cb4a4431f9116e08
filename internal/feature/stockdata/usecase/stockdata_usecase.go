// Package usecase は株価時系列データ取得と終値予測のビジネスロジックを実装します。
package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"stockchart/internal/feature/stockdata/domain/entity"
	"stockchart/internal/shared/ratelimiter"
)

// MarketRepository は外部の株価データ提供元を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// GetDailyHistory は period 分の日足データを返します。銘柄が存在しない場合は ErrNoData を返します。
	GetDailyHistory(ctx context.Context, symbol string, period entity.Period) ([]entity.PricePoint, error)
}

// defaultFetchTimeout は共有された外部API呼び出しの上限です。
// スロットリングの待機（最大1ウィンドウ）を含みます。
const defaultFetchTimeout = 90 * time.Second

// StockDataUsecase は株価データ取得のユースケースを定義します。
type StockDataUsecase struct {
	market      MarketRepository
	rateLimiter ratelimiter.RateLimiterInterface
	// 同一銘柄・同一期間の同時リクエストを1回の外部API呼び出しにまとめる
	group        singleflight.Group
	fetchTimeout time.Duration
}

// NewStockDataUsecase は新しい StockDataUsecase を生成します。rateLimiter が nil の場合は制限しません。
func NewStockDataUsecase(market MarketRepository, rateLimiter ratelimiter.RateLimiterInterface) *StockDataUsecase {
	if rateLimiter == nil {
		rateLimiter = ratelimiter.Unlimited{}
	}
	return &StockDataUsecase{market: market, rateLimiter: rateLimiter, fetchTimeout: defaultFetchTimeout}
}

// GetHistory は過去1年分の日足データを日付の昇順で返します。
func (u *StockDataUsecase) GetHistory(ctx context.Context, ticker string) ([]entity.PricePoint, error) {
	return u.history(ctx, ticker, entity.Period1Y)
}

func (u *StockDataUsecase) history(ctx context.Context, ticker string, period entity.Period) ([]entity.PricePoint, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return nil, ErrEmptyTicker
	}

	// 共有の取得は最初の呼び出し元のキャンセルに影響されず、各呼び出し元は自分の ctx だけを待つ
	fetchCtx := context.WithoutCancel(ctx)
	ch := u.group.DoChan(ticker+"|"+string(period), func() (any, error) {
		fctx, cancel := context.WithTimeout(fetchCtx, u.fetchTimeout)
		defer cancel()
		return u.fetch(fctx, ticker, period)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug().Str("ticker", ticker).Str("period", string(period)).Msg("shared in-flight upstream fetch")
	}

	// 呼び出し元ごとに独立したスライスを返す
	ps := v.([]entity.PricePoint)
	out := make([]entity.PricePoint, len(ps))
	copy(out, ps)
	return out, nil
}

func (u *StockDataUsecase) fetch(ctx context.Context, ticker string, period entity.Period) ([]entity.PricePoint, error) {
	if err := u.rateLimiter.WaitIfNeeded(ctx); err != nil {
		return nil, err
	}
	ps, err := u.market.GetDailyHistory(ctx, ticker, period)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, ErrNoData
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Time.Before(ps[j].Time) })
	return ps, nil
}
