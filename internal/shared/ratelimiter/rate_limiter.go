// Package ratelimiter throttles outbound calls to the market data provider.
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RateLimiterInterface は、外部API呼び出しの頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiter は interval ごとに limit 回までの呼び出しを許可します。
// 上限に達した呼び出しは次のウィンドウの枠を予約し、その開始まで待機します。
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	count    int           // lastReset から始まるウィンドウの予約数
	// lastReset は予約を受け付けている最新ウィンドウの開始時刻で、未来を指すことがある
	lastReset time.Time
	now       func() time.Time
}

var _ RateLimiterInterface = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。limit が 0 以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// WaitIfNeeded はレートリミットの上限に達しているかを確認し、必要であれば待機します。
// 待機はロックの外で行うため、待機中の呼び出しはそれぞれ自分の ctx で中断できます。
// 中断された場合は予約した枠を返却し、ctx.Err() を返します。
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	if rl.limit <= 0 {
		return nil
	}

	window, wait := rl.reserve()
	if wait <= 0 {
		return nil
	}

	log.Info().Int("limit", rl.limit).Dur("sleep", wait).Msg("upstream rate limit hit, waiting")
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		rl.release(window)
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve は1枠を予約し、そのウィンドウの開始時刻と待機時間を返します。
func (rl *RateLimiter) reserve() (time.Time, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	// 満杯なら次のウィンドウへ
	if rl.count >= rl.limit {
		rl.lastReset = rl.lastReset.Add(rl.interval)
		rl.count = 0
	}
	rl.count++
	return rl.lastReset, rl.lastReset.Sub(now)
}

// release は window がまだ最新ウィンドウであれば予約を1つ戻します。
func (rl *RateLimiter) release(window time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.lastReset.Equal(window) && rl.count > 0 {
		rl.count--
	}
}

// Unlimited never waits.
type Unlimited struct{}

func (Unlimited) WaitIfNeeded(context.Context) error { return nil }
