package usecase

import "errors"

var (
	// ErrEmptyTicker は銘柄コードが空の場合のエラーです。
	ErrEmptyTicker = errors.New("ticker is required")
	// ErrNoData は指定期間にデータが存在しない場合のエラーです（無効な銘柄・上場廃止など）。
	ErrNoData = errors.New("no data found")
	// ErrNotEnoughData は予測に必要な件数の終値が揃わない場合のエラーです。
	ErrNotEnoughData = errors.New("not enough data to fit a trend")
)
