package mocks

//go:generate mockgen -destination=./mock_trading.go -package=mocks github.com/rxtech-lab/argo-macdrsi/internal/trading ExecutionAdapter
//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-macdrsi/internal/backtest/engine/engine_v1/datasource DataSource
