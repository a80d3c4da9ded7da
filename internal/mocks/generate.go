// Package mocks provides gomock implementations of the ports in internal/core.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockArtifactStore(ctrl)
//	store.EXPECT().Store(gomock.Any(), gomock.Any()).Return(ref, nil)
package mocks

// BillReportSource, BillReportSession: Open, Fetch, Close
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=bill_report_source_mock.go github.com/hap-eb/ebill-reports/internal/core BillReportSource,BillReportSession

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=report_renderer_mock.go github.com/hap-eb/ebill-reports/internal/core ReportRenderer

// ArtifactStore: Store, List, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=artifact_store_mock.go github.com/hap-eb/ebill-reports/internal/core ArtifactStore

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=report_notifier_mock.go github.com/hap-eb/ebill-reports/internal/core ReportNotifier

// RunHistoryRepository: Record, Recent
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=run_history_repository_mock.go github.com/hap-eb/ebill-reports/internal/core RunHistoryRepository

// BillRepository: List, GetByID, Create, Update, Delete, MonthlyTrend
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=bill_repository_mock.go github.com/hap-eb/ebill-reports/internal/core BillRepository

// TrendCache: Generation, Bump, Get, Set
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=trend_cache_mock.go github.com/hap-eb/ebill-reports/internal/core TrendCache
