package dashboardapimodels

type PipelineStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type TestStats struct {
	TestID     string  `json:"test_id"`
	Title      string  `json:"title"`
	Invited    int64   `json:"invited"`
	Completed  int64   `json:"completed"`
	Passed     int64   `json:"passed"`
	AvgPercent float64 `json:"avg_percent"`
}

type DashboardView struct {
	Pipeline PipelineStats `json:"pipeline"`
	Tests    []TestStats   `json:"tests"`
}
