package domain

// DashboardStats is the fan-in of the dashboard's concurrent count and
// recent-item queries.
type DashboardStats struct {
	Products   int64 `json:"products"`
	Categories int64 `json:"categories"`
	Users      int64 `json:"users"`
	Orders     int64 `json:"orders"`
	Reviews    int64 `json:"reviews"`
	Returns    int64 `json:"returns"`
	Pincodes   int64 `json:"pincodes"`

	RecentOrders   []Order   `json:"recent_orders"`
	RecentReviews  []Review  `json:"recent_reviews"`
	RecentReturns  []Return  `json:"recent_returns"`
	RecentPincodes []Pincode `json:"recent_pincodes"`
}

// OpsMetrics is a point-in-time summary of operational counters for the
// dashboard metrics endpoint.
type OpsMetrics struct {
	TotalRequests     int64   `json:"total_requests"`
	ErrorRate         float64 `json:"error_rate"`
	OrderUpdates      int64   `json:"order_updates"`
	ReturnUpdates     int64   `json:"return_updates"`
	PartialSyncs      int64   `json:"partial_syncs"`
	AdminCacheHitRate float64 `json:"admin_cache_hit_rate"`
	Period            string  `json:"period"`
}

// ServiceHealth describes one dependency in the health report.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latency_ms"`
	LastChecked string `json:"last_checked"`
}

// HealthStatus is the aggregate /healthz payload.
type HealthStatus struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}
