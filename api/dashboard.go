package api

// DashboardStats holds the scalar counts shown on the dashboard landing page
type DashboardStats struct {
	TotalRisks         int `json:"total_risks"`
	HighRisks          int `json:"high_risks"`
	PendingAssessments int `json:"pending_assessments"`
	MyRisks            int `json:"my_risks"`
	MyControls         int `json:"my_controls"`
}
