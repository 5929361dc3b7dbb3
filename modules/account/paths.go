package account

// Destinations the flows navigate to after a successful submit.
const (
	PathDashboard = "/dashboard"
	PathRoot      = "/"
)
