package dto

type StatsResponse struct {
	TotalBookings    int `json:"totalBookings"`
	PendingBookings  int `json:"pendingBookings"`
	TotalInquiries   int `json:"totalInquiries"`
	PendingInquiries int `json:"pendingInquiries"`
}
