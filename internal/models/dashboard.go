package models

type DashboardAppointment struct {
	ReservationID  uint              `json:"reservation_id"`
	ClientName     string            `json:"client_name"`
	ProfessionalID uint              `json:"professional_id"`
	Start          Timestamp `json:"inicio"`
	End            Timestamp `json:"fin"`
	Status         ReservationStatus `json:"status"`
	Services       []string          `json:"services"`
}

type WeeklyStats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Cancelled int     `json:"cancelled"`
	Pending   int     `json:"pending"`
	Revenue   float64 `json:"revenue"`
}

type ActivityItem struct {
	Kind          string    `json:"kind"`
	Message       string    `json:"message"`
	ReservationID *uint     `json:"reservation_id"`
	At            Timestamp `json:"at"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type Dashboard struct {
	TodayAppointments []DashboardAppointment `json:"today_appointments"`
	NextAppointment   *DashboardAppointment  `json:"next_appointment"`
	WeeklyStats       WeeklyStats            `json:"weekly_stats"`
	RecentActivity    []ActivityItem         `json:"recent_activity"`
	WeeklyActivity    []DailyCount           `json:"weekly_activity"`
}
