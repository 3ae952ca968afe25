package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DamageReportsFiled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_damage_reports_filed_total",
			Help: "Total number of damage reports filed by severity",
		},
		[]string{"severity", "damage_type"},
	)

	ReportTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_damage_report_transitions_total",
			Help: "Total number of damage report status transitions",
		},
		[]string{"to_status"},
	)

	OpenReports = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "estate_open_damage_reports",
			Help: "Current number of open damage reports by status",
		},
		[]string{"status"},
	)

	AssignmentAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_room_assignments_total",
			Help: "Total number of room assignment attempts by outcome",
		},
		[]string{"outcome"},
	)

	RoomsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "estate_rooms_by_status",
			Help: "Facility room count by display status",
		},
		[]string{"status"},
	)
)
