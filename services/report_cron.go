package services

import (
	"log"

	"gorm.io/gorm"

	"github.com/robfig/cron/v3"
)

// StartReportCron warms the dashboard caches once at startup and then
// nightly at 02:00, so the first morning dashboard load never pays the
// aggregation cost.
func StartReportCron(db *gorm.DB) {
	svc := NewReportService(db)

	warm := func() {
		for _, window := range ReportWindows {
			if _, err := svc.GetOverview(window); err != nil {
				log.Printf("[REPORT CRON] overview %s failed: %v", window, err)
			}
		}
		log.Printf("[REPORT CRON] overview caches warmed")
	}

	go warm()

	c := cron.New()
	_, _ = c.AddFunc("0 2 * * *", warm)
	c.Start()
	log.Printf("[REPORT CRON] Scheduler started. Overview caches refresh nightly at 02:00")
}
