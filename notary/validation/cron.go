package validation

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/trufnetwork/notary/notary/internal/constants"
)

// scheduleParser matches the 5-field expressions the watcher registers (no seconds)
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// CronScheduleRule validates the watch schedule. An empty schedule means the default.
type CronScheduleRule struct{}

func (r *CronScheduleRule) Name() string {
	return "watch_schedule"
}

func (r *CronScheduleRule) Validate(fields Fields) error {
	if fields.WatchSchedule == "" {
		return nil
	}
	return ValidateCronSchedule(fields.WatchSchedule)
}

// ValidateCronSchedule validates a cron schedule expression using the robfig/cron parser
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("cron schedule cannot be empty")
	}
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("%s '%s': %w", constants.ErrMsgInvalidSchedule, schedule, err)
	}
	return nil
}

// ParseCronSchedule parses a validated schedule
func ParseCronSchedule(schedule string) (cron.Schedule, error) {
	if err := ValidateCronSchedule(schedule); err != nil {
		return nil, err
	}
	return scheduleParser.Parse(schedule)
}
