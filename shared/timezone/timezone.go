package timezone

import (
	"time"

	"coating/config"
	"coating/shared/constant"

	"github.com/rs/zerolog/log"
)

const defaultZone = "Asia/Ho_Chi_Minh"

var appLocation = time.UTC

func init() {
	Load(config.Get().App.Timezone)
}

// Load switches the application timezone, keeping the previous one when name is unknown.
func Load(name string) {
	if name == "" {
		name = defaultZone
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("failed to load timezone, keeping " + appLocation.String())

		return
	}

	appLocation = loc
}

func Now() time.Time {
	return time.Now().In(appLocation)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation) //nolint:wrapcheck
}

// ParseDate reads a calendar date (YYYY-MM-DD) as midnight in the application timezone.
func ParseDate(value string) (time.Time, error) {
	return Parse(constant.CalendarDate, value)
}

func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
