package wage

import (
	"time"
)

// segment is a half-open [start, end) slice of a shift that lies
// entirely within one civil day of the reference timezone.
type segment struct {
	start time.Time
	end   time.Time
}

// splitIntoCivilDays splits [arrival, departure) at civil-midnight
// boundaries in the given location. Midnights are computed with
// calendar arithmetic in the location, so daylight-saving offset
// changes are handled by the timezone database rather than by hand.
//
// A shift inside one civil day yields exactly one segment; a shift
// crossing midnights yields one segment per day touched.
func splitIntoCivilDays(arrival, departure time.Time, loc *time.Location) []segment {
	var segments []segment

	cursor := arrival
	for cursor.Before(departure) {
		local := cursor.In(loc)
		nextMidnight := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)

		end := nextMidnight
		if departure.Before(nextMidnight) {
			end = departure
		}
		segments = append(segments, segment{start: cursor, end: end})
		cursor = end
	}

	return segments
}
