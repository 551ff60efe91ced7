package sweep

import (
	"fmt"
	"time"
)

const (
	// StaleAfterDays is the age, in whole calendar days, past which a
	// timestamp counts as old. Comparisons against it are strict.
	StaleAfterDays = 30

	// HeavyUsageThreshold is the usage proxy above which a file is always
	// at least PartiallyAvailable.
	HeavyUsageThreshold = 100
)

// Classification is the staleness state of a single file.
// Values are ordered by severity: Available < PartiallyAvailable < Unavailable.
type Classification int

const (
	Available Classification = iota
	PartiallyAvailable
	Unavailable
)

// String returns the badge tag handed to the host.
func (c Classification) String() string {
	switch c {
	case Available:
		return "Available"
	case PartiallyAvailable:
		return "PartiallyAvailable"
	case Unavailable:
		return "Unavailable"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// ParseClassification is the inverse of Classification.String.
func ParseClassification(tag string) (Classification, error) {
	switch tag {
	case "Available":
		return Available, nil
	case "PartiallyAvailable":
		return PartiallyAvailable, nil
	case "Unavailable":
		return Unavailable, nil
	default:
		return 0, fmt.Errorf("unknown classification: %q", tag)
	}
}

// Classify maps a file's timestamps and usage proxy to a Classification.
// The first matching rule wins:
//
//	created > 30 days AND modified > 30 days           -> Unavailable
//	(created > 30 AND modified <= 30) OR usage > 100    -> PartiallyAvailable
//	otherwise                                           -> Available
func Classify(now, createdAt, modifiedAt time.Time, usageProxy int64) Classification {
	sinceCreation := WholeDaysBetween(createdAt, now)
	sinceModification := WholeDaysBetween(modifiedAt, now)

	switch {
	case sinceCreation > StaleAfterDays && sinceModification > StaleAfterDays:
		return Unavailable
	case (sinceCreation > StaleAfterDays && sinceModification <= StaleAfterDays) || usageProxy > HeavyUsageThreshold:
		return PartiallyAvailable
	default:
		return Available
	}
}

// WholeDaysBetween counts calendar day boundaries between from and to,
// evaluated in to's location. 23:59 on one day and 00:01 on the next are one
// day apart; the result is negative when from is after to.
func WholeDaysBetween(from, to time.Time) int {
	fy, fm, fd := from.In(to.Location()).Date()
	ty, tm, td := to.Date()

	// Midnight UTC on both dates keeps DST shifts out of the subtraction.
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start) / (24 * time.Hour))
}
