package validate

import "redress/pkg/types"

// Display lookups used by clients rendering grievance lists. Unknown
// values fall back to gray / the raw status / a generic icon.

var statusColors = map[types.GrievanceStatus]string{
	types.GrievanceStatusSubmitted:   "blue",
	types.GrievanceStatusUnderReview: "yellow",
	types.GrievanceStatusInProgress:  "orange",
	types.GrievanceStatusResolved:    "green",
	types.GrievanceStatusClosed:      "gray",
}

var statusLabels = map[types.GrievanceStatus]string{
	types.GrievanceStatusSubmitted:   "Submitted",
	types.GrievanceStatusUnderReview: "Under Review",
	types.GrievanceStatusInProgress:  "In Progress",
	types.GrievanceStatusResolved:    "Resolved",
	types.GrievanceStatusClosed:      "Closed",
}

var priorityColors = map[types.GrievancePriority]string{
	types.GrievancePriorityLow:    "green",
	types.GrievancePriorityMedium: "yellow",
	types.GrievancePriorityHigh:   "orange",
	types.GrievancePriorityUrgent: "red",
}

var categoryIcons = map[string]string{
	"academic":       "book",
	"hostel":         "home",
	"infrastructure": "wrench",
	"harassment":     "shield",
	"financial":      "credit-card",
	"other":          "file-text",
}

func StatusColor(status types.GrievanceStatus) string {
	if color, ok := statusColors[status]; ok {
		return color
	}
	return "gray"
}

func StatusLabel(status types.GrievanceStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

func PriorityColor(priority types.GrievancePriority) string {
	if color, ok := priorityColors[priority]; ok {
		return color
	}
	return "gray"
}

func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "file-text"
}
