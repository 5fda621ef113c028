package approval

import "strings"

// Badge is the display category of a status string.
type Badge struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Label    string `json:"label"`
}

var unknownBadge = Badge{Category: "unknown", Color: "gray", Icon: "help-circle", Label: "Tidak Diketahui"}

var (
	pendingBadge   = Badge{Category: "pending", Color: "yellow", Icon: "clock", Label: "Diajukan"}
	revisionBadge  = Badge{Category: "revision", Color: "orange", Icon: "edit", Label: "Direvisi"}
	approvedBadge  = Badge{Category: "approved", Color: "green", Icon: "check-circle", Label: "Disetujui"}
	rejectedBadge  = Badge{Category: "rejected", Color: "red", Icon: "x-circle", Label: "Ditolak"}
	completedBadge = Badge{Category: "completed", Color: "blue", Icon: "check-square", Label: "Selesai"}
	cancelledBadge = Badge{Category: "cancelled", Color: "slate", Icon: "slash", Label: "Dibatalkan"}
)

// badgeTokens maps lower-case status tokens, including the English aliases
// returned by older endpoints, to their badge.
var badgeTokens = map[string]Badge{
	"diajukan":   pendingBadge,
	"menunggu":   pendingBadge,
	"pending":    pendingBadge,
	"submitted":  pendingBadge,
	"direvisi":   revisionBadge,
	"revisi":     revisionBadge,
	"revision":   revisionBadge,
	"disetujui":  approvedBadge,
	"approved":   approvedBadge,
	"ditolak":    rejectedBadge,
	"rejected":   rejectedBadge,
	"selesai":    completedBadge,
	"completed":  completedBadge,
	"dibatalkan": cancelledBadge,
	"batal":      cancelledBadge,
	"cancelled":  cancelledBadge,
}

// Classify maps any status string to a badge. Unknown values fall back to
// the gray "unknown" badge.
func Classify(status string) Badge {
	if b, ok := badgeTokens[strings.ToLower(strings.TrimSpace(status))]; ok {
		return b
	}
	return unknownBadge
}

func (s Status) Badge() Badge {
	return Classify(string(s))
}
