package streak

import "sort"

// Badge identifiers. Once present on a record they are never removed.
const (
	BadgeStreak7     = "streak-7"
	BadgeMessages100 = "messages-100"
	BadgeVoice1      = "voice-1"
)

// Facts are the auxiliary values badge rules read alongside the record.
// The Known flags distinguish "lookup failed" from a real zero/false: an
// unknown fact means the depending badge is simply not awarded this cycle.
type Facts struct {
	MessageCount      int
	MessageCountKnown bool
	HasVoiceMessage   bool
	HasVoiceKnown     bool
}

type badgeRule struct {
	ID     string
	Earned func(r *Record, f Facts) bool
}

// badgeRules is the full rule table. Rules are independent of each other;
// adding a badge means adding a row here.
var badgeRules = []badgeRule{
	{
		ID: BadgeStreak7,
		Earned: func(r *Record, _ Facts) bool {
			return r.CurrentStreak >= 7
		},
	},
	{
		ID: BadgeMessages100,
		Earned: func(_ *Record, f Facts) bool {
			return f.MessageCountKnown && f.MessageCount >= 100
		},
	},
	{
		ID: BadgeVoice1,
		Earned: func(_ *Record, f Facts) bool {
			return f.HasVoiceKnown && f.HasVoiceMessage
		},
	},
}

// EvaluateBadges returns the identifiers of badges newly earned by the
// record under the given facts. Already-held badges are never re-returned,
// and the function touches no state.
func EvaluateBadges(r *Record, f Facts) []string {
	held := make(map[string]struct{}, len(r.Badges))
	for _, id := range r.Badges {
		held[id] = struct{}{}
	}

	var earned []string
	for _, rule := range badgeRules {
		if _, ok := held[rule.ID]; ok {
			continue
		}
		if rule.Earned(r, f) {
			earned = append(earned, rule.ID)
		}
	}
	return earned
}

// MergeBadges unions newly earned identifiers into the held set, dropping
// duplicates. The result is sorted for stable responses.
func MergeBadges(held, earned []string) []string {
	seen := make(map[string]struct{}, len(held)+len(earned))
	merged := make([]string, 0, len(held)+len(earned))
	for _, id := range append(append([]string{}, held...), earned...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	sort.Strings(merged)
	return merged
}
