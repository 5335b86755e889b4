// internal/matching/textclass/tables.go
package textclass

import "marketplace-workers/internal/models"

// Keyword tables are package data, read-only after init. Exported accessors
// hand out copies.

// emergencyKeywords are matched as lower-case substrings, in order.
var emergencyKeywords = []string{
	// English
	"emergency",
	"urgent",
	"asap",
	"immediately",
	"right now",
	"flooding",
	"flooded",
	"flood",
	"burst",
	"gas smell",
	"smell of gas",
	"sparks",
	"smoke",
	"fire",
	"locked out",
	// Hebrew
	"חירום",
	"דחוף",
	"בדחיפות",
	"מיידי",
	"עכשיו",
	"הצפה",
	"מוצף",
	"פיצוץ",
	"ריח של גז",
	"ניצוצות",
	"ננעלתי",
}

type severityTier struct {
	level    models.Severity
	keywords []string
}

// severityTiers are evaluated highest first; the first tier with a hit wins.
var severityTiers = []severityTier{
	{
		level: models.SeverityHigh,
		keywords: []string{
			"flood", "burst", "gas", "sparks", "smoke", "fire", "no power",
			"no water", "electrocut", "ceiling collapse",
			"הצפה", "פיצוץ", "גז", "ניצוצות", "עשן", "שריפה", "אין חשמל", "אין מים",
		},
	},
	{
		level: models.SeverityMedium,
		keywords: []string{
			"leak", "broken", "not working", "clogged", "blocked", "no hot water",
			"tripped", "overflow",
			"נזילה", "דליפה", "שבור", "לא עובד", "סתום", "סתימה",
		},
	},
	{
		level: models.SeverityLow,
		keywords: []string{
			"drip", "noise", "squeak", "loose", "cosmetic", "slow", "maintenance",
			"טפטוף", "רעש", "רופף", "תחזוקה",
		},
	},
}

// issueSynonyms maps an issue tag to literal phrases that mean the same thing.
// The tag itself is not repeated in its list.
var issueSynonyms = map[string][]string{
	"leak":         {"leaking", "drip", "dripping", "burst pipe", "water damage", "נזילה", "דליפה", "טפטוף"},
	"clog":         {"clogged", "blocked", "drain", "backed up", "סתימה", "סתום"},
	"water_heater": {"boiler", "hot water", "heater", "דוד", "בוילר"},
	"no_power":     {"power outage", "blackout", "breaker", "tripped", "הפסקת חשמל", "אין חשמל"},
	"wiring":       {"outlet", "socket", "switch", "sparks", "שקע", "חיווט"},
	"ac_repair":    {"air conditioner", "air conditioning", "not cooling", "a/c", "מזגן", "קירור"},
	"heating":      {"radiator", "furnace", "no heat", "חימום", "תנור"},
	"lockout":      {"locked out", "lost key", "lost keys", "broken key", "ננעלתי", "מפתח"},
	"lock_change":  {"new lock", "replace lock", "cylinder", "צילינדר", "החלפת מנעול"},
	"appliance_repair": {
		"refrigerator", "fridge", "washing machine", "dishwasher", "oven", "מקרר", "מכונת כביסה",
	},
}

// stopWords are dropped by Tokenize.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "this": {}, "that": {},
	"there": {}, "have": {}, "has": {}, "was": {}, "are": {}, "not": {}, "but": {},
	"all": {}, "our": {}, "you": {}, "can": {}, "please": {}, "need": {}, "some": {},
	"של": {}, "את": {}, "עם": {}, "יש": {}, "לא": {}, "גם": {},
}
