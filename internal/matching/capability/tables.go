// internal/matching/capability/tables.go
package capability

// categoryTags is the detailed category -> capability tag table used by full
// matching.
var categoryTags = map[string][]string{
	"plumbing":   {"plumbing", "plumber", "leak", "clog", "pipes", "drain", "water_heater"},
	"electrical": {"electrical", "electrician", "wiring", "no_power", "lighting", "outlet"},
	"hvac":       {"hvac", "ac_repair", "heating", "ventilation"},
	"locksmith":  {"locksmith", "lockout", "lock_change", "security"},
	"handyman":   {"handyman", "assembly", "repair", "painting", "mounting"},
	"appliance":  {"appliance", "appliance_repair", "refrigerator", "washer"},
	"cleaning":   {"cleaning", "deep_clean", "move_out"},
}

// coarseCategoryTags is the category-level table used when bidding. It has no
// issue granularity.
var coarseCategoryTags = map[string][]string{
	"plumbing":   {"plumbing", "plumber"},
	"electrical": {"electrical", "electrician"},
	"hvac":       {"hvac", "ac_repair"},
	"locksmith":  {"locksmith"},
	"handyman":   {"handyman", "general"},
	"appliance":  {"appliance"},
	"cleaning":   {"cleaning"},
}
