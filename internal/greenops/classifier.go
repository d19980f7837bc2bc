package greenops

import "strings"

// classificationRule matches a label when every group has at least one
// keyword present in the lowercased label.
type classificationRule struct {
	category DeviceCategory
	groups   [][]string
}

// classificationRules is evaluated top to bottom; the first match wins.
// Compound terms come before the generic terms they contain: a meeting-room
// screen is not an office screen, and a landline phone is not a smartphone.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var classificationRules = []classificationRule{
	{CategoryMeetingScreen, [][]string{{"meeting", "réunion", "reunion"}, {"screen", "écran", "ecran", "display"}}},
	{CategorySwitchRouter, [][]string{{"switch", "router", "routeur", "commutateur"}}},
	{CategoryLandlinePhone, [][]string{{"landline", "fixe"}, {"phone", "téléphone", "telephone"}}},
	{CategorySmartphone, [][]string{{"smartphone", "iphone", "android", "mobile", "téléphone portable", "telephone portable"}}},
	{CategoryTablet, [][]string{{"tablet", "tablette"}}},
	{CategoryLaptop, [][]string{{"laptop", "ordinateur portable", "pc portable"}}},
	{CategoryScreen, [][]string{{"screen", "écran", "ecran", "monitor", "moniteur"}}},
	{CategoryRefurbished, [][]string{{"refurbished", "reconditionné", "reconditionne"}}},
}

// Classify maps a free-text equipment label to a device category.
//
// Matching is case-insensitive substring search in a fixed precedence order:
// meeting_screen, switch/router, landline_phone, smartphone, tablet, laptop,
// screen, refurbished. Labels matching nothing resolve to CategoryLaptop.
// Classify never fails.
func Classify(label string) DeviceCategory {
	n := strings.ToLower(label)
	for _, rule := range classificationRules {
		if rule.matches(n) {
			return rule.category
		}
	}
	return CategoryLaptop
}

func (r classificationRule) matches(lowered string) bool {
	for _, group := range r.groups {
		if !containsAny(lowered, group) {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
