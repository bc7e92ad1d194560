package themes

import "github.com/admin/astro-insights/internal/domain"

// planetKeywords короткие названия тем по транзитной планете
var planetKeywords = map[domain.Planet]string{
	domain.Sun:       "Vitality and purpose",
	domain.Moon:      "Emotional tides",
	domain.Mercury:   "Thinking and messages",
	domain.Venus:     "Love and values",
	domain.Mars:      "Drive and initiative",
	domain.Jupiter:   "Expansion and opportunity",
	domain.Saturn:    "Structure and responsibility",
	domain.Uranus:    "Change and awakening",
	domain.Neptune:   "Dreams and intuition",
	domain.Pluto:     "Power and transformation",
	domain.Chiron:    "Healing old wounds",
	domain.NorthNode: "Direction and growth",
}

// defaultFocus сфера по умолчанию, если дома натальной планеты нет в карте
var defaultFocus = map[domain.Planet]domain.FocusArea{
	domain.Sun:       domain.FocusSelf,
	domain.Moon:      domain.FocusHome,
	domain.Mercury:   domain.FocusCommunication,
	domain.Venus:     domain.FocusRelationships,
	domain.Mars:      domain.FocusCareer,
	domain.Jupiter:   domain.FocusGrowth,
	domain.Saturn:    domain.FocusCareer,
	domain.Uranus:    domain.FocusCommunity,
	domain.Neptune:   domain.FocusInnerLife,
	domain.Pluto:     domain.FocusTransformation,
	domain.Chiron:    domain.FocusHealth,
	domain.NorthNode: domain.FocusGrowth,
}

var aspectVerbs = map[domain.AspectType]string{
	domain.Conjunction: "merges with",
	domain.Opposition:  "pulls against",
	domain.Trine:       "flows with",
	domain.Square:      "presses on",
	domain.Sextile:     "opens doors for",
	domain.Quincunx:    "asks for adjustment from",
}

var toneDo = map[domain.Tone][]string{
	domain.ToneEncouraging:    {"Start conversations you have been postponing", "Say yes to invitations", "Share your ideas"},
	domain.ToneCautious:       {"Double-check commitments", "Keep plans simple", "Give yourself extra time"},
	domain.ToneReflective:     {"Review unfinished work", "Revisit old plans", "Journal your thoughts"},
	domain.ToneActionOriented: {"Take the first concrete step", "Tackle one priority", "Move your body"},
	domain.ToneRestorative:    {"Rest and recharge", "Finish routine tasks", "Spend quiet time alone"},
}

var toneAvoid = map[domain.Tone][]string{
	domain.ToneEncouraging:    {"Overcommitting out of enthusiasm"},
	domain.ToneCautious:       {"Impulsive decisions", "Power struggles"},
	domain.ToneReflective:     {"Signing contracts in a hurry", "Starting brand-new projects"},
	domain.ToneActionOriented: {"Waiting for perfect conditions"},
	domain.ToneRestorative:    {"Launching new initiatives", "Important negotiations"},
}

var focusDo = map[domain.FocusArea]string{
	domain.FocusSelf:           "Put your own needs first for a moment",
	domain.FocusFinances:       "Look over your budget",
	domain.FocusCommunication:  "Write the message you have been drafting",
	domain.FocusHome:           "Tend to your home and family",
	domain.FocusCreativity:     "Make time for play and creative work",
	domain.FocusHealth:         "Tidy up daily routines",
	domain.FocusRelationships:  "Listen closely to a partner",
	domain.FocusTransformation: "Let go of something that no longer fits",
	domain.FocusGrowth:         "Learn something new",
	domain.FocusCareer:         "Clarify a professional goal",
	domain.FocusCommunity:      "Reach out to friends",
	domain.FocusInnerLife:      "Make space for solitude",
}
