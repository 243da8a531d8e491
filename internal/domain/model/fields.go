package model

import "strings"

// Canonical raw field names as published by the chabad.org zmanim feed,
// after NormalizeField. The feed emits each as an RSS item title of the form
// "<field> - <time>"; some days carry fast/Chanukah combined variants.
const (
	FieldDawn               = "Dawn (Alot Hashachar)"
	FieldDawnFast           = "Dawn (Alot Hashachar) | Fast Begins"
	FieldEarliestTallit     = "Earliest Tallit and Tefillin (Misheyakir)"
	FieldEarliestTallitAlt  = "Earliest Tallit (Misheyakir)"
	FieldSunrise            = "Sunrise (Hanetz Hachamah)"
	FieldLatestShema        = "Latest Shema"
	FieldLatestShacharit    = "Latest Shacharit"
	FieldFinishChametz      = "Finish Eating Chametz before"
	FieldSellBurnChametz    = "Sell and Burn Chametz before"
	FieldNullifyChametz     = "Nullify Chametz before"
	FieldMidday             = "Midday (Chatzot Hayom)"
	FieldEarliestMincha     = "Earliest Mincha (Mincha Gedolah)"
	FieldMinchaKetanah      = "Mincha Ketanah (“Small Mincha”)"
	FieldPlagHamincha       = "Plag Hamincha (“Half of Mincha”)"
	FieldPlagChanukah       = "Plag Hamincha (“Half of Mincha”) | Earliest time to kindle Chanukah Menorah"
	FieldCandleLighting     = "Candle Lighting"
	FieldCandleLightingFast = "Candle Lighting | Fast Begins"
	FieldCandleAfter        = "Candle Lighting after"
	FieldSunset             = "Sunset (Shkiah)"
	FieldSunsetFast         = "Sunset (Shkiah) | Fast Begins"
	FieldSunsetChanukah     = "Sunset (Shkiah) | Earliest time to kindle Chanukah Menorah"
	FieldShabbatEnds        = "Shabbat Ends"
	FieldShabbatChanukah    = "Shabbat Ends | Earliest time to kindle Chanukah Menorah"
	FieldHolidayEnds        = "Holiday Ends"
	FieldShabbatHoliday     = "Shabbat/Holiday Ends"
	FieldShabbatHolidayFast = "Shabbat/Holiday/Fast Ends"
	FieldHolidayFast        = "Holiday/Fast Ends"
	FieldNightfall          = "Nightfall (Tzeit Hakochavim)"
	FieldNightfallFast      = "Nightfall (Tzeit Hakochavim) | Fast Ends"
	FieldBedikatChametz     = "Bedikat Chametz (Search for Chametz)"
	FieldMidnight           = "Midnight (Chatzot HaLailah)"
	FieldShaahZmanit        = "Shaah Zmanit (proportional hour)"
)

// EndingFields is the fixed scan order for the day's "ending" value: the
// first non-empty field wins.
var EndingFields = [...]string{
	FieldShabbatEnds,
	FieldShabbatChanukah,
	FieldHolidayEnds,
	FieldShabbatHoliday,
	FieldShabbatHolidayFast,
	FieldHolidayFast,
	FieldNightfallFast,
}

// NormalizeField canonicalizes a raw field name: trims surrounding space and
// collapses interior runs of spaces. The feed intermittently publishes
// double-spaced variants of the combined fields ("Sunset (Shkiah)  | Earliest
// time to kindle Chanukah Menorah"); collapsing folds those onto the
// canonical names.
func NormalizeField(name string) string {
	name = strings.TrimSpace(name)
	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	// One observed glitch drops the separator entirely.
	if name == "Sunset (Shkiah)Fast Begins" {
		return FieldSunsetFast
	}
	return name
}
